package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskrig/taskkit/internal/failures"
)

func TestEncodeWithProperties(t *testing.T) {
	c := New("task.complete").Set("result", "Succeeded")
	c.Message = "success msg"
	assert.Equal(t, "##vso[task.complete result=Succeeded;]success msg", c.String())
}

func TestEncodeWithoutProperties(t *testing.T) {
	c := New("task.debug")
	c.Message = "some debug message"
	assert.Equal(t, "##vso[task.debug]some debug message", c.String())
}

func TestEncodePropertyOrder(t *testing.T) {
	c := New("basic.command").Set("b", "2").Set("a", "1").Set("c", "3")
	c.Message = "m"
	assert.Equal(t, "##vso[basic.command b=2;a=1;c=3;]m", c.String(), "insertion order is serialization order")

	c.Set("b", "20")
	assert.Equal(t, "##vso[basic.command b=20;a=1;c=3;]m", c.String(), "replacing a value keeps its position")
}

func TestDecode(t *testing.T) {
	c, fail := Parse("##vso[basic.command prop1=val1;prop2=val2]messageVal")
	require.Nil(t, fail)

	assert.Equal(t, "basic.command", c.Name)
	assert.Equal(t, "messageVal", c.Message)
	assert.Equal(t, 2, c.Properties.Len())

	v1, ok := c.Properties.Get("prop1")
	require.True(t, ok)
	assert.Equal(t, "val1", v1)

	v2, ok := c.Properties.Get("prop2")
	require.True(t, ok)
	assert.Equal(t, "val2", v2)
}

func TestDecodeWithoutProperties(t *testing.T) {
	c, fail := Parse("##vso[task.debug]a message with spaces")
	require.Nil(t, fail)

	assert.Equal(t, "task.debug", c.Name)
	assert.Equal(t, 0, c.Properties.Len())
	assert.Equal(t, "a message with spaces", c.Message)
}

func TestDecodeEmptyMessage(t *testing.T) {
	c, fail := Parse("##vso[task.complete result=Failed;]")
	require.Nil(t, fail)

	assert.Equal(t, "task.complete", c.Name)
	assert.Equal(t, "", c.Message)
}

func TestRoundTrip(t *testing.T) {
	c := New("task.setvariable").Set("variable", "build.number").Set("secret", "false")
	c.Message = "20260829.1"

	decoded, fail := Parse(c.String())
	require.Nil(t, fail)
	assert.Equal(t, c.Name, decoded.Name)
	assert.Equal(t, c.Message, decoded.Message)
	assert.Equal(t, c.String(), decoded.String())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing prefix", "task.complete result=Succeeded;]msg"},
		{"wrong prefix", "#vso[task.complete]msg"},
		{"missing closing bracket", "##vso[task.complete result=Succeeded;msg"},
		{"empty name", "##vso[]msg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fail := Parse(tt.line)
			require.NotNil(t, fail)
			assert.True(t, fail.Type.Matches(FailParse))
		})
	}
}

func TestEmit(t *testing.T) {
	var buf bytes.Buffer
	c := New("task.complete").Set("result", "Succeeded")
	c.Message = "done"
	require.NoError(t, c.Emit(&buf))
	assert.Equal(t, "##vso[task.complete result=Succeeded;]done\n", buf.String())
}

func TestFailParseMatchesMarshalFailure(t *testing.T) {
	assert.True(t, FailParse.Matches(failures.FailMarshal))
}
