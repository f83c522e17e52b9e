package task

import (
	"bytes"
	"os"
	"testing"

	"github.com/kami-zh/go-capturer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskrig/taskkit/internal/locale"
)

func TestSetResultWritesToStdout(t *testing.T) {
	out := capturer.CaptureStdout(func() {
		require.NoError(t, SetResult(Succeeded, "success msg"))
	})
	assert.Equal(t, "##vso[task.complete result=Succeeded;]success msg\n", out)
}

func TestSetResultFailed(t *testing.T) {
	var buf bytes.Buffer
	defer SetWriter(SetWriter(&buf))

	require.NoError(t, SetResult(Failed, "it broke"))
	assert.Equal(t, "##vso[task.complete result=Failed;]it broke\n", buf.String())
}

func TestSetVariable(t *testing.T) {
	var buf bytes.Buffer
	defer SetWriter(SetWriter(&buf))
	t.Setenv("BUILD_NUMBER", "")

	require.NoError(t, SetVariable("build.number", "20260829.1"))

	assert.Equal(t, "20260829.1", os.Getenv("BUILD_NUMBER"), "variable lands in our own environment")
	assert.Equal(t, "20260829.1", GetVariable("build.number"))
	assert.Equal(t, "##vso[task.setvariable variable=build.number;]20260829.1\n", buf.String())
}

func TestSetVariableInvalidName(t *testing.T) {
	var buf bytes.Buffer
	defer SetWriter(SetWriter(&buf))

	err := SetVariable("  ", "value")
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
	assert.Empty(t, buf.String(), "nothing is emitted for a rejected variable")
}

func TestGetVariableUnset(t *testing.T) {
	assert.Equal(t, "", GetVariable("some.variable.that.does.not.exist"))
}

func TestGetInput(t *testing.T) {
	t.Setenv("INPUT_CONNECTED_SERVICE", "deploy-target")
	assert.Equal(t, "deploy-target", GetInput("connected service"))
	assert.Equal(t, "deploy-target", GetInput("Connected.Service"))
}

func TestGetInputRequired(t *testing.T) {
	t.Setenv("INPUT_PRESENT", "here")

	value, err := GetInputRequired("present")
	require.NoError(t, err)
	assert.Equal(t, "here", value)

	_, err = GetInputRequired("absent")
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}

func TestGetBoolInput(t *testing.T) {
	t.Setenv("INPUT_CLEAN", "true")
	assert.True(t, GetBoolInput("clean"))

	t.Setenv("INPUT_CLEAN", "0")
	assert.False(t, GetBoolInput("clean"))

	assert.False(t, GetBoolInput("never.set"))
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	defer SetWriter(SetWriter(&buf))

	require.NoError(t, Debug("resolved %d entries", 3))
	assert.Equal(t, "##vso[task.debug]resolved 3 entries\n", buf.String())
}

func TestIssue(t *testing.T) {
	var buf bytes.Buffer
	defer SetWriter(SetWriter(&buf))

	require.NoError(t, Issue("warning", "disk is at 90%"))
	assert.Equal(t, "##vso[task.issue type=warning;]disk is at 90%\n", buf.String())
}
