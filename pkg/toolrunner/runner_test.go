package toolrunner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgAccumulation(t *testing.T) {
	runner := New("/bin/sometool")
	runner.Arg("-a").Arg("b", "b")

	assert.Equal(t, []string{"-a", "b", "b"}, runner.Args(), "insertion order kept, duplicates allowed")
}

func TestArgLineIsAdditive(t *testing.T) {
	runner := New("/bin/sometool")
	require.Nil(t, runner.ArgLine(`foo="bar baz" -x`))
	require.Nil(t, runner.ArgLine("-y"))

	assert.Equal(t, []string{"foo=bar baz", "-x", "-y"}, runner.Args())
}

func TestArgLineUnterminatedQuote(t *testing.T) {
	runner := New("/bin/sometool")
	fail := runner.ArgLine(`foo="bar`)
	require.NotNil(t, fail)
	assert.Empty(t, runner.Args(), "a failed append adds nothing")
}

func TestArgsReturnsCopy(t *testing.T) {
	runner := New("/bin/sometool")
	runner.Arg("-a")

	args := runner.Args()
	args[0] = "mutated"
	assert.Equal(t, []string{"-a"}, runner.Args())
}
