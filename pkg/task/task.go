// Package task is the surface a task author talks to: environment backed variables and inputs
// on the way in, wire directives on standard output on the way out.
package task

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"

	"github.com/taskrig/taskkit/internal/errs"
	"github.com/taskrig/taskkit/internal/locale"
	"github.com/taskrig/taskkit/pkg/command"
)

// Result reflects the completion state a task reports back to its host
type Result string

const (
	Succeeded           Result = "Succeeded"
	SucceededWithIssues Result = "SucceededWithIssues"
	Failed              Result = "Failed"
)

// directives default to stdout, the only channel the host scans
var out io.Writer

// SetWriter redirects directive output and returns the previous writer (nil meaning stdout),
// mainly for tests
func SetWriter(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// writer resolves the directive writer at emit time, so stdout redirection takes effect even
// when it happens after package init
func writer() io.Writer {
	if out != nil {
		return out
	}
	return os.Stdout
}

// envName derives the environment variable name backing a variable or input name
func envName(name string) string {
	name = strings.ToUpper(name)
	return strings.NewReplacer(".", "_", " ", "_").Replace(name)
}

// GetVariable reads the variable with the given name from the environment, empty when unset
func GetVariable(name string) string {
	return os.Getenv(envName(name))
}

// SetVariable sets the variable in our own environment and emits the directive the host uses
// to propagate it to subsequent tasks
func SetVariable(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return locale.NewInputError("err_variable_invalid", "Variable name '{{.V0}}' is not valid", name)
	}
	if err := os.Setenv(envName(name), value); err != nil {
		return errs.Wrap(err, "Could not set environment variable %s", envName(name))
	}

	c := command.New("task.setvariable").Set("variable", name)
	c.Message = value
	return c.Emit(writer())
}

// GetInput reads the task input with the given name, empty when unset
func GetInput(name string) string {
	return os.Getenv("INPUT_" + envName(name))
}

// GetInputRequired is like GetInput but an unset input is an input error
func GetInputRequired(name string) (string, error) {
	value := GetInput(name)
	if value == "" {
		return "", locale.NewInputError("err_input_required", "Required input '{{.V0}}' was not supplied", name)
	}
	return value, nil
}

// GetBoolInput reads the task input with the given name coerced to a bool, unset or
// unparseable inputs read as false
func GetBoolInput(name string) bool {
	return cast.ToBool(GetInput(name))
}

// SetResult reports the completion state of the task to the host
func SetResult(r Result, message string) error {
	c := command.New("task.complete").Set("result", string(r))
	c.Message = message
	return c.Emit(writer())
}

// Debug emits a diagnostic marker the host records without surfacing to the user
func Debug(format string, args ...interface{}) error {
	c := command.New("task.debug")
	c.Message = fmt.Sprintf(format, args...)
	return c.Emit(writer())
}

// Issue surfaces a warning or error to the host, kind is "warning" or "error"
func Issue(kind, message string) error {
	c := command.New("task.issue").Set("type", kind)
	c.Message = message
	return c.Emit(writer())
}
