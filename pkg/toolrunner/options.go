package toolrunner

import (
	"io"
	"os"

	"github.com/imdario/mergo"

	"github.com/taskrig/taskkit/internal/errs"
	"github.com/taskrig/taskkit/internal/osutils"
)

// ExecOptions configures a single execution, it is consumed by value and never mutated by the
// runner. The zero value inherits the parent environment and working directory, captures output
// without forwarding it, and fails on non-zero exit codes.
type ExecOptions struct {
	// WorkingDirectory is the directory the process starts in, empty inherits ours
	WorkingDirectory string

	// Env contains environment overrides, they are merged over the inherited environment.
	// A nil or empty map means inherit as-is.
	Env map[string]string

	// OutStream receives raw stdout bytes as they arrive, in addition to capture
	OutStream io.Writer

	// ErrStream receives raw stderr bytes as they arrive, in addition to capture
	ErrStream io.Writer

	// Silent suppresses the `exec tool:` diagnostic line
	Silent bool

	// FailOnStdErr makes the execution fail when the process wrote anything to stderr,
	// regardless of its exit code
	FailOnStdErr bool

	// IgnoreReturnCode makes a non-zero exit code count as success
	IgnoreReturnCode bool
}

// environ resolves the effective environment in the format expected by exec.Cmd, nil meaning
// inherit the parent environment untouched
func (o ExecOptions) environ() ([]string, error) {
	if len(o.Env) == 0 {
		return nil, nil
	}

	env := osutils.EnvSliceToMap(os.Environ())
	if err := mergo.Merge(&env, o.Env, mergo.WithOverride); err != nil {
		return nil, errs.Wrap(err, "Could not merge environment overrides")
	}

	return osutils.EnvMapToSlice(env), nil
}
