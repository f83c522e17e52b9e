// Package toolrunner resolves external executables and runs them as child processes, capturing
// their output and translating raw process outcome into pass/fail according to the configured
// policy flags. A runner executes exactly one process, it is not re-executable.
package toolrunner

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/taskrig/taskkit/internal/exeutils"
	"github.com/taskrig/taskkit/internal/failures"
	"github.com/taskrig/taskkit/internal/logging"
	"github.com/taskrig/taskkit/internal/osutils"
)

var (
	// FailSpawn identifies the OS refusing to create the process, no result is produced
	FailSpawn = failures.Type("toolrunner.fail.spawn", failures.FailOS)

	// FailExitCode identifies a process that ran and exited non-zero while IgnoreReturnCode
	// is off, the result is still populated for inspection
	FailExitCode = failures.Type("toolrunner.fail.exitcode", failures.FailCmd)

	// FailStdErrOutput identifies a process that wrote to stderr while FailOnStdErr is set,
	// the result is still populated for inspection
	FailStdErrOutput = failures.Type("toolrunner.fail.stderroutput", failures.FailCmd)

	// FailAlreadyExecuted identifies an attempt to execute a runner a second time
	FailAlreadyExecuted = failures.Type("toolrunner.fail.reexec")
)

// ExecResult holds the observed outcome of a completed process, it is never mutated after
// creation. Code is exactly what the OS reported.
type ExecResult struct {
	Code   int
	Stdout string
	Stderr string
}

// ToolRunner accumulates an executable path and an ordered argument list, then executes them.
// Arguments keep their insertion order end-to-end into the process's argument vector,
// duplicates are allowed. Instances share no state, concurrent use of separate instances
// needs no coordination.
type ToolRunner struct {
	toolPath string
	args     []string
	executed bool
}

// New creates a runner for the given resolved executable path, normally obtained through Which
func New(toolPath string) *ToolRunner {
	return &ToolRunner{toolPath: toolPath}
}

// NewFromName resolves name on PATH and creates a runner for it
func NewFromName(name string) (*ToolRunner, *failures.Failure) {
	toolPath, fail := Which(name, true)
	if fail != nil {
		return nil, fail
	}
	return New(toolPath), nil
}

// Which resolves an executable name to an absolute path. When required is set an unresolvable
// name fails with exeutils.FailNotFound, otherwise it yields an empty path without failing.
func Which(name string, required bool) (string, *failures.Failure) {
	if !required {
		return exeutils.WhichOptional(name), nil
	}
	return exeutils.Which(name)
}

// ToolPath returns the executable this runner will execute
func (t *ToolRunner) ToolPath() string {
	return t.toolPath
}

// Arg appends the given tokens verbatim to the argument list
func (t *ToolRunner) Arg(args ...string) *ToolRunner {
	t.args = append(t.args, args...)
	return t
}

// ArgLine tokenizes the given raw argument string and appends the tokens to the argument list.
// Repeated calls are additive. Quoting rules are those of osutils.SplitArgs, an unterminated
// quote fails with osutils.FailArgParse and appends nothing.
func (t *ToolRunner) ArgLine(line string) *failures.Failure {
	tokens, fail := osutils.SplitArgs(line)
	if fail != nil {
		return fail
	}
	t.args = append(t.args, tokens...)
	return nil
}

// Args returns a copy of the accumulated argument list
func (t *ToolRunner) Args() []string {
	return append([]string{}, t.args...)
}

// ExecSync executes the tool and blocks until it terminates. Stdout and stderr are captured
// into the result and simultaneously forwarded to the configured sink streams. On FailExitCode
// and FailStdErrOutput the result is returned alongside the failure so the caller can inspect
// captured output, on FailSpawn no result exists.
func (t *ToolRunner) ExecSync(opts ExecOptions) (*ExecResult, *failures.Failure) {
	inv, fail := t.Exec(opts)
	if fail != nil {
		return nil, fail
	}

	// capture and sinks already received the data, the chunk stream only needs draining
	for range inv.Chunks() {
	}

	return inv.Wait()
}

// Exec starts the tool without blocking and returns an Invocation to observe it through. Output
// chunks are delivered on Invocation.Chunks in the order the OS hands them over, per stream,
// interleaved with the sink-stream writes of the same data. The chunk channel is bounded, a
// host that calls Wait without draining Chunks can stall a chatty process, consume the channel
// or use ExecSync. Spawn failures surface through Wait, Exec itself only fails on re-execution
// or unusable options.
func (t *ToolRunner) Exec(opts ExecOptions) (*Invocation, *failures.Failure) {
	if t.executed {
		return nil, FailAlreadyExecuted.New("err_exec_reexec")
	}
	t.executed = true

	env, err := opts.environ()
	if err != nil {
		return nil, FailSpawn.Wrap(err)
	}

	logging.Debug("exec tool: %s", t.toolPath)
	logging.Debug("Arguments: %v", t.args)

	if !opts.Silent {
		diag := opts.OutStream
		if diag == nil {
			diag = os.Stdout
		}
		fmt.Fprintf(diag, "exec tool: %s\n", t.toolPath)
	}

	inv := &Invocation{
		chunks: make(chan Chunk, chunkBacklog),
		done:   make(chan struct{}),
	}

	cmd := exec.Command(t.toolPath, t.args...)
	cmd.Dir = opts.WorkingDirectory
	cmd.Env = env

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = sinkChain(&stdoutBuf, inv.chunkWriter(Stdout), opts.OutStream)
	cmd.Stderr = sinkChain(&stderrBuf, inv.chunkWriter(Stderr), opts.ErrStream)

	if err := cmd.Start(); err != nil {
		logging.Debug("Could not start %s: %v", t.toolPath, err)
		inv.complete(nil, FailSpawn.New("err_exec_spawn", t.toolPath, err.Error()))
		return inv, nil
	}

	go func() {
		waitErr := cmd.Wait()

		// Wait has joined the output copiers, no more chunks can arrive
		close(inv.chunks)

		if waitErr != nil {
			if _, isExit := waitErr.(*exec.ExitError); !isExit {
				// the process never produced an exit status, treat it like a spawn failure
				inv.finish(nil, FailSpawn.Wrap(waitErr))
				return
			}
		}

		code := 0
		if waitErr != nil {
			code = osutils.CmdExitCode(cmd)
		}

		result := &ExecResult{
			Code:   code,
			Stdout: stdoutBuf.String(),
			Stderr: stderrBuf.String(),
		}

		if code != 0 && !opts.IgnoreReturnCode {
			inv.finish(result, FailExitCode.New("err_exec_exit_code", t.toolPath, fmt.Sprintf("%d", code)))
			return
		}

		if opts.FailOnStdErr && stderrBuf.Len() > 0 {
			inv.finish(result, FailStdErrOutput.New("err_exec_stderr", t.toolPath))
			return
		}

		inv.finish(result, nil)
	}()

	return inv, nil
}
