package toolrunner

import (
	"io"

	"github.com/taskrig/taskkit/internal/failures"
)

// chunkBacklog bounds how far output delivery may run ahead of the consuming host loop
const chunkBacklog = 128

// Stream identifies which output channel of the process a chunk was read from
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Chunk is one run of raw bytes received from the process, chunks of the same stream arrive in
// the order the OS delivered them, stdout and stderr have no interleaving order relative to
// each other
type Chunk struct {
	Stream Stream
	Data   []byte
}

// Invocation is the handle to one in-flight execution. There is no cancellation, a process
// that never exits never resolves, hosts needing bounded execution race Wait externally.
type Invocation struct {
	chunks chan Chunk
	done   chan struct{}
	result *ExecResult
	fail   *failures.Failure
}

// Chunks returns the channel output chunks are delivered on, it is closed once both output
// streams have drained and always before Wait unblocks
func (i *Invocation) Chunks() <-chan Chunk {
	return i.chunks
}

// Wait blocks until the process has terminated and all output chunks have been delivered,
// then reports the same result and failure semantics as ToolRunner.ExecSync
func (i *Invocation) Wait() (*ExecResult, *failures.Failure) {
	<-i.done
	return i.result, i.fail
}

// finish records the outcome, the chunk channel must already be closed
func (i *Invocation) finish(result *ExecResult, fail *failures.Failure) {
	i.result = result
	i.fail = fail
	close(i.done)
}

// complete records an outcome for a process that never started
func (i *Invocation) complete(result *ExecResult, fail *failures.Failure) {
	close(i.chunks)
	i.finish(result, fail)
}

// chunkWriter adapts the chunk channel to an io.Writer for the given stream
func (i *Invocation) chunkWriter(stream Stream) io.Writer {
	return &chunkWriter{stream: stream, chunks: i.chunks}
}

type chunkWriter struct {
	stream Stream
	chunks chan<- Chunk
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	// the slice is reused by the copier, chunks need their own copy
	data := make([]byte, len(p))
	copy(data, p)
	w.chunks <- Chunk{Stream: w.stream, Data: data}
	return len(p), nil
}

// sinkChain combines capture, chunk delivery and an optional caller sink into a single writer,
// so all three observe the same bytes in the same write
func sinkChain(capture, chunks io.Writer, sink io.Writer) io.Writer {
	if sink == nil {
		return io.MultiWriter(capture, chunks)
	}
	return io.MultiWriter(capture, chunks, sink)
}
