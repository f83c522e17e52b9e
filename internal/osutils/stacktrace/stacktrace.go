package stacktrace

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/thoas/go-funk"
)

// Frame is a single entry in a stacktrace
type Frame struct {
	// Function is the fully qualified function name
	Function string

	// Path is the path of the source file
	Path string

	// Line is the line number inside the source file
	Line int
}

// Stacktrace reflects the relevant frames of a callstack
type Stacktrace struct {
	Frames []Frame
}

// String returns a human readable rendition of the stacktrace
func (t *Stacktrace) String() string {
	result := []string{}
	for _, frame := range t.Frames {
		result = append(result, fmt.Sprintf("%s:%d (%s)", frame.Path, frame.Line, frame.Function))
	}
	return strings.Join(result, "\n")
}

// Get returns a stacktrace for the calling function
func Get() *Stacktrace {
	return GetWithSkip(nil)
}

// GetWithSkip returns a stacktrace that excludes frames originating from the given files, this is mainly so error
// handling utilities don't end up in every single stacktrace they create
func GetWithSkip(skipFiles []string) *Stacktrace {
	stacktrace := &Stacktrace{}
	pc := make([]uintptr, 100)
	n := runtime.Callers(0, pc)
	if n == 0 {
		return stacktrace
	}

	frames := runtime.CallersFrames(pc[:n])
	skipFiles = append(skipFiles, currentFile())
	for {
		frame, more := frames.Next()

		if !funk.Contains(skipFiles, frame.File) {
			stacktrace.Frames = append(stacktrace.Frames, Frame{
				Function: frame.Function,
				Path:     frame.File,
				Line:     frame.Line,
			})
		}

		if !more {
			break
		}
	}

	return stacktrace
}

func currentFile() string {
	_, file, _, _ := runtime.Caller(0)
	return file
}
