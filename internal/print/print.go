package print

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/taskrig/taskkit/internal/condition"
)

func init() {
	// CI hosts scan our output for directives, don't sprinkle ANSI codes into it
	if condition.OnCI() {
		color.NoColor = true
	}
}

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow)
	infoStyle    = color.New(color.FgCyan)
)

// Stdout is the writer console output is sent to, it is overridable for testing
var Stdout io.Writer = os.Stdout

// Stderr is the writer error output is sent to, it is overridable for testing
var Stderr io.Writer = os.Stderr

// Line prints the given string followed by a newline
func Line(msg string) {
	fmt.Fprintln(Stdout, msg)
}

// Formatted aliases to fmt.Printf, also invokes Println
func Formatted(msg string, args ...interface{}) {
	fmt.Fprintf(Stdout, msg, args...)
	fmt.Fprintln(Stdout)
}

// Error prints the given string as an error message
func Error(msg string, args ...interface{}) {
	errorStyle.Fprintf(Stderr, msg, args...)
	fmt.Fprintln(Stderr)
}

// Warning prints the given string as a warning message
func Warning(msg string, args ...interface{}) {
	warningStyle.Fprintf(Stderr, msg, args...)
	fmt.Fprintln(Stderr)
}

// Info prints the given string as an info message
func Info(msg string, args ...interface{}) {
	infoStyle.Fprintf(Stdout, msg, args...)
	fmt.Fprintln(Stdout)
}
