// A simple logging module that wraps multi-level logging calls and allows the
// logging level of the toolkit to be set at runtime.
//
// Logging is done just like calling fmt.Sprintf:
// 		logging.Info("This tool is %s and that one is %s", tool, that)
package logging

// This package may NOT depend on failures (directly or indirectly)

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/taskrig/taskkit/internal/condition"
)

const (
	DEBUG    = 1
	INFO     = 2
	WARNING  = 4
	WARN     = 4
	ERROR    = 8
	NOTICE   = 16 // notice is like info but for really important stuff ;)
	CRITICAL = 32
	QUIET    = ERROR | NOTICE | CRITICAL               // setting for errors only
	NORMAL   = INFO | WARN | ERROR | NOTICE | CRITICAL // default setting - all besides debug
	ALL      = 255
	NOTHING  = 0
)

var levelsAscending = []int{DEBUG, INFO, WARNING, ERROR, NOTICE, CRITICAL}

var LevelsByName = map[string]int{
	"DEBUG":    DEBUG,
	"INFO":     INFO,
	"WARNING":  WARN,
	"WARN":     WARN,
	"ERROR":    ERROR,
	"NOTICE":   NOTICE,
	"CRITICAL": CRITICAL,
	"QUIET":    QUIET,
	"NORMAL":   NORMAL,
	"ALL":      ALL,
	"NOTHING":  NOTHING,
}

// default logging level is NORMAL, tests get everything
var level = NORMAL

// SetLevel sets the logging level.
//
// Contrary to loggers that specify a minimal level, this logger is set with a
// bit mask of active levels.
//
// e.g. for INFO and ERROR use:
// 		SetLevel(logging.INFO | logging.ERROR)
func SetLevel(l int) {
	level = l
}

// SetMinimalLevel sets a minimal level for logging, setting all levels higher than this level as well.
//
// The severity order is DEBUG, INFO, WARNING, ERROR, NOTICE, CRITICAL
func SetMinimalLevel(l int) {
	newLevel := 0
	for _, lvl := range levelsAscending {
		if lvl >= l {
			newLevel |= lvl
		}
	}
	SetLevel(newLevel)
}

// SetMinimalLevelByName sets the minimal level by string, useful for config files and command
// line arguments. Case insensitive.
func SetMinimalLevelByName(l string) error {
	l = strings.ToUpper(strings.TrimSpace(l))
	lvl, found := LevelsByName[l]
	if !found {
		Error("Could not set level - not found level %s", l)
		return fmt.Errorf("invalid level %s", l)
	}

	SetMinimalLevel(lvl)
	return nil
}

// MessageContext carries the metadata belonging to a single log message
type MessageContext struct {
	Level     string
	File      string
	Line      int
	TimeStamp time.Time
}

// LoggingHandler is a pluggable logger interface
type LoggingHandler interface {
	SetFormatter(Formatter)
	Output() io.Writer
	Emit(ctx *MessageContext, message string, args ...interface{}) error
	Close()
}

type standardHandler struct {
	formatter Formatter
}

func (l *standardHandler) SetFormatter(f Formatter) {
	l.formatter = f
}

func (l *standardHandler) Output() io.Writer {
	return os.Stderr
}

// default handling interface - write the formatted message to stderr
func (l *standardHandler) Emit(ctx *MessageContext, message string, args ...interface{}) error {
	fmt.Fprintln(os.Stderr, l.formatter.Format(ctx, message, args...))
	return nil
}

func (l *standardHandler) Close() {}

var currentHandler LoggingHandler = &standardHandler{
	DefaultFormatter,
}

// SetHandler sets the current handler of the library. We currently support one handler at a time
func SetHandler(h LoggingHandler) {
	currentHandler = h
}

func CurrentHandler() LoggingHandler {
	return currentHandler
}

// get the stack (line + file) context to return the caller to the log
func getContext(level string, skipDepth int) *MessageContext {
	_, file, line, _ := runtime.Caller(skipDepth)
	file = path.Base(file)

	return &MessageContext{
		Level:     level,
		File:      file,
		TimeStamp: time.Now(),
		Line:      line,
	}
}

func writeMessage(level string, msg string, args ...interface{}) {
	writeMessageDepth(4, level, msg, args...)
}

func writeMessageDepth(depth int, level string, msg string, args ...interface{}) {
	ctx := getContext(level, depth)
	if err := currentHandler.Emit(ctx, msg, args...); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing log message: %v, original message: %s %s\n", err, level, fmt.Sprintf(msg, args...))
	}
}

// Debug outputs debug logging messages
func Debug(msg string, args ...interface{}) {
	if level&DEBUG != 0 {
		writeMessage("DEBUG", msg, args...)
	}
}

// Info outputs level info messages
func Info(msg string, args ...interface{}) {
	if level&INFO != 0 {
		writeMessage("INFO", msg, args...)
	}
}

// Warning outputs level warning messages
func Warning(msg string, args ...interface{}) {
	if level&WARN != 0 {
		writeMessage("WARNING", msg, args...)
	}
}

// Error outputs level error messages
func Error(msg string, args ...interface{}) {
	if level&ERROR != 0 {
		writeMessageDepth(4, "ERROR", msg, args...)
	}
}

// Errorf is like Error but returns the message as an error for further propagation
func Errorf(msg string, args ...interface{}) error {
	err := fmt.Errorf(msg, args...)
	if level&ERROR != 0 {
		writeMessageDepth(4, "ERROR", err.Error())
	}
	return err
}

// Notice outputs level notice messages
func Notice(msg string, args ...interface{}) {
	if level&NOTICE != 0 {
		writeMessage("NOTICE", msg, args...)
	}
}

// Critical outputs level critical messages
func Critical(msg string, args ...interface{}) {
	if level&CRITICAL != 0 {
		writeMessage("CRITICAL", msg, args...)
	}
}

// Close closes the current handler
func Close() {
	currentHandler.Close()
}

func init() {
	if os.Getenv("VERBOSE") != "" || condition.InTest() {
		SetLevel(ALL)
	}
}
