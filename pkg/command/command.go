// Package command implements the wire directives a task process embeds in its standard output
// so the orchestrating host can scan structured status out of it. A directive is a single line
// of the form:
//
// 		##vso[task.complete result=Succeeded;]done
//
// The property block is optional, `##vso[task.debug]message` is the empty-properties form.
package command

import (
	"fmt"
	"io"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/taskrig/taskkit/internal/failures"
	"github.com/taskrig/taskkit/internal/logging"
)

// Prefix marks a line as a wire directive
const Prefix = "##vso["

// FailParse identifies input that does not match the directive grammar
var FailParse = failures.Type("command.fail.parse", failures.FailMarshal)

// Command is a single wire directive. Property keys are unique and keep their insertion order
// through an encode. Message is carried verbatim after the closing bracket.
//
// Known limitation, kept for compatibility with existing hosts: `;`, `=` and `]` inside
// property values or the message are not escaped, values containing them do not round-trip.
type Command struct {
	Name       string
	Properties *orderedmap.OrderedMap[string, string]
	Message    string
}

// New creates a directive with the given name and no properties
func New(name string) *Command {
	return &Command{
		Name:       name,
		Properties: orderedmap.New[string, string](),
	}
}

// Set adds or replaces a property, an added property goes to the end of the serialization order.
// It returns the command to allow chaining.
func (c *Command) Set(key, value string) *Command {
	c.Properties.Set(key, value)
	return c
}

// String encodes the directive. An empty property map yields `##vso[name]message` with no
// trailing space, a populated one yields `##vso[name key=value;key2=value2;]message`.
func (c *Command) String() string {
	var sb strings.Builder
	sb.WriteString(Prefix)
	sb.WriteString(c.Name)

	if c.Properties != nil && c.Properties.Len() > 0 {
		sb.WriteByte(' ')
		for pair := c.Properties.Oldest(); pair != nil; pair = pair.Next() {
			sb.WriteString(pair.Key)
			sb.WriteByte('=')
			sb.WriteString(pair.Value)
			sb.WriteByte(';')
		}
	}

	sb.WriteByte(']')
	sb.WriteString(c.Message)
	return sb.String()
}

// Emit writes the encoded directive followed by a newline
func (c *Command) Emit(w io.Writer) error {
	_, err := fmt.Fprintln(w, c.String())
	return err
}

// Parse decodes a directive line. The name runs up to the first space or closing bracket, a
// space introduces `key=value;` pairs up to the bracket (the trailing semicolon is optional),
// and everything after the bracket is the message. Lines missing the prefix or the closing
// bracket fail with FailParse.
func Parse(line string) (*Command, *failures.Failure) {
	if !strings.HasPrefix(line, Prefix) {
		return nil, FailParse.New("err_command_parse", line)
	}

	rest := line[len(Prefix):]
	end := strings.Index(rest, "]")
	if end == -1 {
		return nil, FailParse.New("err_command_parse", line)
	}

	header := rest[:end]
	cmd := New(header)
	cmd.Message = rest[end+1:]

	if space := strings.Index(header, " "); space != -1 {
		cmd.Name = header[:space]
		for _, pair := range strings.Split(header[space+1:], ";") {
			if pair == "" {
				continue
			}
			eq := strings.Index(pair, "=")
			if eq == -1 {
				// hosts in the wild skip these rather than reject the whole line
				logging.Debug("Skipping malformed property '%s' in directive: %s", pair, line)
				continue
			}
			cmd.Properties.Set(pair[:eq], pair[eq+1:])
		}
	}

	if cmd.Name == "" {
		return nil, FailParse.New("err_command_parse", line)
	}

	return cmd, nil
}
