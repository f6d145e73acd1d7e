// Package builtin implements the fixed tool set offered to the model:
// shell commands, file creation, appending and deletion, and web search.
//
// Every tool reports its outcome as text, failures included, so the model
// can read what went wrong and try again.
package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/chat"
	"github.com/sirupsen/logrus"
)

const (
	defaultSearchURL = "https://html.duckduckgo.com/html/"
	defaultTimeout   = 120 * time.Second
)

// Compile-time interface check.
var _ chat.ToolExecutor = (*Executor)(nil)

// Executor dispatches tool calls to the built-in tool implementations.
type Executor struct {
	searchURL  string
	httpClient *http.Client
	timeout    time.Duration
	log        *logrus.Entry
}

// Option configures an [Executor].
type Option func(*Executor)

// WithSearchURL sets the DuckDuckGo HTML endpoint used by search_google.
func WithSearchURL(u string) Option {
	return func(e *Executor) { e.searchURL = u }
}

// WithHTTPClient sets the HTTP client used by search_google.
func WithHTTPClient(hc *http.Client) Option {
	return func(e *Executor) { e.httpClient = hc }
}

// WithCommandTimeout bounds how long run_command may take. Default 2m.
func WithCommandTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithLogger sets the logger for tool diagnostics.
func WithLogger(log *logrus.Entry) Option {
	return func(e *Executor) { e.log = log }
}

// NewExecutor creates a new Executor.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		searchURL:  defaultSearchURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		timeout:    defaultTimeout,
	}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.log = logrus.NewEntry(l)
	}
	return e
}

// Execute runs the named tool with JSON arguments and returns its textual
// result. Unknown tool names produce an error text rather than a Go error.
func (e *Executor) Execute(ctx context.Context, name, args string) string {
	tool, ok := chat.ParseToolName(name)
	if !ok {
		e.log.WithField("tool", name).Debug(chat.ErrUnknownTool)
		return fmt.Sprintf("Error: Unknown tool '%s'", name)
	}

	start := time.Now()
	var result string
	switch tool {
	case chat.ToolRunCommand:
		result = e.runCommand(ctx, args)
	case chat.ToolCreateFile:
		result = createFile(args)
	case chat.ToolUpdateFile:
		result = updateFile(args)
	case chat.ToolDeleteFile:
		result = deleteFile(args)
	case chat.ToolWebSearch:
		result = e.search(ctx, args)
	}
	e.log.WithFields(logrus.Fields{
		"tool":     name,
		"duration": time.Since(start),
		"bytes":    len(result),
	}).Debug("tool executed")
	return result
}

// Tools returns the tool definitions for all built-in tools.
func Tools() []chat.Tool {
	return []chat.Tool{
		{
			Name:        chat.ToolRunCommand,
			Description: "Execute a shell command with sh -c and return its stdout and stderr.",
			Params: []chat.ToolParam{
				{Name: "command", Description: "The shell command to execute", Required: true},
			},
		},
		{
			Name:        chat.ToolCreateFile,
			Description: "Create a file with the given content, overwriting it if it exists.",
			Params: []chat.ToolParam{
				{Name: "path", Description: "Path of the file to write", Required: true},
				{Name: "content", Description: "Full file content", Required: true},
			},
		},
		{
			Name:        chat.ToolUpdateFile,
			Description: "Append content to the end of an existing file.",
			Params: []chat.ToolParam{
				{Name: "path", Description: "Path of an existing file", Required: true},
				{Name: "content", Description: "Text to append", Required: true},
			},
		},
		{
			Name:        chat.ToolDeleteFile,
			Description: "Delete a file.",
			Params: []chat.ToolParam{
				{Name: "path", Description: "Path of the file to delete", Required: true},
			},
		},
		{
			Name:        chat.ToolWebSearch,
			Description: "Search the web and return the top result titles, URLs and snippets.",
			Params: []chat.ToolParam{
				{Name: "query", Description: "The search query", Required: true},
			},
		},
	}
}

// stringField returns args[field] when args is a JSON object. ok is false
// when args is not a JSON object at all.
func stringField(args, field string) (value string, ok bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(args), &m); err != nil || m == nil {
		return "", false
	}
	s, _ := m[field].(string)
	return s, true
}

// fieldOrRaw returns args[field], or the raw args when they are not a JSON
// object. Models sometimes send the bare value instead of an object.
func fieldOrRaw(args, field string) string {
	if v, ok := stringField(args, field); ok {
		return v
	}
	return args
}
