package chat

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultMaxRounds bounds how many provider rounds a single turn may take
// when the model keeps calling tools.
const DefaultMaxRounds = 8

// Loop orchestrates a turn between a Provider and a ToolExecutor.
type Loop struct {
	provider Provider
	executor ToolExecutor
}

// NewLoop creates a new Loop with the given provider and tool executor.
func NewLoop(provider Provider, executor ToolExecutor) *Loop {
	return &Loop{provider: provider, executor: executor}
}

// RunOption configures a single Run invocation.
type RunOption func(*runConfig)

type runConfig struct {
	onEvent   func(Event)
	model     string
	maxRounds int
}

// WithEventHandler sets a callback that receives each event of the turn.
// If nil or not set, events are silently discarded.
func WithEventHandler(h func(Event)) RunOption {
	return func(c *runConfig) {
		c.onEvent = h
	}
}

// WithModel sets the model ID for provider requests during this run.
// Empty string means the provider uses its default model.
func WithModel(model string) RunOption {
	return func(c *runConfig) {
		c.model = model
	}
}

// WithMaxRounds overrides DefaultMaxRounds. Values below 1 are ignored.
func WithMaxRounds(n int) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.maxRounds = n
		}
	}
}

// Run executes one turn. The session's last entry is expected to be the
// user's message. Run streams the model reply, executes any tool calls,
// feeds their results back and repeats until the model stops calling
// tools.
//
// Failures never surface as a returned error: they are forwarded as
// EventError. The handler always receives EventEnd as the final event.
// Run returns the context error when the turn was cancelled.
func (l *Loop) Run(ctx context.Context, session *Session, tools []Tool, opts ...RunOption) error {
	cfg := runConfig{maxRounds: DefaultMaxRounds}
	for _, opt := range opts {
		opt(&cfg)
	}
	emit := func(e Event) {
		if cfg.onEvent != nil {
			cfg.onEvent(e)
		}
	}
	defer emit(EventEnd{})

	for range cfg.maxRounds {
		calls, ok := l.round(ctx, session, tools, &cfg, emit)
		if !ok || len(calls) == 0 {
			return ctx.Err()
		}
		for _, call := range calls {
			result := l.executor.Execute(ctx, call.Name, call.Arguments)
			session.Entries = append(session.Entries, ToolResultEntry{Name: call.Name, Result: result})
			emit(EventToolResult{Name: call.Name, Result: result})
		}
		session.UpdatedAt = time.Now()
	}
	// Close the history with a model reply so the next user message does
	// not directly follow tool results.
	msg := fmt.Sprintf("stopped after %d tool rounds", cfg.maxRounds)
	session.Entries = append(session.Entries, ModelEntry{Text: msg})
	emit(EventError{Message: msg})
	return nil
}

// round streams one provider response. It returns the tool calls the model
// made and false if the round failed.
func (l *Loop) round(ctx context.Context, session *Session, tools []Tool, cfg *runConfig, emit func(Event)) ([]ToolCall, bool) {
	if err := ctx.Err(); err != nil {
		emit(EventError{Message: err.Error()})
		return nil, false
	}

	req := Request{
		Model:        cfg.model,
		SystemPrompt: session.SystemPrompt,
		Entries:      session.Entries,
		Tools:        tools,
	}

	stream, err := l.provider.Stream(ctx, req)
	if err != nil {
		emit(EventError{Message: err.Error()})
		return nil, false
	}
	defer stream.Close()

	var (
		text   strings.Builder
		calls  []ToolCall
		failed bool
	)
	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			emit(EventError{Message: err.Error()})
			failed = true
			break
		}
		switch e := evt.(type) {
		case EventEnd:
			// The turn's single EventEnd is emitted by Run.
			continue
		case EventContentDelta:
			text.WriteString(e.Text)
		case EventToolCall:
			calls = append(calls, ToolCall{Name: e.Name, Arguments: e.Arguments, Signature: e.Signature})
		case EventError:
			failed = true
		}
		emit(evt)
	}

	if failed {
		// Calls without results would make the next request invalid.
		calls = nil
	}
	if text.Len() > 0 || len(calls) > 0 {
		session.Entries = append(session.Entries, ModelEntry{Text: text.String(), Calls: calls})
		session.UpdatedAt = time.Now()
	}
	return calls, !failed
}
