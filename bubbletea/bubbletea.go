// Package bubbletea provides the Bubble Tea terminal UI for chat.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chat"
)

// AgentFunc runs one turn. The onEvent callback is called for each event of
// the turn, EventEnd last. The function blocks until the turn completes or
// the context is cancelled.
type AgentFunc func(ctx context.Context, session *chat.Session, onEvent func(chat.Event)) error

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// StreamEventMsg wraps a streaming event for delivery to the Bubble Tea model.
type StreamEventMsg struct {
	Event chat.Event
}

// AgentDoneMsg signals that the turn's goroutine has returned.
type AgentDoneMsg struct {
	Err error
}

// Option configures a [Model].
type Option func(*Model)

// WithHighlighter sets the code block highlighter. Default is plain.
func WithHighlighter(hl chat.Highlighter) Option {
	return func(m *Model) { m.hl = hl }
}

// WithModelName sets the model name shown in the sidebar.
func WithModelName(name string) Option {
	return func(m *Model) { m.modelName = name }
}

// WithClipboard sets the function used by the copy key.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// WithWelcome adds System messages shown before the first turn.
func WithWelcome(lines ...string) Option {
	return func(m *Model) {
		for _, l := range lines {
			m.messages = append(m.messages, chat.Message{Role: chat.RoleSystem, Text: l, Frozen: true})
		}
	}
}
