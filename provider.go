package chat

import "context"

// Stream uses a pull-based iterator pattern. Next returns events in the
// order the provider emitted them and io.EOF once EventEnd has been
// returned. Transport and protocol failures are delivered as EventError
// followed by EventEnd, not as errors from Next. Cancellation flows through
// the context passed to Provider.Stream.
type Stream interface {
	Next() (Event, error)
	Close() error
}

// Provider is a strategy pattern interface for LLM endpoints.
// Stream returns an error only when the request could not be sent at all.
type Provider interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}

// Request carries everything a provider needs for one round.
// The provider uses its own defaults when fields are zero.
type Request struct {
	Model        string // empty = provider default
	SystemPrompt string
	Entries      []Entry
	Tools        []Tool
}
