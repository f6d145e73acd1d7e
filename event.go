package chat

// Event is a sealed interface representing a decoded streaming event.
// Every turn ends with exactly one EventEnd; an EventError, if any, comes
// right before it. The unexported marker method prevents external
// implementations.
type Event interface {
	event()
}

// EventContentDelta carries a fragment of assistant text.
type EventContentDelta struct {
	Text string
}

func (EventContentDelta) event() {}

// EventToolCall is a complete function invocation requested by the model.
// Arguments is the provider's argument object re-serialized as JSON text.
// Signature is the provider's opaque thought signature for the call; it
// must be sent back unchanged with the call in later requests.
type EventToolCall struct {
	Name      string
	Arguments string
	Signature []byte
}

func (EventToolCall) event() {}

// EventUsage reports token counters exactly as the provider sent them.
type EventUsage struct {
	Usage Usage
}

func (EventUsage) event() {}

// EventError reports a failure that ends the current turn.
type EventError struct {
	Message string
}

func (EventError) event() {}

// EventEnd marks the end of a turn. It is always the last event.
type EventEnd struct{}

func (EventEnd) event() {}

// EventToolResult carries the text produced by running a tool call.
// It is emitted by Loop, never by a provider.
type EventToolResult struct {
	Name   string
	Result string
}

func (EventToolResult) event() {}

// Interface compliance checks.
var (
	_ Event = EventContentDelta{}
	_ Event = EventToolCall{}
	_ Event = EventUsage{}
	_ Event = EventError{}
	_ Event = EventEnd{}
	_ Event = EventToolResult{}
)
