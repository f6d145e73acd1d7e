package chat

import "time"

// Session is the in-memory conversation history sent to the provider on
// every round. It is never persisted.
type Session struct {
	ID           string
	SystemPrompt string
	Entries      []Entry
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Entry is a sealed interface over the items of a Session history.
type Entry interface {
	entry()
}

// UserEntry is text typed by the user.
type UserEntry struct {
	Text string
}

func (UserEntry) entry() {}

// ModelEntry is one complete model reply: its text and the tool calls it
// requested.
type ModelEntry struct {
	Text  string
	Calls []ToolCall
}

func (ModelEntry) entry() {}

// ToolResultEntry is the text result of one tool call.
type ToolResultEntry struct {
	Name   string
	Result string
}

func (ToolResultEntry) entry() {}

// Interface compliance checks.
var (
	_ Entry = UserEntry{}
	_ Entry = ModelEntry{}
	_ Entry = ToolResultEntry{}
)
