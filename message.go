package chat

// Role identifies who a transcript message belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleError     Role = "error"
)

// Message is one entry of the displayed transcript.
//
// An assistant message is created when the first event of its turn arrives
// and grows with every content delta. Once the turn's EventEnd is observed
// it is frozen and Append becomes a no-op.
type Message struct {
	Role   Role
	Text   string
	Frozen bool
}

// Append adds text to an open message. It reports whether the text was
// added.
func (m *Message) Append(text string) bool {
	if m.Frozen {
		return false
	}
	m.Text += text
	return true
}

// Freeze marks the message immutable.
func (m *Message) Freeze() {
	m.Frozen = true
}
