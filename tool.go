package chat

import "context"

// ToolName is one of the fixed set of tools the model may call. The string
// value is the name declared to the model.
type ToolName string

const (
	ToolRunCommand ToolName = "run_command"
	ToolCreateFile ToolName = "create_file"
	ToolUpdateFile ToolName = "update_file"
	ToolDeleteFile ToolName = "delete_file"
	ToolWebSearch  ToolName = "search_google"
)

// ToolNames lists every tool in declaration order.
var ToolNames = []ToolName{
	ToolRunCommand,
	ToolCreateFile,
	ToolUpdateFile,
	ToolDeleteFile,
	ToolWebSearch,
}

// ParseToolName maps a name received from the model to a ToolName.
func ParseToolName(name string) (ToolName, bool) {
	for _, n := range ToolNames {
		if string(n) == name {
			return n, true
		}
	}
	return "", false
}

// Tool is the declaration sent to the model describing a tool.
type Tool struct {
	Name        ToolName
	Description string
	Params      []ToolParam
}

// ToolParam is a single string parameter of a tool.
type ToolParam struct {
	Name        string
	Description string
	Required    bool
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	Name      string
	Arguments string
	Signature []byte
}

// ToolExecutor runs tools. Execute never fails: every problem, including
// an unknown tool name, is described in the returned text so it can be
// fed back to the model as an ordinary result.
type ToolExecutor interface {
	Execute(ctx context.Context, name, args string) string
}
