package chat_test

import (
	"testing"

	"github.com/fwojciec/chat"
	"github.com/stretchr/testify/assert"
)

func TestEventTypeSwitch_Exhaustive(t *testing.T) {
	t.Parallel()
	events := []chat.Event{
		chat.EventContentDelta{Text: "hello"},
		chat.EventToolCall{Name: "run_command", Arguments: `{"command":"ls"}`},
		chat.EventUsage{Usage: chat.Usage{Prompt: 1}},
		chat.EventError{Message: "boom"},
		chat.EventEnd{},
		chat.EventToolResult{Name: "run_command", Result: "ok"},
	}
	assert.Len(t, events, 6, "update slice and switch when adding new Event types")
	for _, e := range events {
		switch e.(type) {
		case chat.EventContentDelta:
		case chat.EventToolCall:
		case chat.EventUsage:
		case chat.EventError:
		case chat.EventEnd:
		case chat.EventToolResult:
		default:
			t.Fatalf("unexpected event type: %T", e)
		}
	}
}

func TestMessage_Append(t *testing.T) {
	t.Parallel()
	m := chat.Message{Role: chat.RoleAssistant}
	assert.True(t, m.Append("hel"))
	assert.True(t, m.Append("lo"))
	m.Freeze()
	assert.False(t, m.Append(" world"))
	assert.Equal(t, "hello", m.Text)
}

func TestParseToolName(t *testing.T) {
	t.Parallel()
	for _, n := range chat.ToolNames {
		got, ok := chat.ParseToolName(string(n))
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
	_, ok := chat.ParseToolName("format_disk")
	assert.False(t, ok)
}

func TestDefaultTheme(t *testing.T) {
	t.Parallel()
	theme := chat.DefaultTheme()
	assert.Equal(t, 4, theme.User)
	assert.Equal(t, 2, theme.Assistant)
	assert.Equal(t, 3, theme.System)
	assert.Equal(t, 1, theme.Error)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, chat.Color("8"), chat.ANSIColor(theme.Muted))
	assert.Equal(t, chat.Color(""), chat.ANSIColor(-1))
}

func TestStatusError(t *testing.T) {
	t.Parallel()
	err := &chat.StatusError{Code: 403, Body: `{"error":"denied"}`}
	assert.Equal(t, `API error 403: {"error":"denied"}`, err.Error())
}

func TestCoalesce(t *testing.T) {
	t.Parallel()
	red := chat.Style{Color: "#ff0000"}
	got := chat.Coalesce([]chat.Span{
		{Text: "a", Style: red},
		{Text: "b", Style: red},
		{Text: ""},
		{Text: "c"},
		{Text: "d", Style: red},
	})
	assert.Equal(t, []chat.Span{
		{Text: "ab", Style: red},
		{Text: "c"},
		{Text: "d", Style: red},
	}, got)
}

func TestSplitLines(t *testing.T) {
	t.Parallel()
	assert.Nil(t, chat.SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, chat.SplitLines("a\r\nb\n"))
	assert.Equal(t, []string{"a", ""}, chat.SplitLines("a\n\n"))
	assert.Equal(t, []string{"a", "b"}, chat.SplitLines("a\nb"))
}

func TestPlainHighlighter(t *testing.T) {
	t.Parallel()
	lines := chat.PlainHighlighter{}.Highlight("", "x := 1\n\ny\n")
	assert.Equal(t, []chat.Line{
		{Spans: []chat.Span{{Text: "x := 1"}}},
		{},
		{Spans: []chat.Span{{Text: "y"}}},
	}, lines)
	assert.Equal(t, "x := 1", lines[0].Text())
}
