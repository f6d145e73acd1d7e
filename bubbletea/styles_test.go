package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chat"
	bt "github.com/fwojciec/chat/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	s := bt.NewStyles(chat.DefaultTheme())
	assert.Equal(t, lipgloss.Color("4"), s.User.GetForeground())
	assert.Equal(t, lipgloss.Color("2"), s.Assistant.GetForeground())
	assert.Equal(t, lipgloss.Color("1"), s.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("3"), s.System.GetForeground())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	theme := chat.DefaultTheme()
	theme.User = -1
	s := bt.NewStyles(theme)
	assert.Equal(t, lipgloss.NoColor{}, s.User.GetForeground())
}

func TestRenderLine(t *testing.T) {
	t.Parallel()

	t.Run("plain span has no escapes", func(t *testing.T) {
		t.Parallel()
		got := bt.RenderLine(chat.Line{Spans: []chat.Span{{Text: "hello"}}})
		assert.Equal(t, "hello", got)
	})

	t.Run("styled spans keep their text", func(t *testing.T) {
		t.Parallel()
		got := bt.RenderLine(chat.Line{Spans: []chat.Span{
			{Text: "a", Style: chat.Style{Bold: true}},
			{Text: "b", Style: chat.Style{Color: "2"}},
		}})
		assert.Contains(t, got, "a")
		assert.Contains(t, got, "b")
		assert.Contains(t, got, "\x1b[")
	})

	t.Run("empty line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", bt.RenderLine(chat.Line{}))
	})
}
