package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chat"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	User      lipgloss.Style
	Assistant lipgloss.Style
	System    lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Sidebar   lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t chat.Theme) Styles {
	return Styles{
		User:      lipgloss.NewStyle().Foreground(ansiColor(t.User)).Bold(true),
		Assistant: lipgloss.NewStyle().Foreground(ansiColor(t.Assistant)).Bold(true),
		System:    lipgloss.NewStyle().Foreground(ansiColor(t.System)).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(ansiColor(t.Error)).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Sidebar: lipgloss.NewStyle().
			Width(sidebarWidth - 1).
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(ansiColor(t.Muted)),
	}
}

// roleStyle returns the header style and label for a role.
func (s Styles) roleStyle(r chat.Role) (lipgloss.Style, string) {
	switch r {
	case chat.RoleUser:
		return s.User, "You:"
	case chat.RoleAssistant:
		return s.Assistant, "AI:"
	case chat.RoleError:
		return s.Error, "Error:"
	default:
		return s.System, "System:"
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(chat.ANSIColor(index))
}

// RenderLine converts a styled display line to ANSI text.
func RenderLine(l chat.Line) string {
	var b strings.Builder
	for _, span := range l.Spans {
		style := lipgloss.NewStyle().Bold(span.Style.Bold)
		if span.Style.Color != "" {
			style = style.Foreground(lipgloss.Color(span.Style.Color))
		}
		b.WriteString(style.Render(span.Text))
	}
	return b.String()
}
