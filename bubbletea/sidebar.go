package bubbletea

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// sidebar renders the left column: model, token usage and key help.
func (m Model) sidebar() string {
	inner := sidebarWidth - 2 // border and padding
	usage := m.usage.Totals()

	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("Model"))
	b.WriteString("\n")
	b.WriteString(runewidth.Truncate(m.modelName, inner, "…"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Accent.Render("Tokens"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Prompt: %d\n", usage.Prompt)
	fmt.Fprintf(&b, "Resp:   %d\n", usage.Response)
	fmt.Fprintf(&b, "Total:  %d\n", usage.Total)
	b.WriteString("\n")

	b.WriteString(m.styles.Accent.Render("Keys"))
	b.WriteString("\n")
	for _, line := range m.keyHelp() {
		b.WriteString(m.styles.Muted.Render(runewidth.Truncate(line, inner, "…")))
		b.WriteString("\n")
	}

	style := m.styles.Sidebar
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) keyHelp() []string {
	if m.mode == ModeNormal {
		return []string{
			"i      edit",
			"j/k    scroll",
			"G      follow",
			"c      clear",
			"y      copy reply",
			"q      quit",
		}
	}
	return []string{
		"Enter  send",
		"Esc    normal mode",
		"Ctrl+C cancel/quit",
	}
}

// summarize reduces text to its first line, truncated to width cells.
func summarize(text string, width int) string {
	first, _, more := strings.Cut(text, "\n")
	if more {
		first += " …"
	}
	if width <= 0 {
		return first
	}
	return runewidth.Truncate(first, width, "…")
}
