package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// Summarize exports summarize for testing.
func Summarize(text string, width int) string {
	return summarize(text, width)
}
