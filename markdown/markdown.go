// Package markdown renders chat replies into styled display lines.
//
// Only two constructs are recognized: fenced code blocks, which are passed
// to a [chat.Highlighter], and ** bold markers. Everything else is shown as
// written. Render is pure, so a reply that is still streaming can be
// re-rendered from scratch after every delta.
package markdown

import (
	"strings"

	"github.com/fwojciec/chat"
)

const fence = "```"

// Render converts text into display lines. A fence that is still open at
// the end of text is flushed through the highlighter without a closing
// line, so partial code blocks render the same way they will once closed.
// A nil hl renders code blocks plain.
func Render(text string, hl chat.Highlighter, theme chat.Theme) []chat.Line {
	if hl == nil {
		hl = chat.PlainHighlighter{}
	}
	dim := chat.Style{Color: chat.ANSIColor(theme.Muted)}

	var (
		out     []chat.Line
		inFence bool
		lang    string
		pending strings.Builder
	)
	for _, line := range chat.SplitLines(text) {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, fence):
			if inFence {
				out = append(out, hl.Highlight(lang, pending.String())...)
				pending.Reset()
			} else {
				lang = languageTag(trimmed)
			}
			inFence = !inFence
			out = append(out, chat.Line{Spans: chat.Coalesce([]chat.Span{{Text: line, Style: dim}})})
		case inFence:
			pending.WriteString(line)
			pending.WriteByte('\n')
		case line == "":
			out = append(out, chat.Line{})
		default:
			out = append(out, chat.Line{Spans: Inline(line)})
		}
	}
	if inFence && pending.Len() > 0 {
		out = append(out, hl.Highlight(lang, pending.String())...)
	}
	return out
}

// languageTag returns the first word after the opening backticks.
func languageTag(fenceLine string) string {
	fields := strings.Fields(strings.TrimLeft(fenceLine, "`"))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
