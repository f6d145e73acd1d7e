package markdown

import (
	"strings"

	"github.com/fwojciec/chat"
)

const boldMarker = "**"

// Inline splits one line into plain and bold spans. Each ** toggles bold;
// an unmatched marker leaves the rest of the line bold. Bold never carries
// over to the next line. A single * is ordinary text.
func Inline(line string) []chat.Span {
	var (
		spans []chat.Span
		bold  bool
	)
	for {
		i := strings.Index(line, boldMarker)
		if i < 0 {
			spans = append(spans, chat.Span{Text: line, Style: chat.Style{Bold: bold}})
			break
		}
		spans = append(spans, chat.Span{Text: line[:i], Style: chat.Style{Bold: bold}})
		line = line[i+len(boldMarker):]
		bold = !bold
	}
	return chat.Coalesce(spans)
}
