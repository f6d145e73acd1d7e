package chat

import "strings"

// Color is a foreground color: an ANSI index ("8") or a hex triplet
// ("#f8f8f2"). The empty Color is the terminal default.
type Color string

// Style is the visual style of a Span. Only bold and a foreground color are
// supported; there is no background or underline.
type Style struct {
	Bold  bool
	Color Color
}

// Span is a run of text sharing one Style.
type Span struct {
	Text  string
	Style Style
}

// Line is one display line made of styled spans.
type Line struct {
	Spans []Span
}

// Text returns the line content without styling.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Coalesce merges adjacent spans that share an identical style and drops
// empty spans.
func Coalesce(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == s.Style {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// Highlighter colors source code. Highlight receives newline-terminated
// source lines and returns exactly one Line per source line.
type Highlighter interface {
	Highlight(lang, source string) []Line
}

// PlainHighlighter returns every source line as a single unstyled span.
type PlainHighlighter struct{}

// Interface compliance check.
var _ Highlighter = PlainHighlighter{}

// Highlight implements Highlighter.
func (PlainHighlighter) Highlight(_, source string) []Line {
	var lines []Line
	for _, text := range SplitLines(source) {
		lines = append(lines, Line{Spans: Coalesce([]Span{{Text: text}})})
	}
	return lines
}

// SplitLines splits text on "\n", strips one trailing "\r" from every line
// and does not produce a trailing empty line when text ends with "\n".
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
