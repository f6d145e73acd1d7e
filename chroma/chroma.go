// Package chroma implements [chat.Highlighter] using the chroma syntax
// highlighting library.
package chroma

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fwojciec/chat"
)

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "monokai"

// Interface compliance check.
var _ chat.Highlighter = (*Highlighter)(nil)

// Highlighter colors code with a fixed chroma style. Only the foreground
// colour and bold attribute of the style are used.
type Highlighter struct {
	style    *chroma.Style
	fallback chat.Highlighter
}

// New returns a Highlighter using the named chroma style. Unknown names
// fall back to chroma's default style.
func New(style string) *Highlighter {
	return &Highlighter{
		style:    styles.Get(style),
		fallback: chat.PlainHighlighter{},
	}
}

// Highlight implements chat.Highlighter. Languages chroma does not know,
// and an empty language, are rendered plain.
func (h *Highlighter) Highlight(lang, source string) []chat.Line {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return h.fallback.Highlight(lang, source)
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return h.fallback.Highlight(lang, source)
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return h.fallback.Highlight(lang, source)
	}

	var (
		lines []chat.Line
		cur   []chat.Span
	)
	for _, tok := range it.Tokens() {
		style := h.spanStyle(tok.Type)
		pieces := strings.Split(tok.Value, "\n")
		for i, piece := range pieces {
			if i > 0 {
				lines = append(lines, chat.Line{Spans: chat.Coalesce(cur)})
				cur = nil
			}
			cur = append(cur, chat.Span{Text: strings.TrimSuffix(piece, "\r"), Style: style})
		}
	}
	if spans := chat.Coalesce(cur); len(spans) > 0 {
		lines = append(lines, chat.Line{Spans: spans})
	}

	// The lexer may add a trailing newline; keep one Line per source line.
	want := len(chat.SplitLines(source))
	for len(lines) < want {
		lines = append(lines, chat.Line{})
	}
	return lines[:want]
}

func (h *Highlighter) spanStyle(t chroma.TokenType) chat.Style {
	entry := h.style.Get(t)
	var s chat.Style
	if entry.Colour.IsSet() {
		s.Color = chat.Color(entry.Colour.String())
	}
	s.Bold = entry.Bold == chroma.Yes
	return s
}
