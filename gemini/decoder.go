package gemini

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/fwojciec/chat"
	"github.com/sirupsen/logrus"
	xunicode "golang.org/x/text/encoding/unicode"
	"google.golang.org/genai"
)

const dataPrefix = "data: "

// Decoder turns raw SSE bytes into chat events.
//
// Bytes are buffered until a full line is available, so the events produced
// do not depend on where chunk boundaries fall. Lines that are not data
// lines, and data lines whose payload is not valid JSON, are dropped.
type Decoder struct {
	buf  []byte
	done bool
	log  *logrus.Entry
}

// NewDecoder returns a Decoder. A nil logger discards diagnostics.
func NewDecoder(log *logrus.Entry) *Decoder {
	if log == nil {
		log = discardLogger()
	}
	return &Decoder{log: log}
}

// Ingest appends chunk to the pending bytes and returns the events of every
// line completed by it.
func (d *Decoder) Ingest(chunk []byte) []chat.Event {
	if d.done {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	var events []chat.Event
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(d.buf[:i], []byte("\r"))
		events = append(events, d.decodeLine(line)...)
		d.buf = d.buf[i+1:]
	}
	if len(d.buf) == 0 {
		d.buf = nil
	}
	return events
}

// Finalize ends the stream. A non-nil err is reported as an EventError
// before the closing EventEnd. Any unterminated line is discarded.
func (d *Decoder) Finalize(err error) []chat.Event {
	if d.done {
		return nil
	}
	d.done = true
	if len(d.buf) > 0 {
		d.log.WithField("bytes", len(d.buf)).Debug("discarding partial line")
		d.buf = nil
	}
	if err != nil {
		return []chat.Event{chat.EventError{Message: err.Error()}, chat.EventEnd{}}
	}
	return []chat.Event{chat.EventEnd{}}
}

func (d *Decoder) decodeLine(raw []byte) []chat.Event {
	line := toText(raw)
	payload, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return nil
	}

	var resp genai.GenerateContentResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		d.log.WithError(err).WithField("line", line).Debug("dropping malformed event")
		return nil
	}
	return responseEvents(&resp)
}

// responseEvents extracts the events of one response object: text and tool
// calls of the first candidate in part order, then usage.
func responseEvents(resp *genai.GenerateContentResponse) []chat.Event {
	var events []chat.Event
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part == nil {
				continue
			}
			if part.Text != "" {
				events = append(events, chat.EventContentDelta{Text: part.Text})
			}
			if fc := part.FunctionCall; fc != nil && fc.Name != "" {
				events = append(events, chat.EventToolCall{
					Name:      fc.Name,
					Arguments: encodeArgs(fc.Args),
					Signature: part.ThoughtSignature,
				})
			}
		}
	}
	if u := resp.UsageMetadata; u != nil {
		events = append(events, chat.EventUsage{Usage: chat.Usage{
			Prompt:   int(u.PromptTokenCount),
			Response: int(u.CandidatesTokenCount),
			Total:    int(u.TotalTokenCount),
		}})
	}
	return events
}

func encodeArgs(args map[string]any) string {
	if args == nil {
		return "{}"
	}
	b, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// toText decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func toText(b []byte) string {
	out, err := xunicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
