package gemini_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/chat"
	"github.com/fwojciec/chat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSSE = "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"Hel\"}],\"role\":\"model\"}}]}\n" +
	"\n" +
	": keep-alive\n" +
	"data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"lo ✓\"},{\"functionCall\":{\"name\":\"run_command\",\"args\":{\"command\":\"ls\"}}}]}}]}\n" +
	"\n" +
	"data: {\"usageMetadata\":{\"promptTokenCount\":3,\"candidatesTokenCount\":4,\"totalTokenCount\":7}}\n" +
	"\n"

var sampleEvents = []chat.Event{
	chat.EventContentDelta{Text: "Hel"},
	chat.EventContentDelta{Text: "lo ✓"},
	chat.EventToolCall{Name: "run_command", Arguments: `{"command":"ls"}`},
	chat.EventUsage{Usage: chat.Usage{Prompt: 3, Response: 4, Total: 7}},
	chat.EventEnd{},
}

func decodeAll(chunks ...string) []chat.Event {
	d := gemini.NewDecoder(nil)
	var events []chat.Event
	for _, c := range chunks {
		events = append(events, d.Ingest([]byte(c))...)
	}
	return append(events, d.Finalize(nil)...)
}

func TestDecoder_WholeInput(t *testing.T) {
	t.Parallel()
	assert.Equal(t, sampleEvents, decodeAll(sampleSSE))
}

func TestDecoder_ChunkBoundaryInvariance(t *testing.T) {
	t.Parallel()
	// Splits at every byte offset, including inside the multi-byte rune.
	for i := 0; i <= len(sampleSSE); i++ {
		got := decodeAll(sampleSSE[:i], sampleSSE[i:])
		require.Equal(t, sampleEvents, got, "split at %d", i)
	}
}

func TestDecoder_ByteAtATime(t *testing.T) {
	t.Parallel()
	chunks := make([]string, len(sampleSSE))
	for i := 0; i < len(sampleSSE); i++ {
		chunks[i] = sampleSSE[i : i+1]
	}
	assert.Equal(t, sampleEvents, decodeAll(chunks...))
}

func TestDecoder_SplitLineEmitsNothingUntilComplete(t *testing.T) {
	t.Parallel()
	line := "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"hi\"}]}}]}\n"
	d := gemini.NewDecoder(nil)

	assert.Empty(t, d.Ingest([]byte(line[:20])))
	assert.Equal(t, []chat.Event{chat.EventContentDelta{Text: "hi"}}, d.Ingest([]byte(line[20:])))
}

func TestDecoder_FunctionCallSignature(t *testing.T) {
	t.Parallel()
	input := "data: {\"candidates\":[{\"content\":{\"parts\":[" +
		"{\"functionCall\":{\"name\":\"run_command\",\"args\":{\"command\":\"ls\"}},\"thoughtSignature\":\"c2lnLWJ5dGVz\"}" +
		"]}}]}\n"
	assert.Equal(t, []chat.Event{
		chat.EventToolCall{Name: "run_command", Arguments: `{"command":"ls"}`, Signature: []byte("sig-bytes")},
		chat.EventEnd{},
	}, decodeAll(input))
}

func TestDecoder_CRLF(t *testing.T) {
	t.Parallel()
	crlf := strings.ReplaceAll(sampleSSE, "\n", "\r\n")
	assert.Equal(t, sampleEvents, decodeAll(crlf))
}

func TestDecoder_MalformedLines(t *testing.T) {
	t.Parallel()
	input := "data: {not json\n" +
		"event: message\n" +
		"data:{\"candidates\":[]}\n" +
		"data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"ok\"}]}}]}\n" +
		"data: [1,2\n"
	assert.Equal(t, []chat.Event{
		chat.EventContentDelta{Text: "ok"},
		chat.EventEnd{},
	}, decodeAll(input))
}

func TestDecoder_PartialLineDiscardedAtFinalize(t *testing.T) {
	t.Parallel()
	input := "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"a\"}]}}]}\n" +
		"data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"b\"}]}}]}"
	assert.Equal(t, []chat.Event{
		chat.EventContentDelta{Text: "a"},
		chat.EventEnd{},
	}, decodeAll(input))
}

func TestDecoder_UsageDefaults(t *testing.T) {
	t.Parallel()
	got := decodeAll("data: {\"usageMetadata\":{\"totalTokenCount\":9}}\n")
	assert.Equal(t, []chat.Event{
		chat.EventUsage{Usage: chat.Usage{Total: 9}},
		chat.EventEnd{},
	}, got)
}

func TestDecoder_FunctionCallWithoutArgs(t *testing.T) {
	t.Parallel()
	got := decodeAll("data: {\"candidates\":[{\"content\":{\"parts\":[{\"functionCall\":{\"name\":\"delete_file\"}},{\"functionCall\":{\"args\":{}}}]}}]}\n")
	assert.Equal(t, []chat.Event{
		chat.EventToolCall{Name: "delete_file", Arguments: "{}"},
		chat.EventEnd{},
	}, got)
}

func TestDecoder_FirstCandidateOnly(t *testing.T) {
	t.Parallel()
	got := decodeAll("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"one\"}]}},{\"content\":{\"parts\":[{\"text\":\"two\"}]}}]}\n")
	assert.Equal(t, []chat.Event{
		chat.EventContentDelta{Text: "one"},
		chat.EventEnd{},
	}, got)
}

func TestDecoder_InvalidUTF8(t *testing.T) {
	t.Parallel()
	got := decodeAll("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"a\xffb\"}]}}]}\n")
	assert.Equal(t, []chat.Event{
		chat.EventContentDelta{Text: "a�b"},
		chat.EventEnd{},
	}, got)
}

func TestDecoder_FinalizeWithError(t *testing.T) {
	t.Parallel()
	d := gemini.NewDecoder(nil)
	events := d.Ingest([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"x\"}]}}]}\ndata: {\"cand"))
	events = append(events, d.Finalize(errors.New("connection reset"))...)
	assert.Equal(t, []chat.Event{
		chat.EventContentDelta{Text: "x"},
		chat.EventError{Message: "connection reset"},
		chat.EventEnd{},
	}, events)

	assert.Nil(t, d.Ingest([]byte("data: {}\n")))
	assert.Nil(t, d.Finalize(nil))
}
