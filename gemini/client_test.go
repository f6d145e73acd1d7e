package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/chat"
	"github.com/fwojciec/chat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s chat.Stream) []chat.Event {
	t.Helper()
	var events []chat.Event
	for {
		evt, err := s.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, evt)
	}
}

func firstPart(t *testing.T, content map[string]any) map[string]any {
	t.Helper()
	parts, ok := content["parts"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, parts)
	return parts[0].(map[string]any)
}

func TestClient_Stream(t *testing.T) {
	t.Parallel()

	t.Run("sends request and decodes response", func(t *testing.T) {
		t.Parallel()

		var (
			gotPath  string
			gotQuery string
			gotKey   string
			gotBody  map[string]any
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			gotKey = r.Header.Get("x-goog-api-key")
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "text/event-stream")
			flusher := w.(http.Flusher)
			// Split an event mid-line across two flushes.
			_, _ = io.WriteString(w, sampleSSE[:40])
			flusher.Flush()
			_, _ = io.WriteString(w, sampleSSE[40:])
			flusher.Flush()
		}))
		t.Cleanup(srv.Close)

		client := gemini.New("secret", gemini.WithBaseURL(srv.URL+"/"), gemini.WithHTTPClient(srv.Client()))
		s, err := client.Stream(context.Background(), chat.Request{
			SystemPrompt: "be brief",
			Entries:      []chat.Entry{chat.UserEntry{Text: "hi"}},
			Tools: []chat.Tool{{
				Name:        chat.ToolRunCommand,
				Description: "Run a shell command",
				Params:      []chat.ToolParam{{Name: "command", Description: "The command", Required: true}},
			}},
		})
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, sampleEvents, drain(t, s))
		assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:streamGenerateContent", gotPath)
		assert.Equal(t, "alt=sse", gotQuery)
		assert.Equal(t, "secret", gotKey)

		contents, ok := gotBody["contents"].([]any)
		require.True(t, ok)
		require.Len(t, contents, 1)
		first := contents[0].(map[string]any)
		assert.Equal(t, "user", first["role"])
		assert.Equal(t, "hi", firstPart(t, first)["text"])

		sys := gotBody["systemInstruction"].(map[string]any)
		assert.Equal(t, "be brief", firstPart(t, sys)["text"])

		tools := gotBody["tools"].([]any)
		require.Len(t, tools, 1)
		decls := tools[0].(map[string]any)["functionDeclarations"].([]any)
		require.Len(t, decls, 1)
		assert.Equal(t, "run_command", decls[0].(map[string]any)["name"])
	})

	t.Run("request model overrides default", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
		}))
		t.Cleanup(srv.Close)

		client := gemini.New("k", gemini.WithBaseURL(srv.URL), gemini.WithModel("gemini-2.5-flash"))
		s, err := client.Stream(context.Background(), chat.Request{Model: "gemini-2.5-pro"})
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, []chat.Event{chat.EventEnd{}}, drain(t, s))
		assert.Equal(t, "/v1beta/models/gemini-2.5-pro:streamGenerateContent", gotPath)
		assert.Equal(t, "gemini-2.5-flash", client.Model())
	})

	t.Run("non-success status becomes error event", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "data: {\"error\":\"API key not valid\"}\n")
		}))
		t.Cleanup(srv.Close)

		client := gemini.New("bad", gemini.WithBaseURL(srv.URL))
		s, err := client.Stream(context.Background(), chat.Request{})
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, []chat.Event{
			chat.EventError{Message: "API error 400: data: {\"error\":\"API key not valid\"}\n"},
			chat.EventEnd{},
		}, drain(t, s))
	})

	t.Run("unreachable endpoint returns error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		client := gemini.New("k", gemini.WithBaseURL(srv.URL))
		_, err := client.Stream(context.Background(), chat.Request{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gemini:")
	})

	t.Run("cancellation mid-stream yields error then end", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"partial\"}]}}]}\n")
			w.(http.Flusher).Flush()
			select {
			case <-r.Context().Done():
			case <-release:
			}
		}))
		t.Cleanup(func() {
			close(release)
			srv.Close()
		})

		ctx, cancel := context.WithCancel(context.Background())
		client := gemini.New("k", gemini.WithBaseURL(srv.URL))
		s, err := client.Stream(ctx, chat.Request{})
		require.NoError(t, err)
		defer s.Close()

		evt, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, chat.EventContentDelta{Text: "partial"}, evt)

		cancel()
		evt, err = s.Next()
		require.NoError(t, err)
		assert.IsType(t, chat.EventError{}, evt)

		evt, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, chat.EventEnd{}, evt)

		_, err = s.Next()
		assert.Equal(t, io.EOF, err)
	})
}
