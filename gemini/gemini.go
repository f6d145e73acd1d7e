// Package gemini implements [chat.Provider] for the Google Gemini API.
//
// Requests go straight to the streamGenerateContent REST endpoint with
// alt=sse. Request and response payloads reuse the google.golang.org/genai
// wire types, but the stream itself is decoded here by [Decoder] so that
// partial chunks, CRLF line endings and malformed events are handled the
// same way regardless of how the transport splits the body.
package gemini

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-3-flash-preview"

	// chunkSize is the read size used when pulling the response body.
	chunkSize = 4096

	// maxErrorBody caps how much of a non-success response body is kept.
	maxErrorBody = 64 << 10
)
