package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/chat"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ chat.Provider = (*Client)(nil)

// Client implements [chat.Provider] for the Google Gemini API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        *logrus.Entry
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Default is the public Gemini endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithModel sets the model ID. Default is gemini-3-flash-preview.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithLogger sets the logger used for request and chunk diagnostics.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) { c.log = log }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = discardLogger()
	}
	return c
}

// Model returns the default model ID used when a request names none.
func (c *Client) Model() string {
	return c.model
}

// requestBody is the JSON body of a streamGenerateContent call.
type requestBody struct {
	Contents          []*genai.Content `json:"contents"`
	Tools             []*genai.Tool    `json:"tools,omitempty"`
	SystemInstruction *genai.Content   `json:"systemInstruction,omitempty"`
}

// Stream sends a streaming request and returns a [chat.Stream] of decoded
// events. A non-success status is not an error: the returned stream yields
// an EventError carrying the status and body, then EventEnd.
func (c *Client) Stream(ctx context.Context, req chat.Request) (chat.Stream, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	body, err := json.Marshal(requestBody{
		Contents:          ConvertEntries(req.Entries),
		Tools:             ConvertTools(req.Tools),
		SystemInstruction: systemInstruction(req.SystemPrompt),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse", c.baseURL, url.PathEscape(model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	log := c.log.WithField("model", model)
	log.WithField("entries", len(req.Entries)).Debug("sending request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &chat.StatusError{Code: resp.StatusCode, Body: string(b)}
		log.WithField("status", resp.StatusCode).Debug("request rejected")
		return newEventStream(chat.EventError{Message: statusErr.Error()}, chat.EventEnd{}), nil
	}

	return newStream(resp.Body, NewDecoder(log), log), nil
}
