// Package demo implements an offline [chat.Provider] that answers every
// message with a canned reply. It is used when no API key is configured.
package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/chat"
)

// Interface compliance check.
var _ chat.Provider = (*Provider)(nil)

// Provider streams a fixed reply echoing the last user message.
type Provider struct {
	delay time.Duration
}

// Option configures a [Provider].
type Option func(*Provider)

// WithDelay sets the base pause between reply fragments. The first
// fragment waits 2.5 times as long. Zero disables pauses.
func WithDelay(d time.Duration) Option {
	return func(p *Provider) { p.delay = d }
}

// New creates a demo Provider with a 200ms base delay.
func New(opts ...Option) *Provider {
	p := &Provider{delay: 200 * time.Millisecond}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Stream implements chat.Provider.
func (p *Provider) Stream(ctx context.Context, req chat.Request) (chat.Stream, error) {
	input := lastUserText(req.Entries)
	steps := []step{
		{wait: p.delay * 5 / 2, event: chat.EventContentDelta{Text: "(Mock AI): "}},
		{wait: p.delay, event: chat.EventContentDelta{Text: fmt.Sprintf("I received: '%s'.\n", input)}},
		{wait: p.delay, event: chat.EventContentDelta{Text: "Set GEMINI_API_KEY for real responses."}},
		{event: chat.EventUsage{Usage: chat.Usage{Prompt: 10, Response: 20, Total: 30}}},
		{event: chat.EventEnd{}},
	}
	return &stream{ctx: ctx, steps: steps}, nil
}

func lastUserText(entries []chat.Entry) string {
	for i := len(entries) - 1; i >= 0; i-- {
		if u, ok := entries[i].(chat.UserEntry); ok {
			return u.Text
		}
	}
	return ""
}

type step struct {
	wait  time.Duration
	event chat.Event
}

type stream struct {
	ctx       context.Context
	steps     []step
	cancelled bool
}

// Next waits for the step's delay and returns its event. Cancellation
// produces an EventError followed by EventEnd.
func (s *stream) Next() (chat.Event, error) {
	if len(s.steps) == 0 {
		return nil, io.EOF
	}
	st := s.steps[0]
	if !s.cancelled && st.wait > 0 {
		timer := time.NewTimer(st.wait)
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			timer.Stop()
		}
	}
	if !s.cancelled {
		if err := s.ctx.Err(); err != nil {
			s.cancelled = true
			s.steps = []step{{event: chat.EventEnd{}}}
			return chat.EventError{Message: err.Error()}, nil
		}
	}
	s.steps = s.steps[1:]
	return st.event, nil
}

func (s *stream) Close() error {
	s.steps = nil
	return nil
}
