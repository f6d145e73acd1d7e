package mock

import (
	"io"

	"github.com/fwojciec/chat"
)

// Interface compliance check.
var _ chat.Stream = (*Stream)(nil)

// Stream is a test double for chat.Stream.
// NextFn panics when nil to catch missing setup. CloseFn is nil-safe because
// test code commonly calls defer stream.Close().
type Stream struct {
	NextFn  func() (chat.Event, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (chat.Event, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// NewStream returns a Stream that yields events in order and then io.EOF.
func NewStream(events ...chat.Event) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (chat.Event, error) {
			if i >= len(events) {
				return nil, io.EOF
			}
			evt := events[i]
			i++
			return evt, nil
		},
	}
}
