package gemini

import (
	"fmt"
	"io"

	"github.com/fwojciec/chat"
	"github.com/sirupsen/logrus"
)

// stream implements [chat.Stream] by feeding response body chunks through
// a Decoder.
type stream struct {
	body   io.ReadCloser
	dec    *Decoder
	log    *logrus.Entry
	buf    []byte
	queue  []chat.Event
	done   bool
	closed bool
}

// Interface compliance check.
var _ chat.Stream = (*stream)(nil)

func newStream(body io.ReadCloser, dec *Decoder, log *logrus.Entry) *stream {
	return &stream{
		body: body,
		dec:  dec,
		log:  log,
		buf:  make([]byte, chunkSize),
	}
}

// newEventStream returns a stream that yields events and then io.EOF
// without reading anything.
func newEventStream(events ...chat.Event) *stream {
	return &stream{queue: events, done: true}
}

// Next returns the next decoded event. It returns io.EOF once EventEnd has
// been delivered.
func (s *stream) Next() (chat.Event, error) {
	for len(s.queue) == 0 {
		if s.done {
			return nil, io.EOF
		}
		if s.closed {
			return nil, fmt.Errorf("gemini: %w", chat.ErrStreamClosed)
		}
		s.fill()
	}
	evt := s.queue[0]
	s.queue = s.queue[1:]
	return evt, nil
}

// fill reads one chunk and queues the events it completes. A read error
// finalizes the decoder.
func (s *stream) fill() {
	n, err := s.body.Read(s.buf)
	if n > 0 {
		s.log.WithField("bytes", n).Debugf("chunk: %q", s.buf[:n])
		s.queue = append(s.queue, s.dec.Ingest(s.buf[:n])...)
	}
	switch {
	case err == io.EOF:
		s.finish(nil)
	case err != nil:
		s.log.WithError(err).Debug("read failed")
		s.finish(fmt.Errorf("gemini: %w", err))
	}
}

func (s *stream) finish(err error) {
	s.queue = append(s.queue, s.dec.Finalize(err)...)
	s.done = true
}

// Close closes the response body. Events already queued are still returned
// by Next.
func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.body == nil {
		return nil
	}
	return s.body.Close()
}
