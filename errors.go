package chat

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrTurnInProgress indicates a send was attempted while a previous
	// turn has not yet ended.
	ErrTurnInProgress = errors.New("turn in progress")

	// ErrUnknownTool indicates the model asked for a tool outside the
	// fixed tool set.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// StatusError is returned when the endpoint answers the initial request
// with a non-success status. Body is the raw response body.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Body)
}
