// Package sink delivers rendered panels to the LED-matrix daemon.
package sink

import (
	"context"
	"errors"
)

// ErrEmptyRequest is returned when a request carries neither panel.
var ErrEmptyRequest = errors.New("at least one panel image is required")

// Request holds the PNG bytes of each panel. A nil panel is left out of the
// request and the daemon keeps showing whatever it last displayed there.
type Request struct {
	Left  []byte
	Right []byte
}

// Empty reports whether the request has no panels.
func (r Request) Empty() bool {
	return r.Left == nil && r.Right == nil
}

// Sink accepts rendered frames.
type Sink interface {
	Send(ctx context.Context, req Request) error
}
