// Package testing provides test doubles for the sink package.
package testing

import (
	"context"
	"errors"
	"sync"

	"github.com/rileyhilliard/ledmon/internal/sink"
)

// ErrInjected is returned by FakeSink while failures are pending.
var ErrInjected = errors.New("injected sink failure")

// FakeSink records every request it receives. FailNext makes the next n
// sends fail; Block holds sends until Release is called.
type FakeSink struct {
	mu       sync.Mutex
	requests []sink.Request
	failures int
	attempts int
	gate     chan struct{}
	entered  chan struct{}
}

// NewFakeSink creates a sink that accepts everything.
func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

// Send implements sink.Sink.
func (f *FakeSink) Send(ctx context.Context, req sink.Request) error {
	f.mu.Lock()
	f.attempts++
	gate, entered := f.gate, f.entered
	f.mu.Unlock()

	if gate != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Empty() {
		return sink.ErrEmptyRequest
	}
	if f.failures > 0 {
		f.failures--
		return ErrInjected
	}
	f.requests = append(f.requests, req)
	return nil
}

// FailNext makes the next n sends return ErrInjected.
func (f *FakeSink) FailNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = n
}

// Block makes sends wait until Release. The returned channel receives once
// each time a send starts waiting.
func (f *FakeSink) Block() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
	f.entered = make(chan struct{}, 1)
	return f.entered
}

// Release unblocks every waiting and future send.
func (f *FakeSink) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
}

// Requests returns a copy of the successfully delivered requests.
func (f *FakeSink) Requests() []sink.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sink.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// Attempts returns how many times Send was called.
func (f *FakeSink) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

var _ sink.Sink = (*FakeSink)(nil)
