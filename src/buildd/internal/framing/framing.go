// Package framing enforces the frame order of the interactive stream: exactly one client
// context, first, followed by any number of LSP frames.
package framing

import (
	"fmt"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"google.golang.org/grpc/codes"
)

// State is the position of a stream in its frame sequence.
type State int

const (
	// AwaitingContext is the initial state.
	AwaitingContext State = iota
	// Active follows a single client context.
	Active
	// Failed is terminal. Every further frame returns the error that caused it.
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitingContext:
		return "awaiting_context"
	case Active:
		return "active"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Framer tracks one stream. It is not safe for concurrent use; a stream has a single reader.
type Framer struct {
	state   State
	context *api.ClientContext
	err     error
}

// New returns a Framer awaiting the client context.
func New() *Framer {
	return &Framer{}
}

// State returns the current state.
func (f *Framer) State() State {
	return f.state
}

// Context returns the accepted client context, or nil before it arrived.
func (f *Framer) Context() *api.ClientContext {
	return f.context
}

// Accept advances the state machine by one frame. It returns the LSP payload for an LSP
// frame, nil for the client context, and a protocol error on an out-of-order frame.
func (f *Framer) Accept(req *api.StreamingRequest) (*api.LspRequest, error) {
	if f.state == Failed {
		return nil, f.err
	}
	if req == nil || req.Frame == nil {
		return nil, f.fail(errors.Protocolf(codes.InvalidArgument, "empty streaming frame"))
	}

	switch frame := req.Frame.(type) {
	case *api.ClientContext:
		if f.state != AwaitingContext {
			return nil, f.fail(errors.ErrDuplicateClientContext)
		}
		f.context = frame
		f.state = Active
		return nil, nil
	case *api.LspRequest:
		if f.state != Active {
			return nil, f.fail(errors.ErrNoClientContext)
		}
		return frame, nil
	}
	return nil, f.fail(errors.Protocolf(codes.InvalidArgument, "unexpected frame %T", req.Frame))
}

// Close reports whether the stream ended in a valid state. A stream that closes before
// sending its client context is a protocol violation.
func (f *Framer) Close() error {
	switch f.state {
	case Failed:
		return f.err
	case AwaitingContext:
		return f.fail(errors.ErrNoClientContext)
	}
	return nil
}

func (f *Framer) fail(err error) error {
	f.state = Failed
	f.err = err
	return err
}
