// Package multiplex serializes an invocation's events and its single terminal result onto one
// progress stream.
package multiplex

import (
	"context"
	stderr "errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"sync"

	"github.com/uber-go/tally/v4"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyCapacity = "multiplex.capacity"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ErrStreamClosed is returned when an event is published after the terminal result was decided.
var ErrStreamClosed = stderr.New("multiplex: stream closed")

// Sender is the transport end of a progress stream.
type Sender interface {
	Send(*api.CommandProgressForWrite) error
}

// Handler runs one command. It publishes events through the sink and returns the terminal
// payload; the multiplexer owns writing it.
type Handler func(ctx context.Context, sink *Sink) (api.ResultPayload, error)

// Multiplexer runs handlers against progress streams.
type Multiplexer interface {
	// Run invokes h and writes its events, then exactly one terminal result, to send.
	// It returns a protocol error unchanged so the RPC can fail with its status.
	Run(ctx context.Context, send Sender, h Handler) error
}

// Params define values to be used by the multiplexer.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
	Stats  tally.Scope
}

type multiplexer struct {
	capacity int
	logger   *zap.SugaredLogger

	published tally.Counter
	dropped   tally.Counter
	sendFails tally.Counter
}

// New creates a Multiplexer.
func New(p Params) (Multiplexer, error) {
	m := &multiplexer{
		logger: p.Logger,
	}
	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	scope := p.Stats.SubScope("multiplex")
	m.published = scope.Counter("events_published")
	m.dropped = scope.Counter("events_dropped_closed")
	m.sendFails = scope.Counter("send_failures")
	return m, nil
}

func (m *multiplexer) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyCapacity)
	if err := val.Populate(&m.capacity); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyCapacity, err)
	}

	if m.capacity <= 0 {
		return fmt.Errorf("missing field %q in config", _configKeyCapacity)
	}
	return nil
}

func (m *multiplexer) Run(ctx context.Context, send Sender, h Handler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := &Sink{
		ctx:       ctx,
		ch:        make(chan []byte, m.capacity),
		logger:    m.logger,
		published: m.published,
		dropped:   m.dropped,
	}

	writerDone := make(chan error, 1)
	go func() {
		writerDone <- m.drain(send, sink.ch, cancel)
	}()

	payload, err := m.invoke(ctx, h, sink)
	sink.seal()

	if sendErr := <-writerDone; sendErr != nil {
		return fmt.Errorf("sending event: %w", sendErr)
	}

	result, err := Result(payload, err)
	if err != nil {
		return err
	}
	if err := send.Send(&api.CommandProgressForWrite{Item: result}); err != nil {
		m.sendFails.Inc(1)
		return fmt.Errorf("sending result: %w", err)
	}
	return nil
}

// drain writes queued events in order. After a send failure it cancels the handler and
// discards the rest so publishers never block on a dead client.
func (m *multiplexer) drain(send Sender, ch <-chan []byte, cancel context.CancelFunc) error {
	for raw := range ch {
		if err := send.Send(api.NewEventItem(raw)); err != nil {
			m.sendFails.Inc(1)
			cancel()
			for range ch {
			}
			return err
		}
	}
	return nil
}

func (m *multiplexer) invoke(ctx context.Context, h Handler, sink *Sink) (payload api.ResultPayload, err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorw("command handler panicked", "panic", r, "stack", string(debug.Stack()))
			payload, err = nil, fmt.Errorf("command panicked: %v", r)
		}
	}()
	return h(ctx, sink)
}

// Result maps a handler outcome to its terminal result. Protocol errors are returned as
// errors; every other failure becomes a CommandError.
func Result(payload api.ResultPayload, err error) (*api.CommandResult, error) {
	if err != nil {
		if pe, ok := errors.AsProtocol(err); ok {
			return nil, pe
		}
		var ce *api.CommandError
		if stderr.As(err, &ce) {
			return &api.CommandResult{Result: ce}, nil
		}
		return api.NewErrorResult(err.Error()), nil
	}
	if isNil(payload) {
		return api.NewErrorResult("command returned no result"), nil
	}
	return &api.CommandResult{Result: payload}, nil
}

func isNil(p api.ResultPayload) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Sink is a handler's capability to publish events on its stream.
type Sink struct {
	ctx    context.Context
	mu     sync.Mutex
	sealed bool
	ch     chan []byte
	logger *zap.SugaredLogger

	published tally.Counter
	dropped   tally.Counter
}

// PublishEncoded queues an encoded event. It blocks while the stream is full and returns
// early when the invocation is cancelled.
func (s *Sink) PublishEncoded(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		s.dropped.Inc(1)
		s.logger.DPanicw("event published after the stream was closed", "bytes", len(raw))
		return ErrStreamClosed
	}
	if err := s.ctx.Err(); err != nil {
		return err
	}

	select {
	case s.ch <- raw:
		s.published.Inc(1)
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

func (s *Sink) seal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sealed = true
	close(s.ch)
}
