// Package dispatch stamps, encodes and fans out the events of one invocation: to the client's
// progress stream and to the invocation's event log.
package dispatch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/internal/clock"
	"github.com/uber/buildd/src/buildd/internal/codec"
	"github.com/uber/buildd/src/buildd/internal/eventlog"
	"go.uber.org/zap"
)

const _rootSpan = 1

// Emitter is what command implementations use to report progress.
type Emitter interface {
	// Emit publishes an event as a child of the command span.
	Emit(data api.EventData) error
	// Console publishes a message for the user's terminal.
	Console(level, msg string) error
}

// Publisher is the stream end of an invocation.
type Publisher interface {
	PublishEncoded(raw []byte) error
}

// Dispatcher is the Emitter of one invocation.
type Dispatcher struct {
	traceID string
	clock   clock.Clock
	pub     Publisher
	rec     eventlog.Writer
	logger  *zap.SugaredLogger

	nextSpan atomic.Uint64

	mu      sync.Mutex
	started time.Time
	name    string

	// pubMu keeps the event log in the order the client receives events.
	pubMu sync.Mutex
}

// New returns the dispatcher of one invocation.
func New(traceID string, clk clock.Clock, pub Publisher, rec eventlog.Writer, logger *zap.SugaredLogger) *Dispatcher {
	d := &Dispatcher{
		traceID: traceID,
		clock:   clk,
		pub:     pub,
		rec:     rec,
		logger:  logger,
	}
	d.nextSpan.Store(_rootSpan)
	return d
}

// TraceID returns the trace every event of the invocation carries.
func (d *Dispatcher) TraceID() string {
	return d.traceID
}

// StartCommand opens the command span. It must be the first event of the invocation.
func (d *Dispatcher) StartCommand(name string, argv []string) error {
	d.mu.Lock()
	d.started = d.clock.Now()
	d.name = name
	d.mu.Unlock()

	return d.publish(&api.Event{
		SpanID: _rootSpan,
		Data:   &api.SpanStart{Name: name, SanitizedArgv: argv},
	})
}

// EndCommand closes the command span with the given outcome.
func (d *Dispatcher) EndCommand(outcome string) error {
	d.mu.Lock()
	started, name := d.started, d.name
	d.mu.Unlock()

	return d.publish(&api.Event{
		SpanID: _rootSpan,
		Data:   &api.SpanEnd{Name: name, Duration: d.clock.Now().Sub(started), Outcome: outcome},
	})
}

func (d *Dispatcher) Emit(data api.EventData) error {
	return d.publish(&api.Event{
		SpanID:   d.nextSpan.Add(1),
		ParentID: _rootSpan,
		Data:     data,
	})
}

func (d *Dispatcher) Console(level, msg string) error {
	return d.Emit(&api.ConsoleMessage{Level: level, Message: msg})
}

func (d *Dispatcher) publish(ev *api.Event) error {
	d.pubMu.Lock()
	defer d.pubMu.Unlock()

	ev.Timestamp = d.clock.Now()
	ev.TraceID = d.traceID

	raw, err := codec.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", ev.KindName(), err)
	}
	if err := d.rec.Record(ev, raw); err != nil {
		d.logger.Warnw("recording event", "kind", ev.KindName(), zap.Error(err))
	}
	return d.pub.PublishEncoded(raw)
}
