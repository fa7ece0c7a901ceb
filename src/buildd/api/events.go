package api

import (
	"fmt"
	"time"

	"github.com/uber/buildd/src/buildd/internal/codec"
)

// EventData is the payload of an Event.
type EventData interface {
	isEventData()
}

// Event is one telemetry item of an invocation.
type Event struct {
	Timestamp time.Time
	TraceID   string
	SpanID    uint64
	ParentID  uint64
	Data      EventData
}

// SpanStart opens a span; the command span is the first event of every invocation.
type SpanStart struct {
	Name          string   `cbor:"1,keyasint,omitempty"`
	SanitizedArgv []string `cbor:"2,keyasint,omitempty"`
}

// SpanEnd closes the span with the event's SpanID.
type SpanEnd struct {
	Name     string        `cbor:"1,keyasint,omitempty"`
	Duration time.Duration `cbor:"2,keyasint,omitempty"`
	Outcome  string        `cbor:"3,keyasint,omitempty"`
}

// InstantEvent is a point-in-time marker with free-form fields.
type InstantEvent struct {
	Name   string            `cbor:"1,keyasint,omitempty"`
	Fields map[string]string `cbor:"2,keyasint,omitempty"`
}

// ConsoleMessage is text meant for the user's terminal.
type ConsoleMessage struct {
	Level   string `cbor:"1,keyasint,omitempty"`
	Message string `cbor:"2,keyasint,omitempty"`
}

// StdoutChunk is raw output the client writes to its stdout.
type StdoutChunk struct {
	Data []byte `cbor:"1,keyasint,omitempty"`
}

// LspMessage is one JSON-RPC message for the editor.
type LspMessage struct {
	LspJSON string `cbor:"1,keyasint,omitempty"`
}

// ConfigurationChanged reports that the resident configuration was replaced.
type ConfigurationChanged struct {
	Digest         string `cbor:"1,keyasint,omitempty"`
	PreviousDigest string `cbor:"2,keyasint,omitempty"`
	Diff           string `cbor:"3,keyasint,omitempty"`
}

// TargetBuilt reports the outcome of one target of a build-like command.
type TargetBuilt struct {
	Target  string `cbor:"1,keyasint,omitempty"`
	Success bool   `cbor:"2,keyasint,omitempty"`
	Error   string `cbor:"3,keyasint,omitempty"`
}

// Truncated replaces an event whose encoding exceeded the event log's size limit.
type Truncated struct {
	OriginalBytes uint64 `cbor:"1,keyasint,omitempty"`
	Kind          string `cbor:"2,keyasint,omitempty"`
}

type eventWire struct {
	Timestamp time.Time `cbor:"1,keyasint,omitempty"`
	TraceID   string    `cbor:"2,keyasint,omitempty"`
	SpanID    uint64    `cbor:"3,keyasint,omitempty"`
	ParentID  uint64    `cbor:"4,keyasint,omitempty"`

	SpanStart     *SpanStart            `cbor:"5,keyasint,omitempty"`
	SpanEnd       *SpanEnd              `cbor:"6,keyasint,omitempty"`
	Instant       *InstantEvent         `cbor:"7,keyasint,omitempty"`
	Console       *ConsoleMessage       `cbor:"8,keyasint,omitempty"`
	Stdout        *StdoutChunk          `cbor:"9,keyasint,omitempty"`
	Lsp           *LspMessage           `cbor:"10,keyasint,omitempty"`
	ConfigChanged *ConfigurationChanged `cbor:"11,keyasint,omitempty"`
	TargetBuilt   *TargetBuilt          `cbor:"12,keyasint,omitempty"`
	Truncated     *Truncated            `cbor:"13,keyasint,omitempty"`
}

func (e Event) MarshalCBOR() ([]byte, error) {
	w := eventWire{
		Timestamp: e.Timestamp,
		TraceID:   e.TraceID,
		SpanID:    e.SpanID,
		ParentID:  e.ParentID,
	}
	if err := setVariant(&w, e.Data); err != nil {
		return nil, fmt.Errorf("encoding event: %w", err)
	}
	return codec.Marshal(&w)
}

func (e *Event) UnmarshalCBOR(data []byte) error {
	var w eventWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := getVariant(&w)
	if err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}
	*e = Event{
		Timestamp: w.Timestamp,
		TraceID:   w.TraceID,
		SpanID:    w.SpanID,
		ParentID:  w.ParentID,
		Data:      v.(EventData),
	}
	return nil
}

// KindName names the event's payload, for logs and metrics.
func (e *Event) KindName() string {
	switch e.Data.(type) {
	case *SpanStart:
		return "span_start"
	case *SpanEnd:
		return "span_end"
	case *InstantEvent:
		return "instant"
	case *ConsoleMessage:
		return "console"
	case *StdoutChunk:
		return "stdout"
	case *LspMessage:
		return "lsp"
	case *ConfigurationChanged:
		return "configuration_changed"
	case *TargetBuilt:
		return "target_built"
	case *Truncated:
		return "truncated"
	}
	return "unknown"
}

func (*SpanStart) isEventData()            {}
func (*SpanEnd) isEventData()              {}
func (*InstantEvent) isEventData()         {}
func (*ConsoleMessage) isEventData()       {}
func (*StdoutChunk) isEventData()          {}
func (*LspMessage) isEventData()           {}
func (*ConfigurationChanged) isEventData() {}
func (*TargetBuilt) isEventData()          {}
func (*Truncated) isEventData()            {}
