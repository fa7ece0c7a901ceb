package api

import (
	"errors"
	"fmt"

	"github.com/uber/buildd/src/buildd/internal/codec"
)

// ProgressItem is one element of a command's progress stream: *Event or *CommandResult.
type ProgressItem interface {
	isProgressItem()
}

// CommandProgress is the client's view of one stream element.
type CommandProgress struct {
	Progress ProgressItem
}

// IsTerminal reports whether the item is the stream's result.
func (p *CommandProgress) IsTerminal() bool {
	_, ok := p.Progress.(*CommandResult)
	return ok
}

type commandProgressWire struct {
	Event  *Event         `cbor:"1,keyasint,omitempty"`
	Result *CommandResult `cbor:"2,keyasint,omitempty"`
}

func (p CommandProgress) MarshalCBOR() ([]byte, error) {
	var w commandProgressWire
	if err := setVariant(&w, p.Progress); err != nil {
		return nil, fmt.Errorf("encoding command progress: %w", err)
	}
	return codec.Marshal(&w)
}

func (p *CommandProgress) UnmarshalCBOR(data []byte) error {
	var w commandProgressWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := getVariant(&w)
	if err != nil {
		return fmt.Errorf("decoding command progress: %w", err)
	}
	p.Progress = v.(ProgressItem)
	return nil
}

func (*Event) isProgressItem()         {}
func (*CommandResult) isProgressItem() {}

// WriteItem is one element of a progress stream as the daemon writes it:
// EncodedEvent or *CommandResult.
type WriteItem interface {
	isWriteItem()
}

// EncodedEvent is an Event that was already encoded for another consumer.
type EncodedEvent []byte

func (EncodedEvent) isWriteItem()   {}
func (*CommandResult) isWriteItem() {}

// CommandProgressForWrite shares CommandProgress's wire keys, so a client decodes it as a
// CommandProgress while the daemon never re-encodes events it has already encoded.
type CommandProgressForWrite struct {
	Item WriteItem
}

type commandProgressForWriteWire struct {
	Event  codec.RawMessage `cbor:"1,keyasint,omitempty"`
	Result *CommandResult   `cbor:"2,keyasint,omitempty"`
}

func (p CommandProgressForWrite) MarshalCBOR() ([]byte, error) {
	var w commandProgressForWriteWire
	switch item := p.Item.(type) {
	case EncodedEvent:
		if len(item) == 0 {
			return nil, errors.New("encoding command progress: empty event")
		}
		w.Event = codec.RawMessage(item)
	case *CommandResult:
		if item == nil {
			return nil, fmt.Errorf("encoding command progress: %w", ErrNoVariant)
		}
		w.Result = item
	default:
		return nil, fmt.Errorf("encoding command progress: %w", ErrNoVariant)
	}
	return codec.Marshal(&w)
}

func (p *CommandProgressForWrite) UnmarshalCBOR(data []byte) error {
	var w commandProgressForWriteWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case len(w.Event) > 0 && w.Result != nil:
		return errors.New("decoding command progress: 2 variants set, want exactly one")
	case len(w.Event) > 0:
		p.Item = EncodedEvent(w.Event)
	case w.Result != nil:
		p.Item = w.Result
	default:
		return fmt.Errorf("decoding command progress: %w", ErrNoVariant)
	}
	return nil
}

// NewEventItem wraps an encoded event for writing.
func NewEventItem(raw []byte) *CommandProgressForWrite {
	return &CommandProgressForWrite{Item: EncodedEvent(raw)}
}

// NewResultItem wraps a terminal payload for writing.
func NewResultItem(payload ResultPayload) *CommandProgressForWrite {
	return &CommandProgressForWrite{Item: &CommandResult{Result: payload}}
}

// StreamingFrame is one inbound frame of an interactive stream: *ClientContext or *LspRequest.
type StreamingFrame interface {
	isStreamingFrame()
}

// StreamingRequest is one inbound frame. The first frame of a stream is the context, and only the first.
type StreamingRequest struct {
	Frame StreamingFrame
}

type streamingRequestWire struct {
	Context *ClientContext `cbor:"1,keyasint,omitempty"`
	Lsp     *LspRequest    `cbor:"2,keyasint,omitempty"`
}

func (r StreamingRequest) MarshalCBOR() ([]byte, error) {
	var w streamingRequestWire
	if err := setVariant(&w, r.Frame); err != nil {
		return nil, fmt.Errorf("encoding streaming request: %w", err)
	}
	return codec.Marshal(&w)
}

func (r *StreamingRequest) UnmarshalCBOR(data []byte) error {
	var w streamingRequestWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := getVariant(&w)
	if err != nil {
		return fmt.Errorf("decoding streaming request: %w", err)
	}
	r.Frame = v.(StreamingFrame)
	return nil
}
