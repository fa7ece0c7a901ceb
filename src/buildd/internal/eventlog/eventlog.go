// Package eventlog persists every invocation's events to a compressed CBOR sequence on disk.
package eventlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
	"github.com/uber-go/tally/v4"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/internal/codec"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_configKeyDir           = "eventlog.dir"
	_configKeyMaxEventBytes = "eventlog.maxEventBytes"

	_defaultMaxEventBytes = 1 << 20

	// Extension of a log file.
	Extension = ".cbor.zst"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Log opens per-invocation event logs.
type Log interface {
	// Open creates the log of one invocation. Without a configured directory the returned
	// Writer discards everything.
	Open(invocationID string) (Writer, error)
	// BytesWritten is the uncompressed size of every event recorded since start.
	BytesWritten() uint64
}

// Writer records the events of one invocation.
type Writer interface {
	// Record appends an event. raw is its encoding; an encoding over the size limit is
	// replaced by a Truncated marker.
	Record(ev *api.Event, raw []byte) error
	Close() error
}

// Params define values to be used by the event log.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
	Stats  tally.Scope
}

type log struct {
	dir           string
	maxEventBytes uint64
	logger        *zap.SugaredLogger

	bytes     atomic.Uint64
	written   tally.Counter
	truncated tally.Counter
}

// New creates the event log.
func New(p Params) (Log, error) {
	l := &log{logger: p.Logger}
	if err := l.processConfig(p.Config); err != nil {
		return nil, err
	}

	scope := p.Stats.SubScope("eventlog")
	l.written = scope.Counter("events_written")
	l.truncated = scope.Counter("events_truncated")

	if l.dir == "" {
		p.Logger.Infow("event log disabled", "key", _configKeyDir)
		return l, nil
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating event log directory: %w", err)
	}
	return l, nil
}

func (l *log) processConfig(cfg config.Provider) error {
	if err := cfg.Get(_configKeyDir).Populate(&l.dir); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyDir, err)
	}
	if err := cfg.Get(_configKeyMaxEventBytes).Populate(&l.maxEventBytes); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyMaxEventBytes, err)
	}
	if l.maxEventBytes == 0 {
		l.maxEventBytes = _defaultMaxEventBytes
	}
	return nil
}

func (l *log) BytesWritten() uint64 {
	return l.bytes.Load()
}

// Path returns the file holding an invocation's events under dir.
func Path(dir, invocationID string) string {
	return filepath.Join(dir, invocationID+Extension)
}

func (l *log) Open(invocationID string) (Writer, error) {
	if l.dir == "" {
		return Discard, nil
	}

	f, err := os.Create(Path(l.dir, invocationID))
	if err != nil {
		return nil, fmt.Errorf("creating event log: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("creating zstd writer: %w", err), f.Close())
	}
	return &writer{log: l, file: f, enc: enc}, nil
}

type writer struct {
	log *log

	mu     sync.Mutex
	file   *os.File
	enc    *zstd.Encoder
	closed bool
}

func (w *writer) Record(ev *api.Event, raw []byte) error {
	if uint64(len(raw)) > w.log.maxEventBytes {
		marker := &api.Event{
			Timestamp: ev.Timestamp,
			TraceID:   ev.TraceID,
			SpanID:    ev.SpanID,
			ParentID:  ev.ParentID,
			Data:      &api.Truncated{OriginalBytes: uint64(len(raw)), Kind: ev.KindName()},
		}
		var err error
		if raw, err = codec.Marshal(marker); err != nil {
			return fmt.Errorf("encoding truncation marker: %w", err)
		}
		w.log.truncated.Inc(1)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New("event log closed")
	}
	if _, err := w.enc.Write(raw); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	w.log.bytes.Add(uint64(len(raw)))
	w.log.written.Inc(1)
	return nil
}

func (w *writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return multierr.Append(w.enc.Close(), w.file.Close())
}

// Discard is a Writer that drops every event.
var Discard Writer = nopWriter{}

type nopWriter struct{}

func (nopWriter) Record(*api.Event, []byte) error { return nil }

func (nopWriter) Close() error { return nil }

// ReadAll decodes every event of a log file.
func ReadAll(path string) (_ []*api.Event, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer dec.Close()

	var events []*api.Event
	cd := codec.NewDecoder(dec)
	for {
		ev := new(api.Event)
		if err := cd.Decode(ev); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return events, fmt.Errorf("decoding event %d: %w", len(events), err)
		}
		events = append(events, ev)
	}
}
