package multiplex

import (
	"context"
	stderr "errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/internal/codec"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingSender struct {
	mu        sync.Mutex
	items     []*api.CommandProgressForWrite
	failAfter int
	delay     time.Duration
}

func (s *recordingSender) Send(item *api.CommandProgressForWrite) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAfter > 0 && len(s.items) >= s.failAfter {
		return stderr.New("client went away")
	}
	s.items = append(s.items, item)
	return nil
}

func (s *recordingSender) events(t *testing.T) []*api.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*api.Event
	for _, item := range s.items {
		raw, ok := item.Item.(api.EncodedEvent)
		if !ok {
			continue
		}
		ev := new(api.Event)
		require.NoError(t, codec.Unmarshal(raw, ev))
		out = append(out, ev)
	}
	return out
}

func (s *recordingSender) results() []*api.CommandResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*api.CommandResult
	for _, item := range s.items {
		if r, ok := item.Item.(*api.CommandResult); ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *recordingSender) last() *api.CommandProgressForWrite {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func newTestMultiplexer(capacity int) (*multiplexer, tally.TestScope) {
	scope := tally.NewTestScope("", nil)
	return &multiplexer{
		capacity:  capacity,
		logger:    zap.NewNop().Sugar(),
		published: scope.Counter("events_published"),
		dropped:   scope.Counter("events_dropped_closed"),
		sendFails: scope.Counter("send_failures"),
	}, scope
}

func encode(t *testing.T, msg string) []byte {
	raw, err := codec.Marshal(&api.Event{Data: &api.ConsoleMessage{Message: msg}})
	require.NoError(t, err)
	return raw
}

func message(ev *api.Event) string {
	return ev.Data.(*api.ConsoleMessage).Message
}

func TestRunEventsThenResult(t *testing.T) {
	m, scope := newTestMultiplexer(4)
	send := &recordingSender{}

	err := m.Run(context.Background(), send, func(ctx context.Context, sink *Sink) (api.ResultPayload, error) {
		for i := 0; i < 10; i++ {
			require.NoError(t, sink.PublishEncoded(encode(t, fmt.Sprint(i))))
		}
		return &api.BuildResponse{ProjectRoot: "/repo"}, nil
	})
	require.NoError(t, err)

	events := send.events(t)
	require.Len(t, events, 10)
	for i, ev := range events {
		assert.Equal(t, fmt.Sprint(i), message(ev))
	}
	results := send.results()
	require.Len(t, results, 1)
	assert.Equal(t, &api.BuildResponse{ProjectRoot: "/repo"}, results[0].Result)
	assert.IsType(t, &api.CommandResult{}, send.last().Item, "the result is the last item")
	assert.Equal(t, int64(10), scope.Snapshot().Counters()["events_published+"].Value())
}

func TestRunHandlerOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		wantMsg string
	}{
		{
			name: "error",
			handler: func(context.Context, *Sink) (api.ResultPayload, error) {
				return nil, stderr.New("target //a:b not found")
			},
			wantMsg: "target //a:b not found",
		},
		{
			name: "command error",
			handler: func(context.Context, *Sink) (api.ResultPayload, error) {
				return nil, fmt.Errorf("resolving: %w", &api.CommandError{Messages: []string{"x", "y"}})
			},
			wantMsg: "x; y",
		},
		{
			name: "panic",
			handler: func(context.Context, *Sink) (api.ResultPayload, error) {
				panic("engine state corrupted")
			},
			wantMsg: "command panicked: engine state corrupted",
		},
		{
			name: "nil payload",
			handler: func(context.Context, *Sink) (api.ResultPayload, error) {
				return nil, nil
			},
			wantMsg: "command returned no result",
		},
		{
			name: "typed nil payload",
			handler: func(context.Context, *Sink) (api.ResultPayload, error) {
				var resp *api.BuildResponse
				return resp, nil
			},
			wantMsg: "command returned no result",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMultiplexer(1)
			send := &recordingSender{}
			require.NoError(t, m.Run(context.Background(), send, tt.handler))

			results := send.results()
			require.Len(t, results, 1)
			require.NotNil(t, results[0].Err())
			assert.Equal(t, tt.wantMsg, results[0].Err().Error())
		})
	}
}

func TestRunProtocolErrorHasNoResult(t *testing.T) {
	m, _ := newTestMultiplexer(1)
	send := &recordingSender{}

	err := m.Run(context.Background(), send, func(ctx context.Context, sink *Sink) (api.ResultPayload, error) {
		require.NoError(t, sink.PublishEncoded(encode(t, "before")))
		return nil, errors.Protocolf(codes.FailedPrecondition, "daemon identity mismatch")
	})

	pe, ok := errors.AsProtocol(err)
	require.True(t, ok)
	assert.Equal(t, codes.FailedPrecondition, pe.Code)
	assert.Empty(t, send.results())
	assert.Len(t, send.events(t), 1)
}

func TestPublishAfterClose(t *testing.T) {
	m, scope := newTestMultiplexer(1)
	send := &recordingSender{}

	var leaked *Sink
	require.NoError(t, m.Run(context.Background(), send, func(ctx context.Context, sink *Sink) (api.ResultPayload, error) {
		leaked = sink
		return &api.GenericResponse{}, nil
	}))

	assert.ErrorIs(t, leaked.PublishEncoded(encode(t, "late")), ErrStreamClosed)
	assert.Len(t, send.results(), 1)
	assert.Empty(t, send.events(t))
	assert.Equal(t, int64(1), scope.Snapshot().Counters()["events_dropped_closed+"].Value())
}

func TestSendFailureCancelsHandler(t *testing.T) {
	m, _ := newTestMultiplexer(1)
	send := &recordingSender{failAfter: 2}

	err := m.Run(context.Background(), send, func(ctx context.Context, sink *Sink) (api.ResultPayload, error) {
		for i := 0; ; i++ {
			if err := sink.PublishEncoded(encode(t, fmt.Sprint(i))); err != nil {
				assert.ErrorIs(t, err, context.Canceled)
				return nil, err
			}
		}
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "client went away")
	assert.Empty(t, send.results())
	assert.Len(t, send.events(t), 2)
}

func TestPublishUnblocksOnCancel(t *testing.T) {
	m, _ := newTestMultiplexer(1)
	send := &recordingSender{delay: 50 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := m.Run(ctx, send, func(ctx context.Context, sink *Sink) (api.ResultPayload, error) {
		var publishErr error
		for i := 0; i < 100 && publishErr == nil; i++ {
			if i == 3 {
				cancel()
			}
			publishErr = sink.PublishEncoded(encode(t, fmt.Sprint(i)))
		}
		assert.ErrorIs(t, publishErr, context.Canceled)
		return &api.GenericResponse{}, nil
	})
	require.NoError(t, err)
	assert.Len(t, send.results(), 1)
}

func TestRandomizedInterleavings(t *testing.T) {
	const (
		publishers = 4
		perWorker  = 50
	)
	for seed := int64(0); seed < 5; seed++ {
		seed := seed
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			m, _ := newTestMultiplexer(1 + rng.Intn(8))
			send := &recordingSender{}

			delays := make([][]time.Duration, publishers)
			for w := range delays {
				for i := 0; i < perWorker; i++ {
					delays[w] = append(delays[w], time.Duration(rng.Intn(50))*time.Microsecond)
				}
			}

			err := m.Run(context.Background(), send, func(ctx context.Context, sink *Sink) (api.ResultPayload, error) {
				var wg sync.WaitGroup
				for w := 0; w < publishers; w++ {
					w := w
					wg.Add(1)
					go func() {
						defer wg.Done()
						for i := 0; i < perWorker; i++ {
							time.Sleep(delays[w][i])
							assert.NoError(t, sink.PublishEncoded(encode(t, fmt.Sprintf("%d:%d", w, i))))
						}
					}()
				}
				wg.Wait()
				return &api.GenericResponse{}, nil
			})
			require.NoError(t, err)

			events := send.events(t)
			require.Len(t, events, publishers*perWorker)
			next := make([]int, publishers)
			for _, ev := range events {
				var w, i int
				_, err := fmt.Sscanf(message(ev), "%d:%d", &w, &i)
				require.NoError(t, err)
				assert.Equal(t, next[w], i, "events of one publisher stay in order")
				next[w]++
			}
			assert.Len(t, send.results(), 1)
			assert.IsType(t, &api.CommandResult{}, send.last().Item)
		})
	}
}

func TestProcessConfig(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		want        int
		errorString string
	}{
		{
			name: "valid",
			yaml: "multiplex:\n  capacity: 256\n",
			want: 256,
		},
		{
			name:        "missing",
			yaml:        "other: 1\n",
			errorString: `missing field "multiplex.capacity" in config`,
		},
		{
			name:        "wrong type",
			yaml:        "multiplex:\n  capacity:\n    nested: 1\n",
			errorString: `getting config field "multiplex.capacity"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewYAML(config.Source(strings.NewReader(tt.yaml)))
			require.NoError(t, err)

			m := multiplexer{}
			err = m.processConfig(cfg)
			if tt.errorString != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.capacity)
		})
	}
}

func TestNew(t *testing.T) {
	cfg, err := config.NewYAML(config.Source(strings.NewReader("multiplex:\n  capacity: 8\n")))
	require.NoError(t, err)

	m, err := New(Params{Config: cfg, Logger: zap.NewNop().Sugar(), Stats: tally.NoopScope})
	require.NoError(t, err)
	assert.NotNil(t, m)
}
