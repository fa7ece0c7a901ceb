package daemon

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/controller/build/buildmock"
	"github.com/uber/buildd/src/buildd/controller/commandctx/commandctxmock"
	"github.com/uber/buildd/src/buildd/controller/daemon/daemonmock"
	"github.com/uber/buildd/src/buildd/controller/lsp"
	"github.com/uber/buildd/src/buildd/controller/lsp/lspmock"
	"github.com/uber/buildd/src/buildd/controller/query/querymock"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/factory"
	"github.com/uber/buildd/src/buildd/internal/clock"
	"github.com/uber/buildd/src/buildd/internal/dispatch"
	buildderrors "github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/internal/eventlog"
	"github.com/uber/buildd/src/buildd/internal/grpcfx"
	"github.com/uber/buildd/src/buildd/internal/grpcfx/grpcfxmock"
	"github.com/uber/buildd/src/buildd/internal/multiplex"
	"github.com/uber/buildd/src/buildd/repository/invocation"
	"go.lsp.dev/protocol"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	handler     Handler
	client      *api.Client
	authed      context.Context
	daemon      *daemonmock.MockController
	build       *buildmock.MockController
	query       *querymock.MockController
	commandCtx  *commandctxmock.MockController
	lsp         *lspmock.MockController
	invocations invocation.Repository
	identity    *entity.DaemonIdentity
	stats       tally.TestScope
	eventDir    string
	accepting   atomic.Bool
	// drainOnCheck stops admission right after the next Accepting call returns.
	drainOnCheck atomic.Bool
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		daemon:     daemonmock.NewMockController(ctrl),
		build:      buildmock.NewMockController(ctrl),
		query:      querymock.NewMockController(ctrl),
		commandCtx: commandctxmock.NewMockController(ctrl),
		lsp:        lspmock.NewMockController(ctrl),
		stats:      tally.NewTestScope("", nil),
		eventDir:   t.TempDir(),
	}
	f.accepting.Store(true)
	f.invocations = invocation.New(f.stats)
	f.daemon.EXPECT().Accepting().DoAndReturn(func() bool {
		accepting := f.accepting.Load()
		if f.drainOnCheck.CompareAndSwap(true, false) {
			f.accepting.Store(false)
		}
		return accepting
	}).AnyTimes()
	f.daemon.EXPECT().RefreshIdleTimer().AnyTimes()

	identity, err := entity.NewDaemonIdentity(1234, "v-test", time.Now())
	require.NoError(t, err)
	f.identity = identity

	logger := zap.NewNop().Sugar()
	cfg, err := config.NewYAML(config.Source(strings.NewReader(
		"multiplex:\n  capacity: 8\neventlog:\n  dir: " + f.eventDir + "\n",
	)))
	require.NoError(t, err)
	mux, err := multiplex.New(multiplex.Params{Config: cfg, Logger: logger, Stats: f.stats})
	require.NoError(t, err)
	elog, err := eventlog.New(eventlog.Params{Config: cfg, Logger: logger, Stats: f.stats})
	require.NoError(t, err)

	tp := noop.NewTracerProvider()
	gs := grpcfx.NewGRPCServer(identity.AuthToken, tp)
	server := grpcfxmock.NewMockServer(ctrl)
	server.EXPECT().RegisterService(gomock.Any(), gomock.Any()).Do(func(desc *grpc.ServiceDesc, impl any) {
		gs.RegisterService(desc, impl)
	})

	f.handler = New(Params{
		Server:         server,
		Daemon:         f.daemon,
		Build:          f.build,
		Query:          f.query,
		CommandCtx:     f.commandCtx,
		Lsp:            f.lsp,
		Invocations:    f.invocations,
		Multiplexer:    mux,
		EventLog:       elog,
		Identity:       identity,
		Clock:          clock.New(),
		Logger:         logger,
		Stats:          f.stats,
		TracerProvider: tp,
	})

	lis := bufconn.Listen(1 << 20)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, conn.Close()) })

	f.client = api.NewClient(conn)
	f.authed = metadata.AppendToOutgoingContext(context.Background(), api.AuthTokenHeader, identity.AuthToken)
	return f
}

func (f *fixture) counter(kind api.CommandKind, outcome string) int64 {
	c, ok := f.stats.Snapshot().Counters()["commands+command="+kind.String()+",outcome="+outcome]
	if !ok {
		return 0
	}
	return c.Value()
}

// readEvents waits until the invocation's event log holds want events; it is closed after the
// client already saw the result.
func (f *fixture) readEvents(t *testing.T, want int) []*api.Event {
	var events []*api.Event
	require.Eventually(t, func() bool {
		paths, err := filepath.Glob(filepath.Join(f.eventDir, "*"+eventlog.Extension))
		if err != nil || len(paths) != 1 {
			return false
		}
		events, err = eventlog.ReadAll(paths[0])
		return err == nil && len(events) == want
	}, time.Second, 10*time.Millisecond)
	return events
}

func TestUnary(t *testing.T) {
	f := newFixture(t)
	cc := factory.ClientContext("/repo", "buildd", "ping")

	f.daemon.EXPECT().Ping(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
		inv, ok := entity.InvocationFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, api.KindPing, inv.Kind)
		assert.Equal(t, cc.TraceID, inv.TraceID)
		assert.Equal(t, 1, f.invocations.Active())
		return &api.PingResponse{}, nil
	})

	res, err := f.client.Invoke(f.authed, &api.PingRequest{Context: cc})
	require.NoError(t, err)
	assert.IsType(t, &api.PingResponse{}, res.Result)
	assert.Equal(t, 0, f.invocations.Active())
	assert.Equal(t, uint64(1), f.invocations.Served())
	assert.Equal(t, int64(1), f.counter(api.KindPing, _outcomeSuccess))
}

func TestUnaryWithoutContext(t *testing.T) {
	f := newFixture(t)
	f.daemon.EXPECT().Status(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *api.StatusRequest) (*api.StatusResponse, error) {
		inv, ok := entity.InvocationFromContext(ctx)
		require.True(t, ok)
		assert.NotEmpty(t, inv.TraceID)
		assert.Nil(t, inv.Context)
		return &api.StatusResponse{}, nil
	})

	res, err := f.client.Invoke(f.authed, &api.StatusRequest{})
	require.NoError(t, err)
	assert.IsType(t, &api.StatusResponse{}, res.Result)
}

func TestUnaryOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		run         func(context.Context, *api.PingRequest) (*api.PingResponse, error)
		wantCode    codes.Code
		wantMessage string
		wantOutcome string
	}{
		{
			name: "command error",
			run: func(context.Context, *api.PingRequest) (*api.PingResponse, error) {
				return nil, errors.New("engine unavailable")
			},
			wantMessage: "engine unavailable",
			wantOutcome: _outcomeFailure,
		},
		{
			name: "protocol error",
			run: func(context.Context, *api.PingRequest) (*api.PingResponse, error) {
				return nil, buildderrors.Protocolf(codes.InvalidArgument, "negative delay")
			},
			wantCode:    codes.InvalidArgument,
			wantOutcome: _outcomeAborted,
		},
		{
			name: "panic",
			run: func(context.Context, *api.PingRequest) (*api.PingResponse, error) {
				panic("boom")
			},
			wantMessage: "command panicked: boom",
			wantOutcome: _outcomeFailure,
		},
		{
			name: "nil response",
			run: func(context.Context, *api.PingRequest) (*api.PingResponse, error) {
				return nil, nil
			},
			wantMessage: "command returned no result",
			wantOutcome: _outcomeFailure,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.daemon.EXPECT().Ping(gomock.Any(), gomock.Any()).DoAndReturn(tt.run)

			res, err := f.client.Invoke(f.authed, &api.PingRequest{})
			if tt.wantCode != codes.OK {
				assert.Equal(t, tt.wantCode, status.Code(err))
			} else {
				require.NoError(t, err)
				require.NotNil(t, res.Err())
				assert.Equal(t, []string{tt.wantMessage}, res.Err().Messages)
			}
			assert.Equal(t, int64(1), f.counter(api.KindPing, tt.wantOutcome))
			assert.Equal(t, 0, f.invocations.Active())
		})
	}
}

func TestAdmissionRejected(t *testing.T) {
	valid := func(mutate func(*api.ClientContext)) *api.ClientContext {
		cc := factory.ClientContext("/repo")
		mutate(cc)
		return cc
	}

	tests := []struct {
		name     string
		req      api.Request
		wantCode codes.Code
	}{
		{
			name:     "relative working directory",
			req:      &api.PingRequest{Context: valid(func(cc *api.ClientContext) { cc.WorkingDir = "repo" })},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "value override without key",
			req: &api.PingRequest{Context: valid(func(cc *api.ClientContext) {
				cc.ConfigOverrides = []*api.ConfigOverride{{Kind: api.ConfigOverrideValue, Payload: "nokey"}}
			})},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "file override without path",
			req: &api.PingRequest{Context: valid(func(cc *api.ClientContext) {
				cc.ConfigOverrides = []*api.ConfigOverride{{Kind: api.ConfigOverrideFile}}
			})},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "unknown override kind",
			req: &api.PingRequest{Context: valid(func(cc *api.ClientContext) {
				cc.ConfigOverrides = []*api.ConfigOverride{{Kind: api.ConfigOverrideKind(2), Payload: "a.b=c"}}
			})},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "unknown host platform",
			req:      &api.PingRequest{Context: valid(func(cc *api.ClientContext) { cc.HostPlatform = api.HostPlatformOverride(9) })},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "unknown host architecture",
			req:      &api.PingRequest{Context: valid(func(cc *api.ClientContext) { cc.HostArch = api.HostArchOverride(-1) })},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "trace id is not a uuid",
			req:      &api.PingRequest{Context: valid(func(cc *api.ClientContext) { cc.TraceID = "trace-1" })},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "other daemon instance",
			req:      &api.PingRequest{Context: valid(func(cc *api.ClientContext) { cc.DaemonUUID = factory.UUID().String() })},
			wantCode: codes.FailedPrecondition,
		},
		{
			name:     "dump format out of range",
			req:      &api.DiceDumpRequest{Format: api.DumpFormat(7)},
			wantCode: codes.InvalidArgument,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.client.Invoke(f.authed, tt.req)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, int64(1), f.counter(api.KindOf(tt.req), _outcomeRejected))
			assert.Zero(t, f.invocations.Served())
		})
	}
}

func TestMatchingDaemonUUIDIsAdmitted(t *testing.T) {
	f := newFixture(t)
	f.daemon.EXPECT().Ping(gomock.Any(), gomock.Any()).Return(&api.PingResponse{}, nil)

	cc := factory.ClientContext("/repo")
	cc.DaemonUUID = f.identity.InstanceID
	_, err := f.client.Invoke(f.authed, &api.PingRequest{Context: cc})
	assert.NoError(t, err)
}

func TestShuttingDown(t *testing.T) {
	f := newFixture(t)
	f.accepting.Store(false)

	_, err := f.client.Invoke(f.authed, &api.PingRequest{})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	stream, err := f.client.Stream(f.authed, &api.BuildRequest{Context: factory.ClientContext("/repo")})
	require.NoError(t, err)
	_, err = stream.Result(nil)
	assert.Equal(t, codes.Unavailable, status.Code(err))

	f.daemon.EXPECT().Kill(gomock.Any(), gomock.Any()).Return(&api.KillResponse{}, nil)
	res, err := f.client.Invoke(f.authed, &api.KillRequest{})
	require.NoError(t, err)
	assert.IsType(t, &api.KillResponse{}, res.Result)
}

func TestShutdownDuringAdmission(t *testing.T) {
	f := newFixture(t)
	f.drainOnCheck.Store(true)

	_, err := f.client.Invoke(f.authed, &api.PingRequest{})
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Zero(t, f.invocations.Active())
	assert.Equal(t, int64(1), f.counter(api.KindPing, _outcomeRejected))
}

func TestUnauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.Invoke(context.Background(), &api.PingRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(context.Background(), api.AuthTokenHeader, "wrong")
	_, err = f.client.Invoke(bad, &api.PingRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestWrongShapeIsUnimplemented(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Unary(context.Background(), &api.BuildRequest{})
	assert.Equal(t, codes.Unimplemented, status.Code(err))

	err = f.handler.Streaming(&api.PingRequest{}, nil)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestStreaming(t *testing.T) {
	f := newFixture(t)
	cc := factory.ClientContext("/repo/app", "buildd", "build", "//app:main")
	ec := &entity.EngineContext{WorkingDir: "/repo/app", ProjectRoot: "/repo", TraceID: cc.TraceID}

	f.commandCtx.EXPECT().Prepare(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inv *entity.Invocation, _ dispatch.Emitter) (*entity.EngineContext, error) {
			assert.Equal(t, api.KindBuild, inv.Kind)
			assert.Equal(t, cc, inv.Context)
			return ec, nil
		})
	f.build.EXPECT().Build(gomock.Any(), ec, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *entity.EngineContext, req *api.BuildRequest, emit dispatch.Emitter) (*api.BuildResponse, error) {
			assert.Equal(t, []string{"//app:main"}, req.TargetPatterns)
			require.NoError(t, emit.Console("info", "building 1 target"))
			return &api.BuildResponse{ProjectRoot: ec.ProjectRoot}, nil
		})

	stream, err := f.client.Stream(f.authed, &api.BuildRequest{Context: cc, TargetPatterns: []string{"//app:main"}})
	require.NoError(t, err)
	var events []*api.Event
	res, err := stream.Result(func(ev *api.Event) { events = append(events, ev) })
	require.NoError(t, err)

	resp, ok := res.Result.(*api.BuildResponse)
	require.True(t, ok)
	assert.Equal(t, "/repo", resp.ProjectRoot)

	require.Len(t, events, 3)
	start, ok := events[0].Data.(*api.SpanStart)
	require.True(t, ok)
	assert.Equal(t, "Build", start.Name)
	assert.Equal(t, cc.SanitizedArgv, start.SanitizedArgv)
	msg, ok := events[1].Data.(*api.ConsoleMessage)
	require.True(t, ok)
	assert.Equal(t, "building 1 target", msg.Message)
	end, ok := events[2].Data.(*api.SpanEnd)
	require.True(t, ok)
	assert.Equal(t, _outcomeSuccess, end.Outcome)
	for _, ev := range events {
		assert.Equal(t, cc.TraceID, ev.TraceID)
	}

	logged := f.readEvents(t, 3)
	assert.IsType(t, &api.ConsoleMessage{}, logged[1].Data)
	assert.Eventually(t, func() bool {
		return f.invocations.Active() == 0 && f.counter(api.KindBuild, _outcomeSuccess) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStreamingRequiresContext(t *testing.T) {
	f := newFixture(t)

	stream, err := f.client.Stream(f.authed, &api.TargetsRequest{})
	require.NoError(t, err)
	_, err = stream.Result(nil)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Equal(t, int64(1), f.counter(api.KindTargets, _outcomeRejected))
}

func TestStreamingPrepareFails(t *testing.T) {
	f := newFixture(t)
	f.commandCtx.EXPECT().Prepare(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("reading .buckconfig: permission denied"))

	stream, err := f.client.Stream(f.authed, &api.CqueryRequest{Context: factory.ClientContext("/repo")})
	require.NoError(t, err)
	var events []*api.Event
	res, err := stream.Result(func(ev *api.Event) { events = append(events, ev) })
	require.NoError(t, err)
	require.NotNil(t, res.Err())
	assert.Equal(t, []string{"reading .buckconfig: permission denied"}, res.Err().Messages)

	require.Len(t, events, 2)
	end, ok := events[1].Data.(*api.SpanEnd)
	require.True(t, ok)
	assert.Equal(t, _outcomeFailure, end.Outcome)
}

func TestDaemonCommandsOnTheStream(t *testing.T) {
	f := newFixture(t)
	f.commandCtx.EXPECT().Prepare(gomock.Any(), gomock.Any(), gomock.Any()).Return(&entity.EngineContext{}, nil)
	f.daemon.EXPECT().CleanStale(gomock.Any(), gomock.Any(), gomock.Any()).Return(&api.CleanStaleResponse{}, nil)

	stream, err := f.client.Stream(f.authed, &api.CleanStaleRequest{Context: factory.ClientContext("/repo")})
	require.NoError(t, err)
	res, err := stream.Result(nil)
	require.NoError(t, err)
	assert.IsType(t, &api.CleanStaleResponse{}, res.Result)
}

func TestLsp(t *testing.T) {
	f := newFixture(t)
	cc := factory.ClientContext("/repo")
	ctrl := gomock.NewController(t)
	session := lspmock.NewMockSession(ctrl)

	var emit dispatch.Emitter
	f.commandCtx.EXPECT().Prepare(gomock.Any(), gomock.Any(), gomock.Any()).Return(&entity.EngineContext{ProjectRoot: "/repo"}, nil)
	f.lsp.EXPECT().NewSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ *entity.EngineContext, e dispatch.Emitter) lsp.Session {
		emit = e
		return session
	})
	session.EXPECT().Exited().Return(false).AnyTimes()
	session.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req *api.LspRequest) error {
		assert.Contains(t, req.LspJSON, protocol.MethodInitialize)
		return emit.Emit(&api.LspMessage{LspJSON: `{"jsonrpc":"2.0","id":1,"result":{}}`})
	})

	client, err := f.client.Lsp(f.authed)
	require.NoError(t, err)
	require.NoError(t, client.Send(factory.ContextFrame(cc)))
	require.NoError(t, client.Send(factory.LspFrame(factory.JSONRPCRequest(1, protocol.MethodInitialize, &protocol.InitializeParams{}))))
	require.NoError(t, client.CloseSend())

	var events []*api.Event
	res, err := client.Result(func(ev *api.Event) { events = append(events, ev) })
	require.NoError(t, err)
	assert.IsType(t, &api.LspResponse{}, res.Result)

	require.Len(t, events, 3)
	reply, ok := events[1].Data.(*api.LspMessage)
	require.True(t, ok)
	assert.Contains(t, reply.LspJSON, `"id":1`)
}

func TestLspStopsWhenSessionExits(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	session := lspmock.NewMockSession(ctrl)

	f.commandCtx.EXPECT().Prepare(gomock.Any(), gomock.Any(), gomock.Any()).Return(&entity.EngineContext{}, nil)
	f.lsp.EXPECT().NewSession(gomock.Any(), gomock.Any()).Return(session)
	gomock.InOrder(
		session.EXPECT().Exited().Return(false),
		session.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil),
		session.EXPECT().Exited().Return(true),
	)

	client, err := f.client.Lsp(f.authed)
	require.NoError(t, err)
	require.NoError(t, client.Send(factory.ContextFrame(factory.ClientContext("/repo"))))
	require.NoError(t, client.Send(factory.LspFrame(factory.JSONRPCNotification(protocol.MethodExit, nil))))

	res, err := client.Result(nil)
	require.NoError(t, err)
	assert.IsType(t, &api.LspResponse{}, res.Result)
	require.NoError(t, client.CloseSend())
}

func TestLspFraming(t *testing.T) {
	tests := []struct {
		name     string
		frames   []*api.StreamingRequest
		wantCode codes.Code
	}{
		{
			name:     "closed before the context",
			wantCode: codes.FailedPrecondition,
		},
		{
			name:     "message before the context",
			frames:   []*api.StreamingRequest{factory.LspFrame(factory.JSONRPCRequest(1, protocol.MethodInitialize, nil))},
			wantCode: codes.FailedPrecondition,
		},
		{
			name:     "relative working directory",
			frames:   []*api.StreamingRequest{factory.ContextFrame(&api.ClientContext{WorkingDir: "repo"})},
			wantCode: codes.InvalidArgument,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			client, err := f.client.Lsp(f.authed)
			require.NoError(t, err)
			for _, frame := range tt.frames {
				require.NoError(t, client.Send(frame))
			}
			require.NoError(t, client.CloseSend())

			_, err = client.Result(nil)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, int64(1), f.counter(api.KindLsp, _outcomeRejected))
		})
	}
}

func TestLspDuplicateContextAborts(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	session := lspmock.NewMockSession(ctrl)

	f.commandCtx.EXPECT().Prepare(gomock.Any(), gomock.Any(), gomock.Any()).Return(&entity.EngineContext{}, nil)
	f.lsp.EXPECT().NewSession(gomock.Any(), gomock.Any()).Return(session)
	session.EXPECT().Exited().Return(false).AnyTimes()

	client, err := f.client.Lsp(f.authed)
	require.NoError(t, err)
	cc := factory.ClientContext("/repo")
	require.NoError(t, client.Send(factory.ContextFrame(cc)))
	require.NoError(t, client.Send(factory.ContextFrame(cc)))
	require.NoError(t, client.CloseSend())

	_, err = client.Result(nil)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Eventually(t, func() bool {
		return f.counter(api.KindLsp, _outcomeAborted) == 1
	}, time.Second, 10*time.Millisecond)
}
