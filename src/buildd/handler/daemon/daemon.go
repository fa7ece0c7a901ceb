// Package daemon implements the daemon's gRPC API: it admits each command, registers it as an
// invocation and routes it to the controller that runs it.
package daemon

import (
	"context"
	stderr "errors"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/controller/build"
	"github.com/uber/buildd/src/buildd/controller/commandctx"
	controller "github.com/uber/buildd/src/buildd/controller/daemon"
	"github.com/uber/buildd/src/buildd/controller/lsp"
	"github.com/uber/buildd/src/buildd/controller/query"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/clock"
	"github.com/uber/buildd/src/buildd/internal/dispatch"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/internal/eventlog"
	"github.com/uber/buildd/src/buildd/internal/framing"
	"github.com/uber/buildd/src/buildd/internal/grpcfx"
	"github.com/uber/buildd/src/buildd/internal/multiplex"
	"github.com/uber/buildd/src/buildd/repository/invocation"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

const (
	_outcomeSuccess  = "success"
	_outcomeFailure  = "failure"
	_outcomeRejected = "rejected"
	_outcomeAborted  = "aborted"

	_tracerName = "github.com/uber/buildd/src/buildd/handler/daemon"
)

// Module provides the daemon API handler and registers it on the gRPC server.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(Handler) {}),
)

// Handler represents the daemon's gRPC API.
type Handler = api.DaemonAPIServer

// Params are inbound parameters to initialize a new handler.
type Params struct {
	fx.In

	Server         grpcfx.Server
	Daemon         controller.Controller
	Build          build.Controller
	Query          query.Controller
	CommandCtx     commandctx.Controller
	Lsp            lsp.Controller
	Invocations    invocation.Repository
	Multiplexer    multiplex.Multiplexer
	EventLog       eventlog.Log
	Identity       *entity.DaemonIdentity
	Clock          clock.Clock
	Logger         *zap.SugaredLogger
	Stats          tally.Scope
	TracerProvider trace.TracerProvider
}

type handler struct {
	daemon      controller.Controller
	build       build.Controller
	query       query.Controller
	commandCtx  commandctx.Controller
	lsp         lsp.Controller
	invocations invocation.Repository
	mux         multiplex.Multiplexer
	eventLog    eventlog.Log
	identity    *entity.DaemonIdentity
	clock       clock.Clock
	logger      *zap.SugaredLogger
	stats       tally.Scope
	tracer      trace.Tracer

	unary     map[api.CommandKind]unaryFunc
	streaming map[api.CommandKind]streamingFunc
}

// New constructs the handler and registers it on the server.
func New(p Params) Handler {
	h := &handler{
		daemon:      p.Daemon,
		build:       p.Build,
		query:       p.Query,
		commandCtx:  p.CommandCtx,
		lsp:         p.Lsp,
		invocations: p.Invocations,
		mux:         p.Multiplexer,
		eventLog:    p.EventLog,
		identity:    p.Identity,
		clock:       p.Clock,
		logger:      p.Logger,
		stats:       p.Stats,
		tracer:      p.TracerProvider.Tracer(_tracerName),
	}
	h.registerCommands()
	api.RegisterDaemonAPIServer(p.Server, h)
	return h
}

// Unary serves the single-reply commands. Their client context is optional.
func (h *handler) Unary(ctx context.Context, req api.Request) (*api.CommandResult, error) {
	kind := api.KindOf(req)
	run, ok := h.unary[kind]
	if !ok {
		return nil, h.reject(kind, errors.Protocolf(codes.Unimplemented, "%s is not a unary command", kind))
	}

	inv, release, err := h.admit(kind, req, req.GetContext())
	if err != nil {
		return nil, h.reject(kind, err)
	}
	defer release()

	ctx, span := h.startSpan(ctx, inv)
	logger := h.invocationLogger(inv)
	logger.Debugw("running command")

	payload, err := invokeUnary(entity.WithInvocation(ctx, inv), logger, run, req)
	result, err := multiplex.Result(payload, err)
	h.finish(span, inv, outcomeOf(result, err))
	return result, err
}

func invokeUnary(ctx context.Context, logger *zap.SugaredLogger, run unaryFunc, req api.Request) (payload api.ResultPayload, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("command handler panicked", "panic", r, "stack", string(debug.Stack()))
			payload, err = nil, fmt.Errorf("command panicked: %v", r)
		}
	}()
	return run(ctx, req)
}

// Streaming serves the commands that report progress. They require a client context.
func (h *handler) Streaming(req api.Request, stream api.ProgressServer) error {
	kind := api.KindOf(req)
	run, ok := h.streaming[kind]
	if !ok {
		return h.reject(kind, errors.Protocolf(codes.Unimplemented, "%s is not a streaming command", kind))
	}
	cc := req.GetContext()
	if cc == nil {
		return h.reject(kind, errors.ErrNoClientContext)
	}

	inv, release, err := h.admit(kind, req, cc)
	if err != nil {
		return h.reject(kind, err)
	}
	defer release()

	return h.run(stream.Context(), inv, stream, func(ctx context.Context, emit dispatch.Emitter) (api.ResultPayload, error) {
		ec, err := h.commandCtx.Prepare(ctx, inv, emit)
		if err != nil {
			return nil, err
		}
		return run(ctx, ec, req, emit)
	})
}

// Lsp serves the interactive stream. The first frame must be the client context; every later
// frame carries one editor message.
func (h *handler) Lsp(stream api.LspServer) error {
	framer := framing.New()
	first, err := stream.Recv()
	if stderr.Is(err, io.EOF) {
		return h.reject(api.KindLsp, framer.Close())
	}
	if err != nil {
		return err
	}
	if _, err := framer.Accept(first); err != nil {
		return h.reject(api.KindLsp, err)
	}

	inv, release, err := h.admit(api.KindLsp, nil, framer.Context())
	if err != nil {
		return h.reject(api.KindLsp, err)
	}
	defer release()

	return h.run(stream.Context(), inv, stream, func(ctx context.Context, emit dispatch.Emitter) (api.ResultPayload, error) {
		ec, err := h.commandCtx.Prepare(ctx, inv, emit)
		if err != nil {
			return nil, err
		}

		session := h.lsp.NewSession(ec, emit)
		for !session.Exited() {
			frame, err := stream.Recv()
			if stderr.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, err
			}
			msg, err := framer.Accept(frame)
			if err != nil {
				return nil, err
			}
			if err := session.Handle(ctx, msg); err != nil {
				return nil, err
			}
		}
		if err := framer.Close(); err != nil {
			return nil, err
		}
		return &api.LspResponse{}, nil
	})
}

// run executes body on the invocation's progress stream, bracketed by the command span events.
func (h *handler) run(ctx context.Context, inv *entity.Invocation, send multiplex.Sender, body func(ctx context.Context, emit dispatch.Emitter) (api.ResultPayload, error)) error {
	ctx, span := h.startSpan(ctx, inv)
	logger := h.invocationLogger(inv)
	logger.Debugw("running command")

	rec, err := h.eventLog.Open(inv.ID.String())
	if err != nil {
		logger.Warnw("event log unavailable for invocation", zap.Error(err))
		rec = eventlog.Discard
	}
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Warnw("closing event log", zap.Error(err))
		}
	}()

	outcome := _outcomeAborted
	err = h.mux.Run(entity.WithInvocation(ctx, inv), send, func(ctx context.Context, sink *multiplex.Sink) (api.ResultPayload, error) {
		d := dispatch.New(inv.TraceID, h.clock, sink, rec, logger)
		if err := d.StartCommand(inv.Kind.String(), argv(inv)); err != nil {
			return nil, err
		}

		payload, err := body(ctx, d)
		result, rerr := multiplex.Result(payload, err)
		outcome = outcomeOf(result, rerr)
		if err := d.EndCommand(outcome); err != nil {
			logger.Debugw("command end not delivered", zap.Error(err))
		}
		return payload, err
	})
	if err != nil {
		if _, ok := errors.AsProtocol(err); !ok {
			logger.Infow("command stream ended early", zap.Error(err))
		}
		outcome = outcomeOf(nil, err)
	}
	h.finish(span, inv, outcome)
	return err
}

func argv(inv *entity.Invocation) []string {
	if inv.Context == nil {
		return nil
	}
	return inv.Context.SanitizedArgv
}

func (h *handler) invocationLogger(inv *entity.Invocation) *zap.SugaredLogger {
	return h.logger.With(
		"invocation", inv.ID.String(),
		"trace", inv.TraceID,
		"command", inv.Kind.String(),
	)
}

func (h *handler) startSpan(ctx context.Context, inv *entity.Invocation) (context.Context, trace.Span) {
	return h.tracer.Start(ctx, inv.Kind.String(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("buildd.invocation", inv.ID.String()),
			attribute.String("buildd.trace", inv.TraceID),
		),
	)
}

// finish ends the tracing span and records the invocation's outcome and latency.
func (h *handler) finish(span trace.Span, inv *entity.Invocation, outcome string) {
	if outcome != _outcomeSuccess {
		span.SetStatus(otelcodes.Error, outcome)
	}
	span.End()

	elapsed := h.clock.Now().Sub(inv.StartTime)
	h.count(inv.Kind, outcome)
	h.stats.Tagged(map[string]string{"command": inv.Kind.String()}).Timer("command_latency").Record(elapsed)
	h.invocationLogger(inv).Infow("command finished", "outcome", outcome, "elapsed", elapsed.Round(time.Millisecond).String())
}

// reject records a command refused before it became an invocation.
func (h *handler) reject(kind api.CommandKind, err error) error {
	h.count(kind, _outcomeRejected)
	h.logger.Infow("command rejected", "command", kind.String(), zap.Error(err))
	return err
}

func (h *handler) count(kind api.CommandKind, outcome string) {
	h.stats.Tagged(map[string]string{
		"command": kind.String(),
		"outcome": outcome,
	}).Counter("commands").Inc(1)
}

func outcomeOf(result *api.CommandResult, err error) string {
	switch {
	case err != nil:
		return _outcomeAborted
	case result.Err() != nil:
		return _outcomeFailure
	}
	return _outcomeSuccess
}
