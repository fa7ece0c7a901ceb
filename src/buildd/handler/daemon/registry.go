package daemon

import (
	"context"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/dispatch"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"google.golang.org/grpc/codes"
)

// unaryFunc runs a command that replies with a single result.
type unaryFunc func(ctx context.Context, req api.Request) (api.ResultPayload, error)

// streamingFunc runs a command against its resolved configuration, reporting progress through emit.
type streamingFunc func(ctx context.Context, ec *entity.EngineContext, req api.Request, emit dispatch.Emitter) (api.ResultPayload, error)

func unary[R api.Request, P api.ResultPayload](f func(context.Context, R) (P, error)) unaryFunc {
	return func(ctx context.Context, req api.Request) (api.ResultPayload, error) {
		r, ok := req.(R)
		if !ok {
			return nil, errors.Protocolf(codes.Internal, "%T routed to the wrong command", req)
		}
		return f(ctx, r)
	}
}

func streaming[R api.Request, P api.ResultPayload](f func(context.Context, *entity.EngineContext, R, dispatch.Emitter) (P, error)) streamingFunc {
	return func(ctx context.Context, ec *entity.EngineContext, req api.Request, emit dispatch.Emitter) (api.ResultPayload, error) {
		r, ok := req.(R)
		if !ok {
			return nil, errors.Protocolf(codes.Internal, "%T routed to the wrong command", req)
		}
		return f(ctx, ec, r, emit)
	}
}

// registerCommands fills the command table. Every kind except Lsp, which has its own
// stream shape, has exactly one entry.
func (h *handler) registerCommands() {
	h.unary = map[api.CommandKind]unaryFunc{
		api.KindKill:           unary(h.daemon.Kill),
		api.KindStatus:         unary(h.daemon.Status),
		api.KindPing:           unary(h.daemon.Ping),
		api.KindFlushDepFiles:  unary(h.daemon.FlushDepFiles),
		api.KindUnstableCrash:  unary(h.daemon.Crash),
		api.KindSegfault:       unary(h.daemon.Segfault),
		api.KindHeapDump:       unary(h.daemon.HeapDump),
		api.KindAllocatorStats: unary(h.daemon.AllocatorStats),
		api.KindDiceDump:       unary(h.daemon.DiceDump),
	}

	h.streaming = map[api.CommandKind]streamingFunc{
		api.KindBuild:              streaming(h.build.Build),
		api.KindBxl:                streaming(h.build.Bxl),
		api.KindTest:               streaming(h.build.Test),
		api.KindInstall:            streaming(h.build.Install),
		api.KindMaterialize:        streaming(h.build.Materialize),
		api.KindTargetsShowOutputs: streaming(h.build.TargetsShowOutputs),
		api.KindTargets:            streaming(h.query.Targets),
		api.KindAquery:             streaming(h.query.Aquery),
		api.KindCquery:             streaming(h.query.Cquery),
		api.KindUquery:             streaming(h.query.Uquery),
		api.KindAudit:              streaming(h.query.Audit),
		api.KindUnstableDocs:       streaming(h.query.Docs),
		api.KindProfile:            streaming(h.query.Profile),
		api.KindCleanStale: streaming(func(ctx context.Context, ec *entity.EngineContext, req *api.CleanStaleRequest, _ dispatch.Emitter) (*api.CleanStaleResponse, error) {
			return h.daemon.CleanStale(ctx, ec, req)
		}),
		api.KindAllocative: streaming(func(ctx context.Context, _ *entity.EngineContext, req *api.AllocativeRequest, _ dispatch.Emitter) (*api.AllocativeResponse, error) {
			return h.daemon.Allocative(ctx, req)
		}),
	}
}
