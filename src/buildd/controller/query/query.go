// Package query implements the commands that inspect the target graph without building it.
package query

import (
	"context"
	"path/filepath"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/gateway/engine"
	"github.com/uber/buildd/src/buildd/internal/dispatch"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller runs query-family commands against the engine.
type Controller interface {
	Targets(ctx context.Context, ec *entity.EngineContext, req *api.TargetsRequest, emit dispatch.Emitter) (*api.TargetsResponse, error)
	Aquery(ctx context.Context, ec *entity.EngineContext, req *api.AqueryRequest, emit dispatch.Emitter) (*api.AqueryResponse, error)
	Cquery(ctx context.Context, ec *entity.EngineContext, req *api.CqueryRequest, emit dispatch.Emitter) (*api.CqueryResponse, error)
	Uquery(ctx context.Context, ec *entity.EngineContext, req *api.UqueryRequest, emit dispatch.Emitter) (*api.UqueryResponse, error)
	Audit(ctx context.Context, ec *entity.EngineContext, req *api.AuditRequest, emit dispatch.Emitter) (*api.AuditResponse, error)
	Docs(ctx context.Context, ec *entity.EngineContext, req *api.UnstableDocsRequest, emit dispatch.Emitter) (*api.UnstableDocsResponse, error)
	Profile(ctx context.Context, ec *entity.EngineContext, req *api.ProfileRequest, emit dispatch.Emitter) (*api.ProfileResponse, error)
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Engine engine.Engine
	Logger *zap.SugaredLogger
}

type controller struct {
	engine engine.Engine
	logger *zap.SugaredLogger
}

// New creates a new query controller.
func New(p Params) Controller {
	return &controller{
		engine: p.Engine,
		logger: p.Logger,
	}
}

func (c *controller) Targets(ctx context.Context, ec *entity.EngineContext, req *api.TargetsRequest, _ dispatch.Emitter) (*api.TargetsResponse, error) {
	listing, err := c.engine.Targets(ctx, ec, entity.TargetsSpec{
		Patterns:         req.TargetPatterns,
		OutputAttributes: req.OutputAttributes,
		Format:           req.Format.String(),
		KeepGoing:        req.KeepGoing,
	})
	if err != nil {
		return nil, err
	}
	return &api.TargetsResponse{
		Output:        listing.Output,
		ErrorCount:    uint64(len(listing.Errors)),
		ErrorMessages: listing.Errors,
	}, nil
}

func (c *controller) query(ctx context.Context, ec *entity.EngineContext, spec entity.QuerySpec) (string, error) {
	if spec.Query == "" {
		return "", errors.Protocolf(codes.InvalidArgument, "%s requires a query expression", spec.Kind)
	}
	c.logger.Debugw("evaluating query", "kind", string(spec.Kind), "args", len(spec.Args))
	return c.engine.Query(ctx, ec, spec)
}

func (c *controller) Aquery(ctx context.Context, ec *entity.EngineContext, req *api.AqueryRequest, _ dispatch.Emitter) (*api.AqueryResponse, error) {
	out, err := c.query(ctx, ec, entity.QuerySpec{
		Kind:             entity.QueryAction,
		Query:            req.Query,
		Args:             req.QueryArgs,
		OutputAttributes: req.OutputAttributes,
		OutputFormat:     mapper.QueryOutputFormatName(req.OutputFormat),
	})
	if err != nil {
		return nil, err
	}
	return &api.AqueryResponse{Output: out}, nil
}

func (c *controller) Cquery(ctx context.Context, ec *entity.EngineContext, req *api.CqueryRequest, _ dispatch.Emitter) (*api.CqueryResponse, error) {
	out, err := c.query(ctx, ec, entity.QuerySpec{
		Kind:             entity.QueryConfigured,
		Query:            req.Query,
		Args:             req.QueryArgs,
		OutputAttributes: req.OutputAttributes,
		OutputFormat:     mapper.QueryOutputFormatName(req.OutputFormat),
		TargetUniverse:   req.TargetUniverse,
		ShowProviders:    req.ShowProviders,
		CorrectOwner:     req.CorrectOwner,
	})
	if err != nil {
		return nil, err
	}
	return &api.CqueryResponse{Output: out}, nil
}

func (c *controller) Uquery(ctx context.Context, ec *entity.EngineContext, req *api.UqueryRequest, _ dispatch.Emitter) (*api.UqueryResponse, error) {
	out, err := c.query(ctx, ec, entity.QuerySpec{
		Kind:             entity.QueryUnconfigured,
		Query:            req.Query,
		Args:             req.QueryArgs,
		OutputAttributes: req.OutputAttributes,
		OutputFormat:     mapper.QueryOutputFormatName(req.OutputFormat),
	})
	if err != nil {
		return nil, err
	}
	return &api.UqueryResponse{Output: out}, nil
}

func (c *controller) Audit(ctx context.Context, ec *entity.EngineContext, req *api.AuditRequest, _ dispatch.Emitter) (*api.AuditResponse, error) {
	if req.Subcommand == "" {
		return nil, errors.Protocolf(codes.InvalidArgument, "audit subcommand is required")
	}
	out, err := c.engine.Audit(ctx, ec, req.Subcommand, req.Args)
	if err != nil {
		return nil, err
	}
	return &api.AuditResponse{Output: out}, nil
}

func (c *controller) Docs(ctx context.Context, ec *entity.EngineContext, req *api.UnstableDocsRequest, _ dispatch.Emitter) (*api.UnstableDocsResponse, error) {
	out, err := c.engine.Docs(ctx, ec, req.Symbols, req.RetrieveAll)
	if err != nil {
		return nil, err
	}
	return &api.UnstableDocsResponse{DocsJSON: out}, nil
}

// Profile writes the profile to the request's destination. A relative destination is
// resolved against the client's working directory.
func (c *controller) Profile(ctx context.Context, ec *entity.EngineContext, req *api.ProfileRequest, emit dispatch.Emitter) (*api.ProfileResponse, error) {
	if req.Destination == "" {
		return nil, errors.Protocolf(codes.InvalidArgument, "profile destination is required")
	}
	dest := req.Destination
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(ec.WorkingDir, dest)
	}

	result, err := c.engine.Profile(ctx, ec, entity.ProfileSpec{
		Patterns:    req.TargetPatterns,
		Destination: dest,
		Kind:        req.Kind.String(),
		Recursive:   req.Recursive,
	})
	if err != nil {
		return nil, err
	}

	if err := emit.Emit(&api.InstantEvent{
		Name:   "profile_written",
		Fields: map[string]string{"destination": dest, "kind": req.Kind.String()},
	}); err != nil {
		c.logger.Debugw("profile event not delivered", zap.Error(err))
	}
	return &api.ProfileResponse{
		Destination: dest,
		Elapsed:     result.Elapsed,
		Bytes:       result.Bytes,
	}, nil
}
