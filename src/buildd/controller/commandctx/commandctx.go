// Package commandctx turns an admitted invocation's client context into the engine context its
// command runs with, loading or reusing the project configuration on the way.
package commandctx

import (
	"context"
	"fmt"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/gateway/configloader"
	"github.com/uber/buildd/src/buildd/internal/dispatch"
	"github.com/uber/buildd/src/buildd/mapper"
	"github.com/uber/buildd/src/buildd/repository/configstate"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _staleConfigWarning = "project configuration changed on disk since it was loaded; reusing the resident configuration"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller prepares the engine context of an invocation.
type Controller interface {
	// Prepare resolves the configuration the invocation runs with. Configuration events are
	// published through emit.
	Prepare(ctx context.Context, inv *entity.Invocation, emit dispatch.Emitter) (*entity.EngineContext, error)
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Loader configloader.Loader
	State  configstate.Repository
	Logger *zap.SugaredLogger
}

type controller struct {
	loader configloader.Loader
	state  configstate.Repository
	logger *zap.SugaredLogger
}

// New creates a new command context controller.
func New(p Params) Controller {
	return &controller{
		loader: p.Loader,
		state:  p.State,
		logger: p.Logger,
	}
}

func (c *controller) Prepare(ctx context.Context, inv *entity.Invocation, emit dispatch.Emitter) (*entity.EngineContext, error) {
	cc := inv.Context
	if cc == nil {
		return mapper.ClientContextToEngineContext(nil, nil, inv.TraceID), nil
	}

	if cc.ReuseCurrentConfig {
		if snap, stale := c.state.Current(cc.WorkingDir); snap != nil {
			if stale {
				if err := emit.Console("warn", _staleConfigWarning); err != nil {
					return nil, err
				}
			}
			return mapper.ClientContextToEngineContext(cc, snap, inv.TraceID), nil
		}
		c.logger.Debugw("no resident configuration for the project, loading",
			"invocation", inv.ID.String(),
			"workingDir", cc.WorkingDir,
		)
	}

	snap, err := c.loader.Load(ctx, cc.WorkingDir, cc.ConfigOverrides)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	change := c.state.Replace(snap)
	if change.Changed && change.Previous != nil {
		c.logger.Infow("configuration changed",
			"digest", snap.Digest,
			"previousDigest", change.Previous.Digest,
			"projectRoot", snap.ProjectRoot,
		)
		err := emit.Emit(&api.ConfigurationChanged{
			Digest:         snap.Digest,
			PreviousDigest: change.Previous.Digest,
			Diff:           change.Diff,
		})
		if err != nil {
			return nil, err
		}
	}
	return mapper.ClientContextToEngineContext(cc, snap, inv.TraceID), nil
}
