package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tally "github.com/uber-go/tally/v4"
	buildctl "github.com/uber/buildd/src/buildd/controller/build"
	"github.com/uber/buildd/src/buildd/controller/commandctx"
	daemonctl "github.com/uber/buildd/src/buildd/controller/daemon"
	"github.com/uber/buildd/src/buildd/controller/lsp"
	"github.com/uber/buildd/src/buildd/controller/query"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/gateway/configloader"
	"github.com/uber/buildd/src/buildd/gateway/engine"
	"github.com/uber/buildd/src/buildd/handler/daemon"
	"github.com/uber/buildd/src/buildd/internal/clock"
	"github.com/uber/buildd/src/buildd/internal/core"
	"github.com/uber/buildd/src/buildd/internal/eventlog"
	"github.com/uber/buildd/src/buildd/internal/executor"
	"github.com/uber/buildd/src/buildd/internal/fs"
	"github.com/uber/buildd/src/buildd/internal/grpcfx"
	"github.com/uber/buildd/src/buildd/internal/multiplex"
	"github.com/uber/buildd/src/buildd/internal/serverinfofile"
	"github.com/uber/buildd/src/buildd/internal/telemetry"
	"github.com/uber/buildd/src/buildd/repository/configstate"
	"github.com/uber/buildd/src/buildd/repository/invocation"
	"go.uber.org/config"
	"go.uber.org/fx"
)

const (
	_configKeyVersion = "daemon.version"
	_defaultVersion   = "dev"
)

// Module defines the buildd daemon application module.
var Module = fx.Options(
	daemon.Module, // inbounds
	engine.Module, // outbounds
	configloader.Module,
	daemonctl.Module,
	buildctl.Module,
	query.Module,
	commandctx.Module,
	lsp.Module,
	invocation.Module,
	configstate.Module,
	grpcfx.Module,
	multiplex.Module,
	eventlog.Module,
	telemetry.Module,
	serverinfofile.Module,
	executor.Module,
	fs.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(clock.New),
	fx.Provide(newDaemonIdentity),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "buildd",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        EnvLocal,
			RuntimeEnvironment: EnvLocal,
		}
	}),
)

// newDaemonIdentity identifies this daemon process for the lifetime of the process.
func newDaemonIdentity(cfg config.Provider, clk clock.Clock) (*entity.DaemonIdentity, error) {
	var version string
	if err := cfg.Get(_configKeyVersion).Populate(&version); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyVersion, err)
	}
	if version == "" {
		version = _defaultVersion
	}
	return entity.NewDaemonIdentity(int32(os.Getpid()), version, clk.Now())
}
