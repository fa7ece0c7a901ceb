// Package daemon implements the commands that act on the daemon process itself: lifecycle
// (Kill, Status, Ping), cache maintenance and the diagnostic hooks.
package daemon

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/gateway/engine"
	"github.com/uber/buildd/src/buildd/internal/clock"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/internal/eventlog"
	"github.com/uber/buildd/src/buildd/internal/fs"
	"github.com/uber/buildd/src/buildd/internal/grpcfx"
	"github.com/uber/buildd/src/buildd/internal/procstats"
	"github.com/uber/buildd/src/buildd/repository/configstate"
	"github.com/uber/buildd/src/buildd/repository/invocation"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

const (
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"

	_defaultIdleTimeout = 4 * 24 * time.Hour
	_defaultKillTimeout = 500 * time.Millisecond
	// _exitGrace is how long fx gets to stop once the kill timeout has elapsed.
	_exitGrace = 250 * time.Millisecond
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller serves the daemon-level commands and owns the daemon's accepting state.
type Controller interface {
	Kill(ctx context.Context, req *api.KillRequest) (*api.KillResponse, error)
	Status(ctx context.Context, req *api.StatusRequest) (*api.StatusResponse, error)
	Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error)
	FlushDepFiles(ctx context.Context, req *api.FlushDepFilesRequest) (*api.FlushDepFilesResponse, error)
	Crash(ctx context.Context, req *api.UnstableCrashRequest) (*api.GenericResponse, error)
	Segfault(ctx context.Context, req *api.SegfaultRequest) (*api.GenericResponse, error)
	HeapDump(ctx context.Context, req *api.HeapDumpRequest) (*api.HeapDumpResponse, error)
	AllocatorStats(ctx context.Context, req *api.AllocatorStatsRequest) (*api.AllocatorStatsResponse, error)
	DiceDump(ctx context.Context, req *api.DiceDumpRequest) (*api.DiceDumpResponse, error)
	Allocative(ctx context.Context, req *api.AllocativeRequest) (*api.AllocativeResponse, error)
	CleanStale(ctx context.Context, ec *entity.EngineContext, req *api.CleanStaleRequest) (*api.CleanStaleResponse, error)

	// Accepting reports whether new commands are admitted. It turns false once Kill starts.
	Accepting() bool
	// RefreshIdleTimer restarts the inactivity timer when no invocation is active, and
	// stops it otherwise.
	RefreshIdleTimer()
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Shutdowner  fx.Shutdowner
	Config      config.Provider
	Logger      *zap.SugaredLogger
	Identity    *entity.DaemonIdentity
	Server      grpcfx.Server
	Invocations invocation.Repository
	ConfigState configstate.Repository
	EventLog    eventlog.Log
	Engine      engine.Engine
	FS          fs.BuilddFS
	Clock       clock.Clock
}

type controller struct {
	shutdowner  fx.Shutdowner
	logger      *zap.SugaredLogger
	identity    *entity.DaemonIdentity
	server      grpcfx.Server
	invocations invocation.Repository
	configState configstate.Repository
	eventLog    eventlog.Log
	engine      engine.Engine
	fs          fs.BuilddFS
	clock       clock.Clock

	accepting atomic.Bool

	idleTimer   *time.Timer
	idleTimerMu sync.Mutex
	idleTimeout time.Duration

	exitGrace time.Duration
	killOnce  sync.Once

	// Process-fatal hooks, replaced in tests.
	exit     func(code int)
	crash    func(msg string)
	segfault func() error
}

// New constructs the daemon controller.
func New(p Params) (Controller, error) {
	c := &controller{
		shutdowner:  p.Shutdowner,
		logger:      p.Logger,
		identity:    p.Identity,
		server:      p.Server,
		invocations: p.Invocations,
		configState: p.ConfigState,
		eventLog:    p.EventLog,
		engine:      p.Engine,
		fs:          p.FS,
		clock:       p.Clock,
		idleTimeout: _defaultIdleTimeout,
		exitGrace:   _exitGrace,
		exit:        os.Exit,
		crash:       procstats.Crash,
		segfault:    procstats.Segfault,
	}
	if err := c.processConfig(p.Config); err != nil {
		return nil, err
	}
	c.accepting.Store(true)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			c.RefreshIdleTimer()
			return nil
		},
		OnStop: func(context.Context) error {
			c.idleTimerMu.Lock()
			defer c.idleTimerMu.Unlock()
			if c.idleTimer != nil {
				c.idleTimer.Stop()
			}
			return nil
		},
	})
	return c, nil
}

func (c *controller) processConfig(cfg config.Provider) error {
	val := cfg.Get(_idleTimeoutMinutesKey)
	if !val.HasValue() {
		return nil
	}
	var minutes int64
	if err := val.Populate(&minutes); err != nil {
		return fmt.Errorf("unable to get idle timeout from config: %w", err)
	}
	if minutes <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %d", minutes)
	}
	c.idleTimeout = time.Duration(minutes) * time.Minute
	return nil
}

func (c *controller) Accepting() bool {
	return c.accepting.Load()
}

func (c *controller) RefreshIdleTimer() {
	c.idleTimerMu.Lock()
	defer c.idleTimerMu.Unlock()

	// First call arms the timer before any command arrives.
	if c.idleTimer == nil {
		c.idleTimer = time.AfterFunc(c.idleTimeout, c.onIdle)
		return
	}

	c.idleTimer.Stop()
	if c.invocations.Active() == 0 {
		c.idleTimer.Reset(c.idleTimeout)
	}
}

// onIdle stops admission before counting active invocations. Admission registers before it
// checks the flag, so a command admitted concurrently is either seen here or rejected there.
func (c *controller) onIdle() {
	if !c.accepting.CompareAndSwap(true, false) {
		return
	}
	if c.invocations.Active() > 0 {
		c.accepting.Store(true)
		return
	}
	c.logger.Infow("idle timeout reached, shutting down", "idleTimeout", c.idleTimeout.String())
	c.server.SetServing(false)
	if err := c.shutdowner.Shutdown(); err != nil {
		c.logger.Errorw("requesting shutdown", zap.Error(err))
		c.exit(1)
	}
}

// Kill stops admitting commands and replies. In-flight invocations get until the timeout to
// finish before fx is asked to stop; the process exits shortly after regardless.
func (c *controller) Kill(_ context.Context, req *api.KillRequest) (*api.KillResponse, error) {
	if req.Timeout < 0 {
		return nil, errors.Protocolf(codes.InvalidArgument, "kill timeout must not be negative, got %s", req.Timeout)
	}
	timeout := req.Timeout
	if timeout == 0 {
		timeout = _defaultKillTimeout
	}

	c.killOnce.Do(func() {
		c.logger.Infow("kill requested",
			"reason", req.Reason,
			"timeout", timeout.String(),
			"active", c.invocations.Active(),
		)
		c.accepting.Store(false)
		c.server.SetServing(false)
		go c.shutdown(timeout)
	})
	return &api.KillResponse{}, nil
}

func (c *controller) shutdown(timeout time.Duration) {
	time.AfterFunc(timeout+c.exitGrace, func() {
		c.logger.Errorw("graceful shutdown did not finish in time, exiting", "timeout", timeout.String())
		c.exit(1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := c.invocations.WaitIdle(ctx); err != nil {
		c.logger.Warnw("invocations still running at kill timeout", "active", c.invocations.Active())
	}

	if err := c.shutdowner.Shutdown(); err != nil {
		c.logger.Errorw("requesting shutdown", zap.Error(err))
		c.exit(1)
	}
}

// Status never takes a lock shared with running invocations.
func (c *controller) Status(_ context.Context, req *api.StatusRequest) (*api.StatusResponse, error) {
	resp := &api.StatusResponse{
		ProcessInfo: &api.DaemonProcessInfo{
			Pid:        c.identity.Pid,
			Endpoint:   c.identity.Endpoint(),
			Version:    c.identity.Version,
			AuthToken:  c.identity.AuthToken,
			InstanceID: c.identity.InstanceID,
		},
		StartTime:         c.identity.StartTime,
		Uptime:            c.clock.Now().Sub(c.identity.StartTime),
		ActiveInvocations: uint32(c.invocations.Active()),
	}
	if !req.Snapshot {
		return resp, nil
	}

	mem := procstats.ReadMemory()
	resp.BytesAllocated = mem.Allocated
	resp.BytesResident = mem.Resident
	resp.BytesRetained = mem.Retained

	rt := procstats.ReadRuntime()
	snap := &api.Snapshot{
		Goroutines:      rt.Goroutines,
		NumGC:           rt.NumGC,
		HeapObjects:     rt.HeapObjects,
		EventLogBytes:   c.eventLog.BytesWritten(),
		ConfigStale:     c.configState.AnyStale(),
		CommandsServed:  c.invocations.Served(),
		AcceptsCommands: c.Accepting(),
	}
	usage, err := procstats.ReadUsage()
	if err != nil {
		c.logger.Debugw("reading resource usage", zap.Error(err))
	} else {
		snap.UserCPU = usage.UserCPU
		snap.SystemCPU = usage.SystemCPU
		snap.MaxRSSBytes = usage.MaxRSSBytes
	}
	resp.Snapshot = snap
	return resp, nil
}

func (c *controller) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	if req.Delay < 0 {
		return nil, errors.Protocolf(codes.InvalidArgument, "ping delay must not be negative, got %s", req.Delay)
	}
	if req.Delay > 0 {
		if err := c.clock.Sleep(ctx, req.Delay); err != nil {
			return nil, err
		}
	}
	return &api.PingResponse{}, nil
}

func (c *controller) FlushDepFiles(ctx context.Context, req *api.FlushDepFilesRequest) (*api.FlushDepFilesResponse, error) {
	if err := c.engine.FlushDepFiles(ctx, req.RetainLocal); err != nil {
		return nil, err
	}
	return &api.FlushDepFilesResponse{}, nil
}

func (c *controller) Crash(context.Context, *api.UnstableCrashRequest) (*api.GenericResponse, error) {
	c.logger.Warnw("crash requested")
	c.crash("crash requested by client")
	return &api.GenericResponse{}, nil
}

func (c *controller) Segfault(context.Context, *api.SegfaultRequest) (*api.GenericResponse, error) {
	c.logger.Warnw("segfault requested")
	if err := c.segfault(); err != nil {
		return nil, err
	}
	return &api.GenericResponse{}, nil
}

func (c *controller) CleanStale(ctx context.Context, ec *entity.EngineContext, req *api.CleanStaleRequest) (*api.CleanStaleResponse, error) {
	result, err := c.engine.CleanStale(ctx, ec, req.KeepSince, req.DryRun)
	if err != nil {
		return nil, err
	}
	return &api.CleanStaleResponse{
		Removed:    result.Removed,
		BytesFreed: result.BytesFreed,
		DryRun:     req.DryRun,
	}, nil
}
