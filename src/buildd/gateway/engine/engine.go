// Package engine is the daemon's gateway to the build engine. The engine runs as a separate
// executable; each call is one process exchanging a JSON request and response over stdio.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/internal/executor"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyBinary = "engine.binary"

	_errEngineCall = "engine %s: %w"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Engine evaluates, builds and queries targets on behalf of commands.
// Every call carries the invocation's EngineContext unless it acts on the daemon as a whole.
type Engine interface {
	// Resolve expands target patterns into configured targets.
	Resolve(ctx context.Context, ec *entity.EngineContext, patterns []string) ([]entity.ResolvedTarget, error)
	// BuildTarget builds the requested providers of one target.
	BuildTarget(ctx context.Context, ec *entity.EngineContext, target entity.ResolvedTarget, spec entity.BuildSpec) (*entity.TargetResult, error)
	// Materialize writes built artifacts to disk and returns the paths written.
	Materialize(ctx context.Context, ec *entity.EngineContext, paths []string) ([]string, error)
	// RunBxl runs one bxl script.
	RunBxl(ctx context.Context, ec *entity.EngineContext, label string, args []string, spec entity.BuildSpec) (*entity.BxlResult, error)
	// Install installs a built target.
	Install(ctx context.Context, ec *entity.EngineContext, target entity.ResolvedTarget, installerArgs []string, debug bool) error
	// RunTest builds and runs the tests of one target.
	RunTest(ctx context.Context, ec *entity.EngineContext, target entity.ResolvedTarget, spec entity.TestSpec) (*entity.TestOutcome, error)
	// Query evaluates a graph query and returns its rendered output.
	Query(ctx context.Context, ec *entity.EngineContext, spec entity.QuerySpec) (string, error)
	// Targets lists targets and their attributes.
	Targets(ctx context.Context, ec *entity.EngineContext, spec entity.TargetsSpec) (*entity.TargetsListing, error)
	// DefaultOutputs returns the default outputs of a target without building it.
	DefaultOutputs(ctx context.Context, ec *entity.EngineContext, target entity.ResolvedTarget) ([]string, error)
	// Audit runs one audit subcommand.
	Audit(ctx context.Context, ec *entity.EngineContext, subcommand string, args []string) (string, error)
	// Docs renders documentation as JSON.
	Docs(ctx context.Context, ec *entity.EngineContext, symbols []string, retrieveAll bool) (string, error)
	// Profile profiles loading or analysis and writes the profile to spec.Destination.
	Profile(ctx context.Context, ec *entity.EngineContext, spec entity.ProfileSpec) (*entity.ProfileResult, error)
	// CleanStale removes artifacts unused since keepSince.
	CleanStale(ctx context.Context, ec *entity.EngineContext, keepSince time.Time, dryRun bool) (*entity.CleanResult, error)
	// GraphDump returns the engine's computation graph in format.
	GraphDump(ctx context.Context, format string) ([]byte, error)
	// FlushDepFiles drops cached dep files.
	FlushDepFiles(ctx context.Context, retainLocal bool) error
}

// Params define values to be used by the engine gateway.
type Params struct {
	fx.In

	Config   config.Provider
	Logger   *zap.SugaredLogger
	Executor executor.Executor
}

type gateway struct {
	binary   string
	logger   *zap.SugaredLogger
	executor executor.Executor
}

// New returns an Engine backed by the configured engine executable. With no executable
// configured every call fails with an EngineUnavailableError.
func New(p Params) (Engine, error) {
	g := &gateway{
		logger:   p.Logger,
		executor: p.Executor,
	}
	if err := g.processConfig(p.Config); err != nil {
		return nil, err
	}
	if g.binary == "" {
		g.logger.Warnw("no build engine configured", "key", _configKeyBinary)
	}
	return g, nil
}

func (g *gateway) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyBinary)
	if err := val.Populate(&g.binary); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyBinary, err)
	}
	return nil
}

type request struct {
	Context *entity.EngineContext `json:"context,omitempty"`
	Params  any                   `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// call runs "<binary> <method>" with the request on stdin and decodes the result into out.
func (g *gateway) call(ctx context.Context, method string, ec *entity.EngineContext, params, out any) error {
	if g.binary == "" {
		return fmt.Errorf(_errEngineCall, method, &errors.EngineUnavailableError{Reason: fmt.Sprintf("%q is not set", _configKeyBinary)})
	}

	payload, err := json.Marshal(request{Context: ec, Params: params})
	if err != nil {
		return fmt.Errorf(_errEngineCall, method, err)
	}

	cmd := exec.CommandContext(ctx, g.binary, method)
	cmd.Stdin = bytes.NewReader(payload)
	if ec != nil {
		cmd.Dir = ec.ProjectRoot
	}

	stdout, stderr, code, err := g.executor.Run(ctx, cmd)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf(_errEngineCall, method, &errors.EngineUnavailableError{Reason: err.Error()})
	}
	if code != 0 {
		return fmt.Errorf("engine %s exited with code %d: %s", method, code, strings.TrimSpace(stderr))
	}

	var resp response
	if err := json.Unmarshal(stdout, &resp); err != nil {
		return fmt.Errorf("decoding engine %s response: %w", method, err)
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decoding engine %s result: %w", method, err)
	}
	return nil
}

func (g *gateway) Resolve(ctx context.Context, ec *entity.EngineContext, patterns []string) ([]entity.ResolvedTarget, error) {
	var targets []entity.ResolvedTarget
	err := g.call(ctx, "resolve", ec, map[string]any{"patterns": patterns}, &targets)
	return targets, err
}

func (g *gateway) BuildTarget(ctx context.Context, ec *entity.EngineContext, target entity.ResolvedTarget, spec entity.BuildSpec) (*entity.TargetResult, error) {
	result := &entity.TargetResult{Target: target}
	if err := g.call(ctx, "build", ec, map[string]any{"target": target, "spec": spec}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *gateway) Materialize(ctx context.Context, ec *entity.EngineContext, paths []string) ([]string, error) {
	var written []string
	err := g.call(ctx, "materialize", ec, map[string]any{"paths": paths}, &written)
	return written, err
}

func (g *gateway) RunBxl(ctx context.Context, ec *entity.EngineContext, label string, args []string, spec entity.BuildSpec) (*entity.BxlResult, error) {
	result := &entity.BxlResult{}
	if err := g.call(ctx, "bxl", ec, map[string]any{"label": label, "args": args, "spec": spec}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *gateway) Install(ctx context.Context, ec *entity.EngineContext, target entity.ResolvedTarget, installerArgs []string, debug bool) error {
	return g.call(ctx, "install", ec, map[string]any{"target": target, "installerArgs": installerArgs, "debug": debug}, nil)
}

func (g *gateway) RunTest(ctx context.Context, ec *entity.EngineContext, target entity.ResolvedTarget, spec entity.TestSpec) (*entity.TestOutcome, error) {
	outcome := &entity.TestOutcome{Target: target.Label}
	if err := g.call(ctx, "test", ec, map[string]any{"target": target, "spec": spec}, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (g *gateway) Query(ctx context.Context, ec *entity.EngineContext, spec entity.QuerySpec) (string, error) {
	var output string
	err := g.call(ctx, "query", ec, spec, &output)
	return output, err
}

func (g *gateway) Targets(ctx context.Context, ec *entity.EngineContext, spec entity.TargetsSpec) (*entity.TargetsListing, error) {
	listing := &entity.TargetsListing{}
	if err := g.call(ctx, "targets", ec, spec, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (g *gateway) DefaultOutputs(ctx context.Context, ec *entity.EngineContext, target entity.ResolvedTarget) ([]string, error) {
	var outputs []string
	err := g.call(ctx, "outputs", ec, map[string]any{"target": target}, &outputs)
	return outputs, err
}

func (g *gateway) Audit(ctx context.Context, ec *entity.EngineContext, subcommand string, args []string) (string, error) {
	var output string
	err := g.call(ctx, "audit", ec, map[string]any{"subcommand": subcommand, "args": args}, &output)
	return output, err
}

func (g *gateway) Docs(ctx context.Context, ec *entity.EngineContext, symbols []string, retrieveAll bool) (string, error) {
	var docs json.RawMessage
	if err := g.call(ctx, "docs", ec, map[string]any{"symbols": symbols, "retrieveAll": retrieveAll}, &docs); err != nil {
		return "", err
	}
	return string(docs), nil
}

func (g *gateway) Profile(ctx context.Context, ec *entity.EngineContext, spec entity.ProfileSpec) (*entity.ProfileResult, error) {
	result := &entity.ProfileResult{}
	if err := g.call(ctx, "profile", ec, spec, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *gateway) CleanStale(ctx context.Context, ec *entity.EngineContext, keepSince time.Time, dryRun bool) (*entity.CleanResult, error) {
	result := &entity.CleanResult{}
	if err := g.call(ctx, "clean-stale", ec, map[string]any{"keepSince": keepSince, "dryRun": dryRun}, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *gateway) GraphDump(ctx context.Context, format string) ([]byte, error) {
	var dump string
	if err := g.call(ctx, "graph-dump", nil, map[string]any{"format": format}, &dump); err != nil {
		return nil, err
	}
	return []byte(dump), nil
}

func (g *gateway) FlushDepFiles(ctx context.Context, retainLocal bool) error {
	return g.call(ctx, "flush-dep-files", nil, map[string]any{"retainLocal": retainLocal}, nil)
}
