// Package build implements the commands that build targets: Build, Bxl, Install, Test,
// TargetsShowOutputs and Materialize.
package build

import (
	"context"
	"fmt"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/gateway/engine"
	"github.com/uber/buildd/src/buildd/internal/dispatch"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/mapper"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
)

const (
	_configKeyMaterialize = "build.materializeFinalArtifacts"

	// Test exit codes, as reported by the client.
	_exitOK          = 0
	_exitBuildFailed = 2
	_exitTestsFailed = 32
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller runs build-family commands against the engine.
type Controller interface {
	Build(ctx context.Context, ec *entity.EngineContext, req *api.BuildRequest, emit dispatch.Emitter) (*api.BuildResponse, error)
	Bxl(ctx context.Context, ec *entity.EngineContext, req *api.BxlRequest, emit dispatch.Emitter) (*api.BxlResponse, error)
	Install(ctx context.Context, ec *entity.EngineContext, req *api.InstallRequest, emit dispatch.Emitter) (*api.InstallResponse, error)
	Test(ctx context.Context, ec *entity.EngineContext, req *api.TestRequest, emit dispatch.Emitter) (*api.TestResponse, error)
	TargetsShowOutputs(ctx context.Context, ec *entity.EngineContext, req *api.TargetsShowOutputsRequest, emit dispatch.Emitter) (*api.TargetsShowOutputsResponse, error)
	Materialize(ctx context.Context, ec *entity.EngineContext, req *api.MaterializeRequest, emit dispatch.Emitter) (*api.MaterializeResponse, error)
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Config config.Provider
	Engine engine.Engine
	Logger *zap.SugaredLogger
}

type controller struct {
	engine engine.Engine
	logger *zap.SugaredLogger

	// materializeByDefault resolves MaterializationsDefault.
	materializeByDefault bool
}

// New creates a new build controller.
func New(p Params) (Controller, error) {
	c := &controller{
		engine:               p.Engine,
		logger:               p.Logger,
		materializeByDefault: true,
	}
	if err := c.processConfig(p.Config); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *controller) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyMaterialize)
	if !val.HasValue() {
		return nil
	}
	if err := val.Populate(&c.materializeByDefault); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyMaterialize, err)
	}
	return nil
}

func (c *controller) shouldMaterialize(m api.Materializations) bool {
	switch m {
	case api.MaterializationsMaterialize:
		return true
	case api.MaterializationsSkip:
		return false
	}
	return c.materializeByDefault
}

func validateBuildOptions(opts *api.CommonBuildOptions, m api.Materializations) error {
	if !opts.GetExecutionStrategy().Valid() {
		return errors.Protocolf(codes.InvalidArgument, "unknown execution strategy %d", opts.GetExecutionStrategy())
	}
	if !m.Valid() {
		return errors.Protocolf(codes.InvalidArgument, "unknown materialization policy %d", m)
	}
	return nil
}

// targetOutcome is the result of one target's work within a pooled command.
type targetOutcome[T any] struct {
	value T
	err   error
}

// forEachTarget runs fn for every target on a pool bounded by concurrency. A failing target
// never cancels its siblings; each outcome is reported as a TargetBuilt event.
func forEachTarget[T any](
	ctx context.Context,
	c *controller,
	targets []entity.ResolvedTarget,
	concurrency int,
	emit dispatch.Emitter,
	fn func(ctx context.Context, target entity.ResolvedTarget) (T, error),
) []targetOutcome[T] {
	outcomes := make([]targetOutcome[T], len(targets))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, target := range targets {
		g.Go(func() error {
			v, err := fn(ctx, target)
			outcomes[i] = targetOutcome[T]{value: v, err: err}

			ev := &api.TargetBuilt{Target: target.Label, Success: err == nil}
			if err != nil {
				ev.Error = err.Error()
			}
			if emitErr := emit.Emit(ev); emitErr != nil {
				c.logger.Debugw("target event not delivered", "target", target.Label, zap.Error(emitErr))
			}
			return nil
		})
	}
	// Goroutines never return an error.
	_ = g.Wait()
	return outcomes
}

func targetError(label string, err error) string {
	return fmt.Sprintf("%s: %v", label, err)
}

func (c *controller) Build(ctx context.Context, ec *entity.EngineContext, req *api.BuildRequest, emit dispatch.Emitter) (*api.BuildResponse, error) {
	resp := &api.BuildResponse{ProjectRoot: ec.ProjectRoot}
	if !req.BuildProviders.Valid() {
		return nil, errors.Protocolf(codes.InvalidArgument, "unknown build provider action")
	}
	if err := validateBuildOptions(req.BuildOpts, req.FinalArtifactMaterializations); err != nil {
		return nil, err
	}
	if req.BuildProviders.AllSkip() {
		return resp, nil
	}

	targets, err := c.engine.Resolve(ctx, ec, req.TargetPatterns)
	if err != nil {
		return nil, err
	}

	spec := mapper.BuildOptionsToSpec(req.BuildProviders, req.BuildOpts)
	outcomes := forEachTarget(ctx, c, targets, spec.Concurrency, emit,
		func(ctx context.Context, target entity.ResolvedTarget) (*entity.TargetResult, error) {
			return c.engine.BuildTarget(ctx, ec, target, spec)
		})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var built []*entity.TargetResult
	for i, o := range outcomes {
		if o.err != nil {
			resp.ErrorMessages = append(resp.ErrorMessages, targetError(targets[i].Label, o.err))
			continue
		}
		built = append(built, o.value)
		resp.BuildTargets = append(resp.BuildTargets, mapper.TargetResultToBuildTarget(o.value, req.ResponseOptions))
	}

	if c.shouldMaterialize(req.FinalArtifactMaterializations) {
		if msg := c.materialize(ctx, ec, mapper.OutputPaths(built)); msg != "" {
			resp.ErrorMessages = append(resp.ErrorMessages, msg)
		}
	}

	c.logger.Infow("build finished",
		"projectRoot", ec.ProjectRoot,
		"targets", len(targets),
		"failed", len(resp.ErrorMessages),
	)
	return resp, nil
}

// materialize writes paths to disk and returns an error message for the response, or "".
func (c *controller) materialize(ctx context.Context, ec *entity.EngineContext, paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	if _, err := c.engine.Materialize(ctx, ec, paths); err != nil {
		return fmt.Sprintf("materializing outputs: %v", err)
	}
	return ""
}

func (c *controller) Bxl(ctx context.Context, ec *entity.EngineContext, req *api.BxlRequest, emit dispatch.Emitter) (*api.BxlResponse, error) {
	if req.BxlLabel == "" {
		return nil, errors.Protocolf(codes.InvalidArgument, "bxl label is required")
	}
	if err := validateBuildOptions(req.BuildOpts, req.FinalArtifactMaterializations); err != nil {
		return nil, err
	}

	spec := mapper.BuildOptionsToSpec(nil, req.BuildOpts)
	result, err := c.engine.RunBxl(ctx, ec, req.BxlLabel, req.BxlArgs, spec)
	if err != nil {
		return nil, err
	}

	resp := &api.BxlResponse{
		ProjectRoot:   ec.ProjectRoot,
		ErrorMessages: result.Errors,
	}
	for _, path := range result.Outputs {
		resp.Outputs = append(resp.Outputs, &api.BuildOutput{
			Path:      path,
			Providers: &api.OutputProviders{DefaultInfo: true},
		})
	}

	if c.shouldMaterialize(req.FinalArtifactMaterializations) {
		if msg := c.materialize(ctx, ec, result.Outputs); msg != "" {
			resp.ErrorMessages = append(resp.ErrorMessages, msg)
		}
	}
	return resp, nil
}

func (c *controller) Install(ctx context.Context, ec *entity.EngineContext, req *api.InstallRequest, emit dispatch.Emitter) (*api.InstallResponse, error) {
	if err := validateBuildOptions(req.BuildOpts, api.MaterializationsDefault); err != nil {
		return nil, err
	}
	targets, err := c.engine.Resolve(ctx, ec, req.TargetPatterns)
	if err != nil {
		return nil, err
	}

	concurrency := mapper.BuildOptionsToSpec(nil, req.BuildOpts).Concurrency
	outcomes := forEachTarget(ctx, c, targets, concurrency, emit,
		func(ctx context.Context, target entity.ResolvedTarget) (struct{}, error) {
			return struct{}{}, c.engine.Install(ctx, ec, target, req.InstallerRunArgs, req.InstallerDebug)
		})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &api.InstallResponse{}
	for i, o := range outcomes {
		if o.err != nil {
			resp.ErrorMessages = append(resp.ErrorMessages, targetError(targets[i].Label, o.err))
			continue
		}
		resp.Installed = append(resp.Installed, targets[i].Label)
	}
	return resp, nil
}

func (c *controller) Test(ctx context.Context, ec *entity.EngineContext, req *api.TestRequest, emit dispatch.Emitter) (*api.TestResponse, error) {
	if err := validateBuildOptions(req.BuildOpts, api.MaterializationsDefault); err != nil {
		return nil, err
	}
	targets, err := c.engine.Resolve(ctx, ec, req.TargetPatterns)
	if err != nil {
		return nil, err
	}

	spec := entity.TestSpec{
		Build:          mapper.BuildOptionsToSpec(&api.BuildProviders{TestInfo: api.ProviderBuild}, req.BuildOpts),
		ExecutorArgs:   req.TestExecutorArgs,
		ExcludedLabels: req.ExcludedLabels,
		IncludedLabels: req.IncludedLabels,
		AlwaysExclude:  req.AlwaysExclude,
		BuildFiltered:  req.BuildFilteredTargets,
	}
	outcomes := forEachTarget(ctx, c, targets, spec.Build.Concurrency, emit,
		func(ctx context.Context, target entity.ResolvedTarget) (*entity.TestOutcome, error) {
			return c.engine.RunTest(ctx, ec, target, spec)
		})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &api.TestResponse{ProjectRoot: ec.ProjectRoot}
	var engineErrors int
	for i, o := range outcomes {
		if o.err != nil {
			engineErrors++
			resp.ErrorMessages = append(resp.ErrorMessages, targetError(targets[i].Label, o.err))
			continue
		}
		switch o.value.Status {
		case entity.TestPassed:
			resp.Passed++
		case entity.TestSkipped:
			resp.Skipped++
		default:
			resp.Failed++
			msg := o.value.Message
			if msg == "" {
				msg = "test failed"
			}
			resp.ErrorMessages = append(resp.ErrorMessages, fmt.Sprintf("%s: %s", targets[i].Label, msg))
		}
	}

	switch {
	case engineErrors > 0:
		resp.ExitCode = _exitBuildFailed
	case resp.Failed > 0:
		resp.ExitCode = _exitTestsFailed
	default:
		resp.ExitCode = _exitOK
	}
	return resp, nil
}

func (c *controller) TargetsShowOutputs(ctx context.Context, ec *entity.EngineContext, req *api.TargetsShowOutputsRequest, emit dispatch.Emitter) (*api.TargetsShowOutputsResponse, error) {
	if err := validateBuildOptions(req.BuildOpts, api.MaterializationsDefault); err != nil {
		return nil, err
	}
	targets, err := c.engine.Resolve(ctx, ec, req.TargetPatterns)
	if err != nil {
		return nil, err
	}

	concurrency := mapper.BuildOptionsToSpec(nil, req.BuildOpts).Concurrency
	outcomes := forEachTarget(ctx, c, targets, concurrency, emit,
		func(ctx context.Context, target entity.ResolvedTarget) ([]string, error) {
			return c.engine.DefaultOutputs(ctx, ec, target)
		})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &api.TargetsShowOutputsResponse{}
	for i, o := range outcomes {
		if o.err != nil {
			resp.ErrorMessages = append(resp.ErrorMessages, targetError(targets[i].Label, o.err))
			continue
		}
		resp.TargetsWithOutputs = append(resp.TargetsWithOutputs, &api.TargetWithOutputs{
			Target:  targets[i].Label,
			Outputs: o.value,
		})
	}
	return resp, nil
}

func (c *controller) Materialize(ctx context.Context, ec *entity.EngineContext, req *api.MaterializeRequest, _ dispatch.Emitter) (*api.MaterializeResponse, error) {
	resp := &api.MaterializeResponse{}
	if len(req.Paths) == 0 {
		return resp, nil
	}
	written, err := c.engine.Materialize(ctx, ec, req.Paths)
	if err != nil {
		return nil, err
	}
	resp.Materialized = written
	return resp, nil
}
