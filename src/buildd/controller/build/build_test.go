package build

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/gateway/engine/enginemock"
	"github.com/uber/buildd/src/buildd/internal/dispatch/dispatchmock"
	buildderrors "github.com/uber/buildd/src/buildd/internal/errors"
	"go.uber.org/config"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

var _ec = &entity.EngineContext{WorkingDir: "/repo", ProjectRoot: "/repo", TraceID: "trace"}

func newController(t *testing.T, ctrl *gomock.Controller, yaml string) (Controller, *enginemock.MockEngine, *dispatchmock.MockEmitter) {
	cfg, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	eng := enginemock.NewMockEngine(ctrl)
	emit := dispatchmock.NewMockEmitter(ctrl)
	c, err := New(Params{Config: cfg, Engine: eng, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	return c, eng, emit
}

func targets(labels ...string) []entity.ResolvedTarget {
	out := make([]entity.ResolvedTarget, len(labels))
	for i, l := range labels {
		out[i] = entity.ResolvedTarget{Label: l, Configuration: "cfg"}
	}
	return out
}

func output(target entity.ResolvedTarget) *entity.TargetResult {
	return &entity.TargetResult{
		Target:  target,
		Outputs: []entity.ProviderOutput{{Path: "out/" + strings.TrimPrefix(target.Label, "//"), Provider: entity.ProviderDefaultInfo}},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    bool
		wantErr bool
	}{
		{name: "default", yaml: "{}", want: true},
		{name: "disabled", yaml: "build:\n  materializeFinalArtifacts: false\n", want: false},
		{name: "malformed", yaml: "build:\n  materializeFinalArtifacts: [1]\n", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewYAML(config.Source(strings.NewReader(tt.yaml)))
			require.NoError(t, err)
			c, err := New(Params{Config: cfg, Logger: zap.NewNop().Sugar()})
			if tt.wantErr {
				assert.ErrorContains(t, err, _configKeyMaterialize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.(*controller).materializeByDefault)
		})
	}
}

func TestBuildAllSkip(t *testing.T) {
	tests := []struct {
		name      string
		providers *api.BuildProviders
	}{
		{name: "nil providers", providers: nil},
		{name: "zero providers", providers: &api.BuildProviders{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// No engine expectations: any call fails the test.
			c, _, emit := newController(t, ctrl, "{}")

			resp, err := c.Build(context.Background(), _ec, &api.BuildRequest{
				TargetPatterns:                []string{"//..."},
				BuildProviders:                tt.providers,
				FinalArtifactMaterializations: api.MaterializationsMaterialize,
			}, emit)
			require.NoError(t, err)
			assert.Equal(t, &api.BuildResponse{ProjectRoot: "/repo"}, resp)
		})
	}
}

func TestBuildPartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, eng, emit := newController(t, ctrl, "{}")
	resolved := targets("//a:a", "//b:b", "//c:c")

	eng.EXPECT().Resolve(gomock.Any(), _ec, []string{"//..."}).Return(resolved, nil)
	eng.EXPECT().BuildTarget(gomock.Any(), _ec, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *entity.EngineContext, target entity.ResolvedTarget, spec entity.BuildSpec) (*entity.TargetResult, error) {
			assert.Equal(t, "build", spec.DefaultInfo)
			assert.Empty(t, spec.RunInfo)
			if target.Label == "//b:b" {
				return nil, errors.New("compile error")
			}
			return output(target), nil
		}).Times(3)
	eng.EXPECT().Materialize(gomock.Any(), _ec, []string{"out/a:a", "out/c:c"}).Return([]string{"out/a:a", "out/c:c"}, nil)

	var (
		mu     sync.Mutex
		events []*api.TargetBuilt
	)
	emit.EXPECT().Emit(gomock.Any()).DoAndReturn(func(data api.EventData) error {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, data.(*api.TargetBuilt))
		return nil
	}).Times(3)

	resp, err := c.Build(context.Background(), _ec, &api.BuildRequest{
		TargetPatterns:  []string{"//..."},
		BuildProviders:  &api.BuildProviders{DefaultInfo: api.ProviderBuild},
		ResponseOptions: &api.ResponseOptions{ReturnOutputs: true},
	}, emit)
	require.NoError(t, err)

	assert.Equal(t, []string{"//b:b: compile error"}, resp.ErrorMessages)
	require.Len(t, resp.BuildTargets, 2)
	assert.Equal(t, "//a:a", resp.BuildTargets[0].Target)
	assert.Equal(t, "//c:c", resp.BuildTargets[1].Target)
	assert.Equal(t, "out/a:a", resp.BuildTargets[0].Outputs[0].Path)
	assert.True(t, resp.BuildTargets[0].Outputs[0].Providers.DefaultInfo)

	failed := 0
	for _, ev := range events {
		if !ev.Success {
			failed++
			assert.Equal(t, "//b:b", ev.Target)
			assert.Equal(t, "compile error", ev.Error)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestBuildMaterializationPolicy(t *testing.T) {
	tests := []struct {
		name            string
		yaml            string
		policy          api.Materializations
		wantMaterialize bool
	}{
		{name: "default follows config", yaml: "{}", policy: api.MaterializationsDefault, wantMaterialize: true},
		{name: "default disabled by config", yaml: "build:\n  materializeFinalArtifacts: false\n", policy: api.MaterializationsDefault},
		{name: "materialize overrides config", yaml: "build:\n  materializeFinalArtifacts: false\n", policy: api.MaterializationsMaterialize, wantMaterialize: true},
		{name: "skip overrides config", yaml: "{}", policy: api.MaterializationsSkip},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c, eng, emit := newController(t, ctrl, tt.yaml)
			resolved := targets("//a:a")
			eng.EXPECT().Resolve(gomock.Any(), _ec, gomock.Any()).Return(resolved, nil)
			eng.EXPECT().BuildTarget(gomock.Any(), _ec, resolved[0], gomock.Any()).Return(output(resolved[0]), nil)
			emit.EXPECT().Emit(gomock.Any()).Return(nil)
			if tt.wantMaterialize {
				eng.EXPECT().Materialize(gomock.Any(), _ec, []string{"out/a:a"}).Return([]string{"out/a:a"}, nil)
			}

			resp, err := c.Build(context.Background(), _ec, &api.BuildRequest{
				TargetPatterns:                []string{"//a:a"},
				BuildProviders:                &api.BuildProviders{DefaultInfo: api.ProviderBuildIfAvailable},
				FinalArtifactMaterializations: tt.policy,
			}, emit)
			require.NoError(t, err)
			assert.Empty(t, resp.ErrorMessages)
		})
	}
}

func TestBuildMaterializeFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, eng, emit := newController(t, ctrl, "{}")
	resolved := targets("//a:a")
	eng.EXPECT().Resolve(gomock.Any(), _ec, gomock.Any()).Return(resolved, nil)
	eng.EXPECT().BuildTarget(gomock.Any(), _ec, resolved[0], gomock.Any()).Return(output(resolved[0]), nil)
	eng.EXPECT().Materialize(gomock.Any(), _ec, gomock.Any()).Return(nil, errors.New("disk full"))
	emit.EXPECT().Emit(gomock.Any()).Return(nil)

	resp, err := c.Build(context.Background(), _ec, &api.BuildRequest{
		BuildProviders: &api.BuildProviders{DefaultInfo: api.ProviderBuild},
	}, emit)
	require.NoError(t, err)
	assert.Len(t, resp.BuildTargets, 1)
	assert.Equal(t, []string{"materializing outputs: disk full"}, resp.ErrorMessages)
}

func TestBuildBoundedConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, eng, emit := newController(t, ctrl, "build:\n  materializeFinalArtifacts: false\n")
	resolved := targets("//a:1", "//a:2", "//a:3", "//a:4", "//a:5", "//a:6")

	var inFlight, peak atomic.Int32
	eng.EXPECT().Resolve(gomock.Any(), _ec, gomock.Any()).Return(resolved, nil)
	eng.EXPECT().BuildTarget(gomock.Any(), _ec, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *entity.EngineContext, target entity.ResolvedTarget, spec entity.BuildSpec) (*entity.TargetResult, error) {
			assert.Equal(t, 2, spec.Concurrency)
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return output(target), nil
		}).Times(len(resolved))
	emit.EXPECT().Emit(gomock.Any()).Return(nil).Times(len(resolved))

	resp, err := c.Build(context.Background(), _ec, &api.BuildRequest{
		BuildProviders: &api.BuildProviders{RunInfo: api.ProviderBuild},
		BuildOpts:      &api.CommonBuildOptions{Concurrency: 2},
	}, emit)
	require.NoError(t, err)
	assert.Len(t, resp.BuildTargets, len(resolved))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		req      *api.BuildRequest
		setup    func(eng *enginemock.MockEngine)
		wantCode codes.Code
		wantErr  string
	}{
		{
			name:     "unknown provider action",
			req:      &api.BuildRequest{BuildProviders: &api.BuildProviders{DefaultInfo: 7}},
			setup:    func(*enginemock.MockEngine) {},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "unknown execution strategy",
			req:      &api.BuildRequest{BuildOpts: &api.CommonBuildOptions{ExecutionStrategy: 42}},
			setup:    func(*enginemock.MockEngine) {},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "unknown materialization policy",
			req:      &api.BuildRequest{FinalArtifactMaterializations: 9},
			setup:    func(*enginemock.MockEngine) {},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "resolve failure",
			req:  &api.BuildRequest{BuildProviders: &api.BuildProviders{DefaultInfo: api.ProviderBuild}},
			setup: func(eng *enginemock.MockEngine) {
				eng.EXPECT().Resolve(gomock.Any(), _ec, gomock.Any()).Return(nil, errors.New("no such package"))
			},
			wantErr: "no such package",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c, eng, emit := newController(t, ctrl, "{}")
			tt.setup(eng)

			_, err := c.Build(context.Background(), _ec, tt.req, emit)
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			pe, ok := buildderrors.AsProtocol(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, pe.Code)
		})
	}
}

func TestBuildCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, eng, emit := newController(t, ctrl, "{}")
	ctx, cancel := context.WithCancel(context.Background())
	resolved := targets("//a:a")

	eng.EXPECT().Resolve(gomock.Any(), _ec, gomock.Any()).Return(resolved, nil)
	eng.EXPECT().BuildTarget(gomock.Any(), _ec, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *entity.EngineContext, _ entity.ResolvedTarget, _ entity.BuildSpec) (*entity.TargetResult, error) {
			cancel()
			return nil, ctx.Err()
		})
	emit.EXPECT().Emit(gomock.Any()).Return(context.Canceled)

	_, err := c.Build(ctx, _ec, &api.BuildRequest{BuildProviders: &api.BuildProviders{DefaultInfo: api.ProviderBuild}}, emit)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBxl(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, eng, emit := newController(t, ctrl, "build:\n  materializeFinalArtifacts: false\n")

	eng.EXPECT().RunBxl(gomock.Any(), _ec, "//bxl:query.bxl:main", []string{"--flag"}, gomock.Any()).
		Return(&entity.BxlResult{Outputs: []string{"out/report.json"}, Errors: []string{"warning as error"}}, nil)

	resp, err := c.Bxl(context.Background(), _ec, &api.BxlRequest{
		BxlLabel: "//bxl:query.bxl:main",
		BxlArgs:  []string{"--flag"},
	}, emit)
	require.NoError(t, err)
	assert.Equal(t, &api.BxlResponse{
		ProjectRoot:   "/repo",
		ErrorMessages: []string{"warning as error"},
		Outputs:       []*api.BuildOutput{{Path: "out/report.json", Providers: &api.OutputProviders{DefaultInfo: true}}},
	}, resp)

	_, err = c.Bxl(context.Background(), _ec, &api.BxlRequest{}, emit)
	pe, ok := buildderrors.AsProtocol(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, pe.Code)
}

func TestInstall(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, eng, emit := newController(t, ctrl, "{}")
	resolved := targets("//app:android", "//app:ios")

	eng.EXPECT().Resolve(gomock.Any(), _ec, []string{"//app:"}).Return(resolved, nil)
	eng.EXPECT().Install(gomock.Any(), _ec, resolved[0], []string{"--device", "emu"}, true).Return(nil)
	eng.EXPECT().Install(gomock.Any(), _ec, resolved[1], []string{"--device", "emu"}, true).Return(errors.New("no device"))
	emit.EXPECT().Emit(gomock.Any()).Return(nil).Times(2)

	resp, err := c.Install(context.Background(), _ec, &api.InstallRequest{
		TargetPatterns:   []string{"//app:"},
		InstallerRunArgs: []string{"--device", "emu"},
		InstallerDebug:   true,
	}, emit)
	require.NoError(t, err)
	assert.Equal(t, []string{"//app:android"}, resp.Installed)
	assert.Equal(t, []string{"//app:ios: no device"}, resp.ErrorMessages)
}

func TestTest(t *testing.T) {
	tests := []struct {
		name       string
		outcomes   map[string]*entity.TestOutcome
		errs       map[string]error
		wantExit   int32
		wantErrors []string
		wantPassed uint64
		wantFailed uint64
	}{
		{
			name: "all pass",
			outcomes: map[string]*entity.TestOutcome{
				"//t:a": {Status: entity.TestPassed},
				"//t:b": {Status: entity.TestSkipped},
			},
			wantExit:   0,
			wantPassed: 1,
		},
		{
			name: "test failure",
			outcomes: map[string]*entity.TestOutcome{
				"//t:a": {Status: entity.TestPassed},
				"//t:b": {Status: entity.TestFailed, Message: "expected 1, got 2"},
			},
			wantExit:   32,
			wantErrors: []string{"//t:b: expected 1, got 2"},
			wantPassed: 1,
			wantFailed: 1,
		},
		{
			name: "build failure wins",
			outcomes: map[string]*entity.TestOutcome{
				"//t:a": {Status: entity.TestFailed},
			},
			errs:       map[string]error{"//t:b": errors.New("compile error")},
			wantExit:   2,
			wantErrors: []string{"//t:a: test failed", "//t:b: compile error"},
			wantFailed: 1,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c, eng, emit := newController(t, ctrl, "{}")
			resolved := targets("//t:a", "//t:b")

			eng.EXPECT().Resolve(gomock.Any(), _ec, gomock.Any()).Return(resolved, nil)
			eng.EXPECT().RunTest(gomock.Any(), _ec, gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ *entity.EngineContext, target entity.ResolvedTarget, spec entity.TestSpec) (*entity.TestOutcome, error) {
					assert.Equal(t, "build", spec.Build.TestInfo)
					assert.Empty(t, spec.Build.DefaultInfo)
					assert.Equal(t, []string{"--verbose"}, spec.ExecutorArgs)
					if err := tt.errs[target.Label]; err != nil {
						return nil, err
					}
					return tt.outcomes[target.Label], nil
				}).Times(2)
			emit.EXPECT().Emit(gomock.Any()).Return(nil).Times(2)

			resp, err := c.Test(context.Background(), _ec, &api.TestRequest{
				TargetPatterns:   []string{"//t:"},
				TestExecutorArgs: []string{"--verbose"},
			}, emit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExit, resp.ExitCode)
			assert.Equal(t, tt.wantErrors, resp.ErrorMessages)
			assert.Equal(t, tt.wantPassed, resp.Passed)
			assert.Equal(t, tt.wantFailed, resp.Failed)
		})
	}
}

func TestTargetsShowOutputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, eng, emit := newController(t, ctrl, "{}")
	resolved := targets("//lib:a", "//lib:b")

	eng.EXPECT().Resolve(gomock.Any(), _ec, gomock.Any()).Return(resolved, nil)
	eng.EXPECT().DefaultOutputs(gomock.Any(), _ec, resolved[0]).Return([]string{"out/lib/a.so"}, nil)
	eng.EXPECT().DefaultOutputs(gomock.Any(), _ec, resolved[1]).Return(nil, errors.New("not analyzable"))
	emit.EXPECT().Emit(gomock.Any()).Return(nil).Times(2)

	resp, err := c.TargetsShowOutputs(context.Background(), _ec, &api.TargetsShowOutputsRequest{TargetPatterns: []string{"//lib:"}}, emit)
	require.NoError(t, err)
	assert.Equal(t, []*api.TargetWithOutputs{{Target: "//lib:a", Outputs: []string{"out/lib/a.so"}}}, resp.TargetsWithOutputs)
	assert.Equal(t, []string{"//lib:b: not analyzable"}, resp.ErrorMessages)
}

func TestMaterialize(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, eng, emit := newController(t, ctrl, "{}")

	resp, err := c.Materialize(context.Background(), _ec, &api.MaterializeRequest{}, emit)
	require.NoError(t, err)
	assert.Empty(t, resp.Materialized)

	eng.EXPECT().Materialize(gomock.Any(), _ec, []string{"out/a"}).Return([]string{"out/a"}, nil)
	resp, err = c.Materialize(context.Background(), _ec, &api.MaterializeRequest{Paths: []string{"out/a"}}, emit)
	require.NoError(t, err)
	assert.Equal(t, []string{"out/a"}, resp.Materialized)

	eng.EXPECT().Materialize(gomock.Any(), _ec, gomock.Any()).Return(nil, errors.New("cache miss"))
	_, err = c.Materialize(context.Background(), _ec, &api.MaterializeRequest{Paths: []string{"out/b"}}, emit)
	assert.EqualError(t, err, "cache miss")
}
