package engine

import (
	"context"
	"encoding/json"
	stderr "errors"
	"io"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/internal/executor/executormock"
	"go.uber.org/config"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newConfigProvider(t *testing.T, yaml string) config.Provider {
	prov, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	return prov
}

// reply makes the mocked executor answer method with result, checking the request on stdin.
func reply(t *testing.T, method string, check func(req map[string]json.RawMessage), result any) func(context.Context, *exec.Cmd) ([]byte, string, int, error) {
	return func(_ context.Context, cmd *exec.Cmd) ([]byte, string, int, error) {
		assert.Equal(t, []string{"/opt/engine", method}, cmd.Args)
		raw, err := io.ReadAll(cmd.Stdin)
		require.NoError(t, err)
		var req map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &req))
		if check != nil {
			check(req)
		}
		res, err := json.Marshal(result)
		require.NoError(t, err)
		out, err := json.Marshal(response{Result: res})
		require.NoError(t, err)
		return out, "", 0, nil
	}
}

func newGateway(t *testing.T, ctrl *gomock.Controller) (Engine, *executormock.MockExecutor) {
	ex := executormock.NewMockExecutor(ctrl)
	e, err := New(Params{
		Config:   newConfigProvider(t, "engine:\n  binary: /opt/engine\n"),
		Logger:   zap.NewNop().Sugar(),
		Executor: ex,
	})
	require.NoError(t, err)
	return e, ex
}

func TestNew(t *testing.T) {
	t.Run("format problem", func(t *testing.T) {
		_, err := New(Params{
			Config: newConfigProvider(t, "engine:\n  binary:\n    path: x\n"),
			Logger: zap.NewNop().Sugar(),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting config field")
	})

	t.Run("no engine configured", func(t *testing.T) {
		e, err := New(Params{
			Config: newConfigProvider(t, "other: 1\n"),
			Logger: zap.NewNop().Sugar(),
		})
		require.NoError(t, err)

		_, err = e.Resolve(context.Background(), &entity.EngineContext{}, []string{"//..."})
		var unavailable *errors.EngineUnavailableError
		require.True(t, stderr.As(err, &unavailable))
		assert.Contains(t, err.Error(), "engine.binary")
	})
}

func TestResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	e, ex := newGateway(t, ctrl)
	ec := &entity.EngineContext{ProjectRoot: "/repo", TraceID: "trace"}
	want := []entity.ResolvedTarget{{Label: "//a:b", Configuration: "cfg"}}

	ex.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, "resolve", func(req map[string]json.RawMessage) {
		assert.JSONEq(t, `{"patterns":["//a/..."]}`, string(req["params"]))
		assert.Contains(t, string(req["context"]), `"traceId":"trace"`)
	}, want))

	got, err := e.Resolve(context.Background(), ec, []string{"//a/..."})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBuildTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	e, ex := newGateway(t, ctrl)
	target := entity.ResolvedTarget{Label: "//a:b"}

	ex.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, "build", nil, entity.TargetResult{
		RunArgs: []string{"run"},
		Outputs: []entity.ProviderOutput{{Path: "out/b", Provider: entity.ProviderDefaultInfo}},
	}))

	got, err := e.BuildTarget(context.Background(), &entity.EngineContext{}, target, entity.BuildSpec{DefaultInfo: "build"})
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, got.RunArgs)
	assert.Len(t, got.Outputs, 1)
}

func TestCallFailures(t *testing.T) {
	tests := []struct {
		name    string
		stdout  string
		stderr  string
		code    int
		runErr  error
		wantErr string
	}{
		{name: "non-zero exit", stderr: "  boom\n", code: 3, wantErr: "engine query exited with code 3: boom"},
		{name: "engine error", stdout: `{"error":"no such target"}`, wantErr: "no such target"},
		{name: "bad response", stdout: `not json`, wantErr: "decoding engine query response"},
		{name: "bad result", stdout: `{"result":{"x":1}}`, wantErr: "decoding engine query result"},
		{name: "cannot start", runErr: stderr.New("exec: not found"), wantErr: "build engine unavailable"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			e, ex := newGateway(t, ctrl)
			ex.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]byte(tt.stdout), tt.stderr, tt.code, tt.runErr)

			_, err := e.Query(context.Background(), &entity.EngineContext{}, entity.QuerySpec{Kind: entity.QueryConfigured, Query: "deps(//a)"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCancelledCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	e, ex := newGateway(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ex.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, "", -1, context.Canceled)

	err := e.FlushDepFiles(ctx, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDaemonWideCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	e, ex := newGateway(t, ctrl)

	ex.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, "graph-dump", func(req map[string]json.RawMessage) {
		_, hasContext := req["context"]
		assert.False(t, hasContext)
		assert.JSONEq(t, `{"format":"json"}`, string(req["params"]))
	}, "node\tedge\n"))
	dump, err := e.GraphDump(context.Background(), "json")
	require.NoError(t, err)
	assert.Equal(t, "node\tedge\n", string(dump))

	ex.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, "clean-stale", nil, entity.CleanResult{Removed: []string{"a"}, BytesFreed: 10}))
	cleaned, err := e.CleanStale(context.Background(), &entity.EngineContext{}, time.Unix(0, 0), true)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), cleaned.BytesFreed)

	ex.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(reply(t, "docs", nil, map[string]string{"a": "b"}))
	docs, err := e.Docs(context.Background(), &entity.EngineContext{}, []string{"a"}, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"b"}`, docs)
}
