package invocation

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newInvocation(start time.Time) *entity.Invocation {
	return &entity.Invocation{
		ID:        uuid.Must(uuid.NewV4()),
		Kind:      api.KindBuild,
		TraceID:   "trace",
		Context:   &api.ClientContext{WorkingDir: "/repo", Oncall: "dropped"},
		StartTime: start,
	}
}

func activeGauge(t *testing.T, scope tally.TestScope) float64 {
	for _, g := range scope.Snapshot().Gauges() {
		if g.Name() == "testing.active_invocations" {
			return g.Value()
		}
	}
	t.Fatal("active_invocations gauge not reported")
	return 0
}

func TestInvocationRepository(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	repository := New(testScope)
	now := time.Now()

	t.Run("should register and release", func(t *testing.T) {
		older, newer := newInvocation(now), newInvocation(now.Add(time.Second))
		releaseNewer, err := repository.Register(newer)
		require.NoError(t, err)
		releaseOlder, err := repository.Register(older)
		require.NoError(t, err)

		assert.Equal(t, 2, repository.Active())
		assert.Equal(t, float64(2), activeGauge(t, testScope))

		list := repository.List()
		require.Len(t, list, 2)
		assert.Equal(t, older.ID, list[0].ID)
		assert.Equal(t, api.KindBuild, list[0].Kind)
		assert.Equal(t, "/repo", list[0].Context.WorkingDir)
		assert.Empty(t, list[0].Context.Oncall)

		releaseOlder()
		releaseOlder()
		assert.Equal(t, 1, repository.Active())
		releaseNewer()
		assert.Equal(t, 0, repository.Active())
		assert.Equal(t, float64(0), activeGauge(t, testScope))
		assert.Equal(t, uint64(2), repository.Served())
	})

	t.Run("should reject nil and duplicates", func(t *testing.T) {
		_, err := repository.Register(nil)
		assert.Error(t, err)

		inv := newInvocation(now)
		release, err := repository.Register(inv)
		require.NoError(t, err)
		defer release()

		_, err = repository.Register(inv)
		assert.Error(t, err)
	})
}

func TestWaitIdle(t *testing.T) {
	repository := New(tally.NoopScope)

	t.Run("returns immediately when idle", func(t *testing.T) {
		assert.NoError(t, repository.WaitIdle(context.Background()))
	})

	t.Run("returns once the last invocation ends", func(t *testing.T) {
		release1, err := repository.Register(newInvocation(time.Now()))
		require.NoError(t, err)
		release2, err := repository.Register(newInvocation(time.Now()))
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() { done <- repository.WaitIdle(context.Background()) }()

		release1()
		select {
		case <-done:
			t.Fatal("WaitIdle returned while an invocation was still active")
		case <-time.After(20 * time.Millisecond):
		}

		release2()
		assert.NoError(t, <-done)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		release, err := repository.Register(newInvocation(time.Now()))
		require.NoError(t, err)
		defer release()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, repository.WaitIdle(ctx), context.DeadlineExceeded)
	})
}
