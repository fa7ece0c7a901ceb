// Package invocation tracks the commands the daemon is currently running.
package invocation

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/mapper"
	"github.com/uber/buildd/src/buildd/model"
	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Repository is the registry of active invocations.
type Repository interface {
	// Register records inv as active. The returned release removes it and is safe to call twice.
	Register(inv *entity.Invocation) (release func(), err error)
	// Active returns the number of running invocations.
	Active() int
	// List returns the running invocations, oldest first.
	List() []*entity.Invocation
	// Served returns the number of invocations ever registered.
	Served() uint64
	// WaitIdle blocks until no invocation is running, or ctx is done.
	WaitIdle(ctx context.Context) error
}

type repository struct {
	mu       sync.Mutex
	memstore map[uuid.UUID]*model.Invocation
	// active and served mirror the store for lock-free readers.
	active atomic.Int64
	served atomic.Uint64
	// idle is closed whenever the store becomes empty, and replaced when it fills again.
	idle  chan struct{}
	stats tally.Scope
}

// New returns an in-memory invocation repository.
func New(stats tally.Scope) Repository {
	idle := make(chan struct{})
	close(idle)
	return &repository{
		memstore: make(map[uuid.UUID]*model.Invocation),
		idle:     idle,
		stats:    stats,
	}
}

func (r *repository) Register(inv *entity.Invocation) (func(), error) {
	if inv == nil {
		return nil, errors.New("can't register nil invocation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.memstore[inv.ID]; ok {
		return nil, errors.New("invocation " + inv.ID.String() + " is already registered")
	}
	if len(r.memstore) == 0 {
		r.idle = make(chan struct{})
	}
	r.memstore[inv.ID] = mapper.InvocationToModel(inv)
	r.active.Store(int64(len(r.memstore)))
	r.served.Add(1)
	r.stats.Gauge("active_invocations").Update(float64(len(r.memstore)))

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(inv.ID) })
	}, nil
}

func (r *repository) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memstore, id)
	r.active.Store(int64(len(r.memstore)))
	r.stats.Gauge("active_invocations").Update(float64(len(r.memstore)))
	if len(r.memstore) == 0 {
		close(r.idle)
	}
}

func (r *repository) Active() int {
	return int(r.active.Load())
}

func (r *repository) List() []*entity.Invocation {
	r.mu.Lock()
	found := make([]*entity.Invocation, 0, len(r.memstore))
	for _, m := range r.memstore {
		found = append(found, mapper.ModelToInvocation(m))
	}
	r.mu.Unlock()

	sort.Slice(found, func(i, j int) bool {
		return found[i].StartTime.Before(found[j].StartTime)
	})
	return found
}

func (r *repository) Served() uint64 {
	return r.served.Load()
}

func (r *repository) WaitIdle(ctx context.Context) error {
	for {
		r.mu.Lock()
		idle := r.idle
		empty := len(r.memstore) == 0
		r.mu.Unlock()

		if empty {
			return nil
		}
		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
