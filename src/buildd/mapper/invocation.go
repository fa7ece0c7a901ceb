package mapper

import (
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/model"
)

// InvocationToModel maps an Invocation entity to its model equivalent.
func InvocationToModel(inv *entity.Invocation) *model.Invocation {
	m := &model.Invocation{
		ID:        inv.ID,
		Kind:      int(inv.Kind),
		TraceID:   inv.TraceID,
		StartTime: inv.StartTime,
	}
	if inv.Context != nil {
		m.WorkingDir = inv.Context.WorkingDir
	}
	return m
}

// ModelToInvocation maps a model Invocation to its entity equivalent. The client context is
// not retained by the repository; only its working directory survives.
func ModelToInvocation(m *model.Invocation) *entity.Invocation {
	inv := &entity.Invocation{
		ID:        m.ID,
		Kind:      api.CommandKind(m.Kind),
		TraceID:   m.TraceID,
		StartTime: m.StartTime,
	}
	if m.WorkingDir != "" {
		inv.Context = &api.ClientContext{WorkingDir: m.WorkingDir}
	}
	return inv
}
