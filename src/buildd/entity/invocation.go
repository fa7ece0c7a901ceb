// Package entity contains the domain types of the buildd daemon.
package entity

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/uber/buildd/src/buildd/api"
	"go.uber.org/zap/zapcore"
)

type keyType string

// InvocationContextKey identifies the running invocation in a context.
const InvocationContextKey keyType = "Invocation"

// Invocation is one admitted command.
type Invocation struct {
	ID        uuid.UUID          `json:"id" zap:"id"`
	Kind      api.CommandKind    `json:"kind" zap:"kind"`
	TraceID   string             `json:"traceId" zap:"traceId"`
	Context   *api.ClientContext `json:"-" zap:"-"`
	StartTime time.Time          `json:"startTime" zap:"startTime"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (i *Invocation) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("invocation", i.ID.String())
	enc.AddString("command", i.Kind.String())
	enc.AddString("trace", i.TraceID)
	return nil
}

// WithInvocation returns a context carrying inv.
func WithInvocation(ctx context.Context, inv *Invocation) context.Context {
	return context.WithValue(ctx, InvocationContextKey, inv)
}

// InvocationFromContext returns the invocation carried by ctx, if any.
func InvocationFromContext(ctx context.Context) (*Invocation, bool) {
	inv, ok := ctx.Value(InvocationContextKey).(*Invocation)
	return inv, ok && inv != nil
}
