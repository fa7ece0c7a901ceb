package daemon

import (
	"path/filepath"

	"github.com/gofrs/uuid"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/gateway/configloader"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"google.golang.org/grpc/codes"
)

// admit validates a command and registers it as active. Every rejection is a protocol error.
// The returned release unregisters the invocation and must be called once it finished.
func (h *handler) admit(kind api.CommandKind, req api.Request, cc *api.ClientContext) (*entity.Invocation, func(), error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, nil, errors.Protocolf(codes.Internal, "generating invocation id: %v", err)
	}
	inv := &entity.Invocation{
		ID:        id,
		Kind:      kind,
		Context:   cc,
		StartTime: h.clock.Now(),
	}

	if cc != nil {
		if err := h.validateContext(cc); err != nil {
			return nil, nil, err
		}
	}
	if err := enumsInRange(req); err != nil {
		return nil, nil, err
	}
	if inv.TraceID, err = resolveTraceID(cc); err != nil {
		return nil, nil, err
	}

	// Kill is admitted while draining.
	if kind != api.KindKill && !h.daemon.Accepting() {
		return nil, nil, errors.ErrShuttingDown
	}

	release, err := h.invocations.Register(inv)
	if err != nil {
		return nil, nil, errors.Protocolf(codes.Internal, "registering invocation: %v", err)
	}
	// Shutdown may have begun while registering.
	if kind != api.KindKill && !h.daemon.Accepting() {
		release()
		return nil, nil, errors.ErrShuttingDown
	}
	h.daemon.RefreshIdleTimer()
	return inv, func() {
		release()
		h.daemon.RefreshIdleTimer()
	}, nil
}

func (h *handler) validateContext(cc *api.ClientContext) error {
	if !filepath.IsAbs(cc.WorkingDir) {
		return errors.Protocolf(codes.InvalidArgument, "working directory must be absolute, got %q", cc.WorkingDir)
	}
	for i, o := range cc.ConfigOverrides {
		if o == nil {
			return errors.Protocolf(codes.InvalidArgument, "config override %d is empty", i)
		}
		switch o.Kind {
		case api.ConfigOverrideValue:
			if _, _, _, err := configloader.ParseValueOverride(o.Payload); err != nil {
				return errors.Protocolf(codes.InvalidArgument, "config override %d: %v", i, err)
			}
		case api.ConfigOverrideFile:
			if o.Payload == "" {
				return errors.Protocolf(codes.InvalidArgument, "config override %d names no file", i)
			}
		default:
			return errors.Protocolf(codes.InvalidArgument, "config override %d has unknown kind %s", i, o.Kind)
		}
	}
	if !cc.HostPlatform.Valid() {
		return errors.Protocolf(codes.InvalidArgument, "unknown host platform %s", cc.HostPlatform)
	}
	if !cc.HostArch.Valid() {
		return errors.Protocolf(codes.InvalidArgument, "unknown host architecture %s", cc.HostArch)
	}
	if cc.DaemonUUID != "" && cc.DaemonUUID != h.identity.InstanceID {
		return errors.Protocolf(codes.FailedPrecondition, "client expected daemon %s, this is %s", cc.DaemonUUID, h.identity.InstanceID)
	}
	return nil
}

// resolveTraceID returns the client's trace id, or a fresh one when the client sent none.
func resolveTraceID(cc *api.ClientContext) (string, error) {
	if cc == nil || cc.TraceID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return "", errors.Protocolf(codes.Internal, "generating trace id: %v", err)
		}
		return id.String(), nil
	}
	id, err := uuid.FromString(cc.TraceID)
	if err != nil {
		return "", errors.Protocolf(codes.InvalidArgument, "trace id %q is not a UUID", cc.TraceID)
	}
	return id.String(), nil
}

type validEnum interface {
	Valid() bool
	String() string
}

// enumsInRange checks the enum fields that no controller validates itself.
func enumsInRange(req api.Request) error {
	var (
		name  string
		value validEnum
	)
	switch r := req.(type) {
	case *api.DiceDumpRequest:
		name, value = "dump format", r.Format
	case *api.ProfileRequest:
		name, value = "profile kind", r.Kind
	case *api.TargetsRequest:
		name, value = "targets format", r.Format
	case *api.AqueryRequest:
		name, value = "output format", r.OutputFormat
	case *api.CqueryRequest:
		name, value = "output format", r.OutputFormat
	case *api.UqueryRequest:
		name, value = "output format", r.OutputFormat
	default:
		return nil
	}
	if !value.Valid() {
		return errors.Protocolf(codes.InvalidArgument, "unknown %s %s", name, value)
	}
	return nil
}
