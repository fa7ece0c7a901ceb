package entity

import (
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
)

// DaemonIdentity describes the running daemon process. It is created once at start; only the
// endpoint is filled in later, when the listener is bound.
type DaemonIdentity struct {
	Pid        int32
	Version    string
	AuthToken  string
	InstanceID string
	StartTime  time.Time

	endpoint atomic.Pointer[string]
}

// NewDaemonIdentity creates the identity of this process with a fresh instance id and token.
func NewDaemonIdentity(pid int32, version string, start time.Time) (*DaemonIdentity, error) {
	instance, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	token, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &DaemonIdentity{
		Pid:        pid,
		Version:    version,
		AuthToken:  token.String(),
		InstanceID: instance.String(),
		StartTime:  start,
	}, nil
}

// Endpoint returns the bound listener address, or "" before the listener started.
func (d *DaemonIdentity) Endpoint() string {
	if p := d.endpoint.Load(); p != nil {
		return *p
	}
	return ""
}

// SetEndpoint records the bound listener address.
func (d *DaemonIdentity) SetEndpoint(endpoint string) {
	d.endpoint.Store(&endpoint)
}
