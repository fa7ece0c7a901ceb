// Package api defines the daemon's wire contract: the session context, the command catalog,
// the result and progress sum types, and the gRPC service description that carries them.
//
// Integer CBOR keys are part of the compatibility surface. A key, once shipped, keeps its
// meaning forever; removed fields leave their key in reservedKeys.
package api

// ClientContext is the session envelope every command carries. It is never mutated by the daemon.
type ClientContext struct {
	WorkingDir         string               `cbor:"1,keyasint,omitempty"`
	ConfigOverrides    []*ConfigOverride    `cbor:"2,keyasint,omitempty"`
	TargetPlatform     string               `cbor:"3,keyasint,omitempty"`
	HostPlatform       HostPlatformOverride `cbor:"4,keyasint,omitempty"`
	HostArch           HostArchOverride     `cbor:"5,keyasint,omitempty"`
	Oncall             string               `cbor:"6,keyasint,omitempty"`
	DisableStrictTypes bool                 `cbor:"7,keyasint,omitempty"`
	TraceID            string               `cbor:"8,keyasint,omitempty"`
	ReuseCurrentConfig bool                 `cbor:"9,keyasint,omitempty"`
	DaemonUUID         string               `cbor:"10,keyasint,omitempty"`
	SanitizedArgv      []string             `cbor:"11,keyasint,omitempty"`
}

// ConfigOverride is one entry of the ordered override list.
type ConfigOverride struct {
	Payload string             `cbor:"1,keyasint,omitempty"`
	Kind    ConfigOverrideKind `cbor:"2,keyasint,omitempty"`
}

// Request is implemented by every command request.
type Request interface {
	GetContext() *ClientContext
}

func (*ClientContext) isStreamingFrame() {}
