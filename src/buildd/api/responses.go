package api

import "time"

// CommandError is the error variant of a CommandResult.
type CommandError struct {
	Messages []string `cbor:"1,keyasint,omitempty"`
}

func (e *CommandError) Error() string {
	switch len(e.Messages) {
	case 0:
		return "command failed"
	case 1:
		return e.Messages[0]
	}
	msg := e.Messages[0]
	for _, m := range e.Messages[1:] {
		msg += "; " + m
	}
	return msg
}

// DaemonProcessInfo identifies a running daemon.
type DaemonProcessInfo struct {
	Pid        int32  `cbor:"1,keyasint,omitempty"`
	Endpoint   string `cbor:"2,keyasint,omitempty"`
	Version    string `cbor:"3,keyasint,omitempty"`
	AuthToken  string `cbor:"4,keyasint,omitempty"`
	InstanceID string `cbor:"5,keyasint,omitempty"`
}

// StatusResponse reports identity and, when requested, resource usage.
// The byte counters are nil when the allocator cannot report them.
type StatusResponse struct {
	ProcessInfo       *DaemonProcessInfo `cbor:"1,keyasint,omitempty"`
	StartTime         time.Time          `cbor:"2,keyasint,omitempty"`
	Uptime            time.Duration      `cbor:"3,keyasint,omitempty"`
	ActiveInvocations uint32             `cbor:"4,keyasint,omitempty"`
	BytesAllocated    *uint64            `cbor:"5,keyasint,omitempty"`
	BytesResident     *uint64            `cbor:"6,keyasint,omitempty"`
	BytesRetained     *uint64            `cbor:"7,keyasint,omitempty"`
	Snapshot          *Snapshot          `cbor:"8,keyasint,omitempty"`
	// 9 and 10 reserved
}

// Snapshot is a point-in-time view of process counters.
type Snapshot struct {
	Goroutines      uint64        `cbor:"1,keyasint,omitempty"`
	NumGC           uint64        `cbor:"2,keyasint,omitempty"`
	HeapObjects     uint64        `cbor:"3,keyasint,omitempty"`
	UserCPU         time.Duration `cbor:"4,keyasint,omitempty"`
	SystemCPU       time.Duration `cbor:"5,keyasint,omitempty"`
	MaxRSSBytes     *uint64       `cbor:"6,keyasint,omitempty"`
	EventLogBytes   uint64        `cbor:"7,keyasint,omitempty"`
	ConfigStale     bool          `cbor:"8,keyasint,omitempty"`
	CommandsServed  uint64        `cbor:"9,keyasint,omitempty"`
	AcceptsCommands bool          `cbor:"10,keyasint,omitempty"`
}

type KillResponse struct{}

type PingResponse struct{}

type FlushDepFilesResponse struct{}

// GenericResponse carries no payload.
type GenericResponse struct{}

// HeapDumpResponse reports where the heap profile was written.
type HeapDumpResponse struct {
	Path  string `cbor:"1,keyasint,omitempty"`
	Bytes uint64 `cbor:"2,keyasint,omitempty"`
}

// AllocatorStatsResponse carries the allocator report.
type AllocatorStatsResponse struct {
	Response string `cbor:"1,keyasint,omitempty"`
	Path     string `cbor:"2,keyasint,omitempty"`
}

// DiceDumpResponse reports where the graph dump was written and its blake3 digest.
type DiceDumpResponse struct {
	Path       string `cbor:"1,keyasint,omitempty"`
	Bytes      uint64 `cbor:"2,keyasint,omitempty"`
	Digest     string `cbor:"3,keyasint,omitempty"`
	Compressed bool   `cbor:"4,keyasint,omitempty"`
}

// BuildResponse lists built targets. Per-target failures are in ErrorMessages.
type BuildResponse struct {
	BuildTargets  []*BuildTarget `cbor:"1,keyasint,omitempty"`
	ErrorMessages []string       `cbor:"2,keyasint,omitempty"`
	ProjectRoot   string         `cbor:"3,keyasint,omitempty"`
}

type BxlResponse struct {
	ProjectRoot   string         `cbor:"1,keyasint,omitempty"`
	ErrorMessages []string       `cbor:"2,keyasint,omitempty"`
	Outputs       []*BuildOutput `cbor:"3,keyasint,omitempty"`
}

type InstallResponse struct {
	Installed     []string `cbor:"1,keyasint,omitempty"`
	ErrorMessages []string `cbor:"2,keyasint,omitempty"`
}

type TestResponse struct {
	ExitCode      int32    `cbor:"1,keyasint,omitempty"`
	ErrorMessages []string `cbor:"2,keyasint,omitempty"`
	ProjectRoot   string   `cbor:"3,keyasint,omitempty"`
	Passed        uint64   `cbor:"4,keyasint,omitempty"`
	Failed        uint64   `cbor:"5,keyasint,omitempty"`
	Skipped       uint64   `cbor:"6,keyasint,omitempty"`
}

type TargetsResponse struct {
	Output        string   `cbor:"1,keyasint,omitempty"`
	ErrorCount    uint64   `cbor:"2,keyasint,omitempty"`
	ErrorMessages []string `cbor:"3,keyasint,omitempty"`
}

// TargetWithOutputs pairs a target with its default output paths.
type TargetWithOutputs struct {
	Target  string   `cbor:"1,keyasint,omitempty"`
	Outputs []string `cbor:"2,keyasint,omitempty"`
}

type TargetsShowOutputsResponse struct {
	TargetsWithOutputs []*TargetWithOutputs `cbor:"1,keyasint,omitempty"`
	ErrorMessages      []string             `cbor:"2,keyasint,omitempty"`
}

type AqueryResponse struct {
	Output        string   `cbor:"1,keyasint,omitempty"`
	ErrorMessages []string `cbor:"2,keyasint,omitempty"`
	// 3 and 4 reserved
}

type CqueryResponse struct {
	Output        string   `cbor:"1,keyasint,omitempty"`
	ErrorMessages []string `cbor:"2,keyasint,omitempty"`
}

type UqueryResponse struct {
	Output        string   `cbor:"1,keyasint,omitempty"`
	ErrorMessages []string `cbor:"2,keyasint,omitempty"`
}

type AuditResponse struct {
	Output string `cbor:"1,keyasint,omitempty"`
}

type UnstableDocsResponse struct {
	DocsJSON string `cbor:"1,keyasint,omitempty"`
}

type MaterializeResponse struct {
	Materialized  []string `cbor:"1,keyasint,omitempty"`
	ErrorMessages []string `cbor:"2,keyasint,omitempty"`
}

type CleanStaleResponse struct {
	Removed    []string `cbor:"1,keyasint,omitempty"`
	BytesFreed uint64   `cbor:"2,keyasint,omitempty"`
	DryRun     bool     `cbor:"3,keyasint,omitempty"`
}

type ProfileResponse struct {
	Destination string        `cbor:"1,keyasint,omitempty"`
	Elapsed     time.Duration `cbor:"2,keyasint,omitempty"`
	Bytes       uint64        `cbor:"3,keyasint,omitempty"`
}

type AllocativeResponse struct {
	OutputPath string   `cbor:"1,keyasint,omitempty"`
	Files      []string `cbor:"2,keyasint,omitempty"`
}

// LspResponse ends an LSP stream.
type LspResponse struct{}
