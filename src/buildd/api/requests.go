package api

import "time"

// KillRequest asks the daemon to shut down within Timeout. A zero timeout uses the default.
type KillRequest struct {
	Context *ClientContext `cbor:"1,keyasint,omitempty"`
	Reason  string         `cbor:"2,keyasint,omitempty"`
	Timeout time.Duration  `cbor:"3,keyasint,omitempty"`
}

// StatusRequest asks for process identity and, optionally, a resource snapshot.
type StatusRequest struct {
	Context  *ClientContext `cbor:"1,keyasint,omitempty"`
	Snapshot bool           `cbor:"2,keyasint,omitempty"`
}

// PingRequest is answered after Delay.
type PingRequest struct {
	Context *ClientContext `cbor:"1,keyasint,omitempty"`
	Delay   time.Duration  `cbor:"2,keyasint,omitempty"`
}

// FlushDepFilesRequest drops the engine's cached dep files.
type FlushDepFilesRequest struct {
	Context     *ClientContext `cbor:"1,keyasint,omitempty"`
	RetainLocal bool           `cbor:"2,keyasint,omitempty"`
}

// UnstableCrashRequest panics the daemon. Test use only.
type UnstableCrashRequest struct {
	Context *ClientContext `cbor:"1,keyasint,omitempty"`
}

// SegfaultRequest faults the daemon with SIGSEGV. Test use only.
type SegfaultRequest struct {
	Context *ClientContext `cbor:"1,keyasint,omitempty"`
}

// HeapDumpRequest writes a heap profile to Path.
type HeapDumpRequest struct {
	Context *ClientContext `cbor:"1,keyasint,omitempty"`
	Path    string         `cbor:"2,keyasint,omitempty"`
}

// AllocatorStatsRequest reports allocator statistics inline, and also to Path when set.
type AllocatorStatsRequest struct {
	Context *ClientContext `cbor:"1,keyasint,omitempty"`
	Options string         `cbor:"2,keyasint,omitempty"`
	Path    string         `cbor:"3,keyasint,omitempty"`
}

// DiceDumpRequest writes the engine's computation graph to Path.
type DiceDumpRequest struct {
	Context  *ClientContext `cbor:"1,keyasint,omitempty"`
	Path     string         `cbor:"2,keyasint,omitempty"`
	Format   DumpFormat     `cbor:"3,keyasint,omitempty"`
	Compress bool           `cbor:"4,keyasint,omitempty"`
}

// BuildRequest builds the targets matched by TargetPatterns.
type BuildRequest struct {
	Context                       *ClientContext      `cbor:"1,keyasint,omitempty"`
	TargetPatterns                []string            `cbor:"2,keyasint,omitempty"`
	BuildProviders                *BuildProviders     `cbor:"3,keyasint,omitempty"`
	ResponseOptions               *ResponseOptions    `cbor:"4,keyasint,omitempty"`
	BuildOpts                     *CommonBuildOptions `cbor:"5,keyasint,omitempty"`
	FinalArtifactMaterializations Materializations    `cbor:"6,keyasint,omitempty"`
	// 7 reserved
	TargetUniverse []string `cbor:"8,keyasint,omitempty"`
}

// BxlRequest runs one bxl script.
type BxlRequest struct {
	Context                       *ClientContext      `cbor:"1,keyasint,omitempty"`
	BxlLabel                      string              `cbor:"2,keyasint,omitempty"`
	BxlArgs                       []string            `cbor:"3,keyasint,omitempty"`
	BuildOpts                     *CommonBuildOptions `cbor:"4,keyasint,omitempty"`
	FinalArtifactMaterializations Materializations    `cbor:"5,keyasint,omitempty"`
}

// InstallRequest builds and installs the matched targets.
type InstallRequest struct {
	Context          *ClientContext      `cbor:"1,keyasint,omitempty"`
	TargetPatterns   []string            `cbor:"2,keyasint,omitempty"`
	BuildOpts        *CommonBuildOptions `cbor:"3,keyasint,omitempty"`
	InstallerRunArgs []string            `cbor:"4,keyasint,omitempty"`
	InstallerDebug   bool                `cbor:"5,keyasint,omitempty"`
}

// TestRequest builds and runs the tests matched by TargetPatterns.
type TestRequest struct {
	Context          *ClientContext      `cbor:"1,keyasint,omitempty"`
	TargetPatterns   []string            `cbor:"2,keyasint,omitempty"`
	TestExecutorArgs []string            `cbor:"3,keyasint,omitempty"`
	ExcludedLabels   []string            `cbor:"4,keyasint,omitempty"`
	IncludedLabels   []string            `cbor:"5,keyasint,omitempty"`
	BuildOpts        *CommonBuildOptions `cbor:"6,keyasint,omitempty"`
	AlwaysExclude    bool                `cbor:"7,keyasint,omitempty"`
	// 8 and 9 reserved
	BuildFilteredTargets bool `cbor:"10,keyasint,omitempty"`
}

// TargetsRequest lists the matched targets and their attributes.
type TargetsRequest struct {
	Context          *ClientContext `cbor:"1,keyasint,omitempty"`
	TargetPatterns   []string       `cbor:"2,keyasint,omitempty"`
	OutputAttributes []string       `cbor:"3,keyasint,omitempty"`
	Format           TargetsFormat  `cbor:"4,keyasint,omitempty"`
	KeepGoing        bool           `cbor:"5,keyasint,omitempty"`
}

// TargetsShowOutputsRequest lists the default outputs of the matched targets without building them.
type TargetsShowOutputsRequest struct {
	Context        *ClientContext      `cbor:"1,keyasint,omitempty"`
	TargetPatterns []string            `cbor:"2,keyasint,omitempty"`
	BuildOpts      *CommonBuildOptions `cbor:"3,keyasint,omitempty"`
}

// AqueryRequest evaluates an action-graph query.
type AqueryRequest struct {
	Context          *ClientContext    `cbor:"1,keyasint,omitempty"`
	Query            string            `cbor:"2,keyasint,omitempty"`
	QueryArgs        []string          `cbor:"3,keyasint,omitempty"`
	OutputAttributes []string          `cbor:"4,keyasint,omitempty"`
	OutputFormat     QueryOutputFormat `cbor:"5,keyasint,omitempty"`
	// 6 and 7 reserved
}

// CqueryRequest evaluates a configured-graph query.
type CqueryRequest struct {
	Context          *ClientContext    `cbor:"1,keyasint,omitempty"`
	Query            string            `cbor:"2,keyasint,omitempty"`
	QueryArgs        []string          `cbor:"3,keyasint,omitempty"`
	OutputAttributes []string          `cbor:"4,keyasint,omitempty"`
	OutputFormat     QueryOutputFormat `cbor:"5,keyasint,omitempty"`
	TargetUniverse   []string          `cbor:"6,keyasint,omitempty"`
	ShowProviders    bool              `cbor:"7,keyasint,omitempty"`
	// CorrectOwner selects owner() resolution against the target universe instead of the
	// target platform; both behaviours are supported.
	CorrectOwner bool `cbor:"8,keyasint,omitempty"`
}

// UqueryRequest evaluates an unconfigured-graph query.
type UqueryRequest struct {
	Context          *ClientContext    `cbor:"1,keyasint,omitempty"`
	Query            string            `cbor:"2,keyasint,omitempty"`
	QueryArgs        []string          `cbor:"3,keyasint,omitempty"`
	OutputAttributes []string          `cbor:"4,keyasint,omitempty"`
	OutputFormat     QueryOutputFormat `cbor:"5,keyasint,omitempty"`
}

// AuditRequest runs one audit subcommand.
type AuditRequest struct {
	Context    *ClientContext `cbor:"1,keyasint,omitempty"`
	Subcommand string         `cbor:"2,keyasint,omitempty"`
	Args       []string       `cbor:"3,keyasint,omitempty"`
}

// UnstableDocsRequest renders documentation for the given symbol patterns.
type UnstableDocsRequest struct {
	Context     *ClientContext `cbor:"1,keyasint,omitempty"`
	Symbols     []string       `cbor:"2,keyasint,omitempty"`
	RetrieveAll bool           `cbor:"3,keyasint,omitempty"`
}

// MaterializeRequest writes already built artifacts to disk.
type MaterializeRequest struct {
	Context *ClientContext `cbor:"1,keyasint,omitempty"`
	Paths   []string       `cbor:"2,keyasint,omitempty"`
}

// CleanStaleRequest removes artifacts not used since KeepSince.
type CleanStaleRequest struct {
	Context   *ClientContext `cbor:"1,keyasint,omitempty"`
	KeepSince time.Time      `cbor:"2,keyasint,omitempty"`
	DryRun    bool           `cbor:"3,keyasint,omitempty"`
}

// ProfileRequest profiles evaluation of the matched targets and writes the profile to Destination.
type ProfileRequest struct {
	Context        *ClientContext `cbor:"1,keyasint,omitempty"`
	TargetPatterns []string       `cbor:"2,keyasint,omitempty"`
	Destination    string         `cbor:"3,keyasint,omitempty"`
	Kind           ProfileKind    `cbor:"4,keyasint,omitempty"`
	Recursive      bool           `cbor:"5,keyasint,omitempty"`
}

// AllocativeRequest writes a memory attribution report into OutputPath, which must be absolute.
type AllocativeRequest struct {
	Context    *ClientContext `cbor:"1,keyasint,omitempty"`
	OutputPath string         `cbor:"2,keyasint,omitempty"`
}

// LspRequest is one JSON-RPC message from the editor, carried inside a StreamingRequest.
type LspRequest struct {
	LspJSON string `cbor:"1,keyasint,omitempty"`
}

func (r *KillRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *StatusRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *PingRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *FlushDepFilesRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *UnstableCrashRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *SegfaultRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *HeapDumpRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *AllocatorStatsRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *DiceDumpRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *BuildRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *BxlRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *InstallRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *TestRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *TargetsRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *TargetsShowOutputsRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *AqueryRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *CqueryRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *UqueryRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *AuditRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *UnstableDocsRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *MaterializeRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *CleanStaleRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *ProfileRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

func (r *AllocativeRequest) GetContext() *ClientContext {
	if r == nil {
		return nil
	}
	return r.Context
}

// An LspRequest travels after the context frame and carries none itself.
func (r *LspRequest) GetContext() *ClientContext { return nil }

func (*LspRequest) isStreamingFrame() {}
