package api

import "fmt"

// CommandKind is the closed set of commands the daemon serves.
type CommandKind int

const (
	KindUnknown CommandKind = iota

	// Unary commands.
	KindKill
	KindStatus
	KindPing
	KindFlushDepFiles
	KindUnstableCrash
	KindSegfault
	KindHeapDump
	KindAllocatorStats
	KindDiceDump

	// Streaming commands.
	KindBuild
	KindBxl
	KindTest
	KindTargets
	KindTargetsShowOutputs
	KindAquery
	KindCquery
	KindUquery
	KindAudit
	KindUnstableDocs
	KindInstall
	KindMaterialize
	KindCleanStale
	KindProfile
	KindAllocative
	KindLsp

	kindCount
)

var _kindNames = [...]string{
	KindUnknown:            "Unknown",
	KindKill:               "Kill",
	KindStatus:             "Status",
	KindPing:               "Ping",
	KindFlushDepFiles:      "FlushDepFiles",
	KindUnstableCrash:      "Unstable_Crash",
	KindSegfault:           "Segfault",
	KindHeapDump:           "Unstable_HeapDump",
	KindAllocatorStats:     "Unstable_AllocatorStats",
	KindDiceDump:           "Unstable_DiceDump",
	KindBuild:              "Build",
	KindBxl:                "Bxl",
	KindTest:               "Test",
	KindTargets:            "Targets",
	KindTargetsShowOutputs: "TargetsShowOutputs",
	KindAquery:             "Aquery",
	KindCquery:             "Cquery",
	KindUquery:             "Uquery",
	KindAudit:              "Audit",
	KindUnstableDocs:       "Unstable_Docs",
	KindInstall:            "Install",
	KindMaterialize:        "Materialize",
	KindCleanStale:         "CleanStale",
	KindProfile:            "Profile",
	KindAllocative:         "Allocative",
	KindLsp:                "Lsp",
}

// String returns the stable RPC method name of the command.
func (k CommandKind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
	return _kindNames[k]
}

// Unary reports whether the command replies with a single result instead of a progress stream.
func (k CommandKind) Unary() bool {
	return k >= KindKill && k <= KindDiceDump
}

// Kinds returns every known command kind.
func Kinds() []CommandKind {
	kinds := make([]CommandKind, 0, kindCount-1)
	for k := KindKill; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindOf resolves the command family from the request's concrete type.
func KindOf(req Request) CommandKind {
	switch req.(type) {
	case *KillRequest:
		return KindKill
	case *StatusRequest:
		return KindStatus
	case *PingRequest:
		return KindPing
	case *FlushDepFilesRequest:
		return KindFlushDepFiles
	case *UnstableCrashRequest:
		return KindUnstableCrash
	case *SegfaultRequest:
		return KindSegfault
	case *HeapDumpRequest:
		return KindHeapDump
	case *AllocatorStatsRequest:
		return KindAllocatorStats
	case *DiceDumpRequest:
		return KindDiceDump
	case *BuildRequest:
		return KindBuild
	case *BxlRequest:
		return KindBxl
	case *TestRequest:
		return KindTest
	case *TargetsRequest:
		return KindTargets
	case *TargetsShowOutputsRequest:
		return KindTargetsShowOutputs
	case *AqueryRequest:
		return KindAquery
	case *CqueryRequest:
		return KindCquery
	case *UqueryRequest:
		return KindUquery
	case *AuditRequest:
		return KindAudit
	case *UnstableDocsRequest:
		return KindUnstableDocs
	case *InstallRequest:
		return KindInstall
	case *MaterializeRequest:
		return KindMaterialize
	case *CleanStaleRequest:
		return KindCleanStale
	case *ProfileRequest:
		return KindProfile
	case *AllocativeRequest:
		return KindAllocative
	case *LspRequest:
		return KindLsp
	}
	return KindUnknown
}
