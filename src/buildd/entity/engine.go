package entity

import (
	"time"

	"github.com/uber/buildd/src/buildd/api"
)

// EngineContext is everything the build engine needs to evaluate one invocation.
type EngineContext struct {
	WorkingDir         string                       `json:"workingDir"`
	ProjectRoot        string                       `json:"projectRoot"`
	ConfigDigest       string                       `json:"configDigest"`
	Config             map[string]map[string]string `json:"config,omitempty"`
	TargetPlatform     string                       `json:"targetPlatform,omitempty"`
	HostPlatform       string                       `json:"hostPlatform,omitempty"`
	HostArch           string                       `json:"hostArch,omitempty"`
	Oncall             string                       `json:"oncall,omitempty"`
	DisableStrictTypes bool                         `json:"disableStrictTypes,omitempty"`
	TraceID            string                       `json:"traceId"`
}

// ResolvedTarget is a configured target a pattern expanded to.
type ResolvedTarget struct {
	Label         string `json:"label"`
	Configuration string `json:"configuration"`
}

// BuildSpec is what to build for each target. A provider field holds the action name
// ("build" or "build_if_available"); empty skips the category.
type BuildSpec struct {
	DefaultInfo       string `json:"defaultInfo,omitempty"`
	RunInfo           string `json:"runInfo,omitempty"`
	TestInfo          string `json:"testInfo,omitempty"`
	ExecutionStrategy string `json:"executionStrategy,omitempty"`
	Concurrency       int    `json:"concurrency,omitempty"`
	SkipCacheRead     bool   `json:"skipCacheRead,omitempty"`
	EagerDepFiles     bool   `json:"eagerDepFiles,omitempty"`
}

// ProviderOutput is one artifact produced by a provider of a target.
type ProviderOutput struct {
	Path     string `json:"path"`
	Provider string `json:"provider"`
	// Other marks a DefaultInfo output that is not the main artifact.
	Other bool `json:"other,omitempty"`
}

// Provider names used in ProviderOutput.
const (
	ProviderDefaultInfo = "DefaultInfo"
	ProviderRunInfo     = "RunInfo"
	ProviderTestInfo    = "TestInfo"
)

// TargetResult is the engine's answer for one built target.
type TargetResult struct {
	Target  ResolvedTarget   `json:"target"`
	RunArgs []string         `json:"runArgs,omitempty"`
	Outputs []ProviderOutput `json:"outputs,omitempty"`
}

// BxlResult is the outcome of a BXL script.
type BxlResult struct {
	Outputs []string `json:"outputs,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// TestSpec selects and runs tests.
type TestSpec struct {
	Build          BuildSpec `json:"build"`
	ExecutorArgs   []string  `json:"executorArgs,omitempty"`
	ExcludedLabels []string  `json:"excludedLabels,omitempty"`
	IncludedLabels []string  `json:"includedLabels,omitempty"`
	AlwaysExclude  bool      `json:"alwaysExclude,omitempty"`
	BuildFiltered  bool      `json:"buildFiltered,omitempty"`
}

// TestOutcome is the result of one test target.
type TestOutcome struct {
	Target  string `json:"target"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Test statuses.
const (
	TestPassed  = "pass"
	TestFailed  = "fail"
	TestSkipped = "skip"
)

// QueryKind selects the graph a query runs against.
type QueryKind string

// Query kinds.
const (
	QueryAction       QueryKind = "aquery"
	QueryConfigured   QueryKind = "cquery"
	QueryUnconfigured QueryKind = "uquery"
)

// QuerySpec is a query over the target graph.
type QuerySpec struct {
	Kind             QueryKind `json:"kind"`
	Query            string    `json:"query"`
	Args             []string  `json:"args,omitempty"`
	OutputAttributes []string  `json:"outputAttributes,omitempty"`
	OutputFormat     string    `json:"outputFormat,omitempty"`
	TargetUniverse   []string  `json:"targetUniverse,omitempty"`
	ShowProviders    bool      `json:"showProviders,omitempty"`
	CorrectOwner     bool      `json:"correctOwner,omitempty"`
}

// TargetsSpec lists targets matching patterns.
type TargetsSpec struct {
	Patterns         []string `json:"patterns"`
	OutputAttributes []string `json:"outputAttributes,omitempty"`
	Format           string   `json:"format,omitempty"`
	KeepGoing        bool     `json:"keepGoing,omitempty"`
}

// TargetsListing is the engine's answer to a targets listing.
type TargetsListing struct {
	Output string   `json:"output"`
	Errors []string `json:"errors,omitempty"`
}

// ProfileSpec profiles the analysis or loading of targets.
type ProfileSpec struct {
	Patterns    []string `json:"patterns"`
	Destination string   `json:"destination"`
	Kind        string   `json:"kind"`
	Recursive   bool     `json:"recursive,omitempty"`
}

// ProfileResult is the written profile.
type ProfileResult struct {
	Bytes   uint64        `json:"bytes"`
	Elapsed time.Duration `json:"elapsed"`
}

// CleanResult lists the artifacts a stale clean removed, or would remove on a dry run.
type CleanResult struct {
	Removed    []string `json:"removed,omitempty"`
	BytesFreed uint64   `json:"bytesFreed,omitempty"`
}

// ExecutionStrategyName is the engine's name of a strategy.
func ExecutionStrategyName(s api.ExecutionStrategy) string {
	if s == api.ExecutionDefault {
		return ""
	}
	return s.String()
}
