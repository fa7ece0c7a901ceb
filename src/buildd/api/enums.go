package api

import "fmt"

// ConfigOverrideKind distinguishes a literal override from a file of overrides.
type ConfigOverrideKind int32

const (
	// ConfigOverrideValue is a single "section.key=value" override.
	ConfigOverrideValue ConfigOverrideKind = iota
	// ConfigOverrideFile is a path to a file of overrides.
	ConfigOverrideFile
)

func (k ConfigOverrideKind) String() string {
	switch k {
	case ConfigOverrideValue:
		return "VALUE"
	case ConfigOverrideFile:
		return "FILE"
	}
	return fmt.Sprintf("ConfigOverrideKind(%d)", int32(k))
}

// Valid reports whether k is a known kind.
func (k ConfigOverrideKind) Valid() bool {
	return k == ConfigOverrideValue || k == ConfigOverrideFile
}

// HostPlatformOverride overrides the platform the daemon assumes for the host.
type HostPlatformOverride int32

const (
	HostPlatformUnset HostPlatformOverride = iota
	HostPlatformLinux
	HostPlatformMacOS
	HostPlatformWindows
)

func (p HostPlatformOverride) String() string {
	switch p {
	case HostPlatformUnset:
		return "unset"
	case HostPlatformLinux:
		return "linux"
	case HostPlatformMacOS:
		return "macos"
	case HostPlatformWindows:
		return "windows"
	}
	return fmt.Sprintf("HostPlatformOverride(%d)", int32(p))
}

// Valid reports whether p is a known platform.
func (p HostPlatformOverride) Valid() bool {
	return p >= HostPlatformUnset && p <= HostPlatformWindows
}

// HostArchOverride overrides the architecture the daemon assumes for the host.
type HostArchOverride int32

const (
	HostArchUnset HostArchOverride = iota
	HostArchAArch64
	HostArchX86_64
)

func (a HostArchOverride) String() string {
	switch a {
	case HostArchUnset:
		return "unset"
	case HostArchAArch64:
		return "aarch64"
	case HostArchX86_64:
		return "x86_64"
	}
	return fmt.Sprintf("HostArchOverride(%d)", int32(a))
}

// Valid reports whether a is a known architecture.
func (a HostArchOverride) Valid() bool {
	return a >= HostArchUnset && a <= HostArchX86_64
}

// BuildProviderAction selects whether one provider category of a target is built.
type BuildProviderAction int32

const (
	// ProviderSkip is the zero value: the category is not built.
	ProviderSkip BuildProviderAction = iota
	// ProviderBuildIfAvailable builds the category when the target has it.
	ProviderBuildIfAvailable
	// ProviderBuild builds the category and fails the target when it is missing.
	ProviderBuild
)

func (a BuildProviderAction) String() string {
	switch a {
	case ProviderSkip:
		return "skip"
	case ProviderBuildIfAvailable:
		return "build_if_available"
	case ProviderBuild:
		return "build"
	}
	return fmt.Sprintf("BuildProviderAction(%d)", int32(a))
}

// Valid reports whether a is a known action.
func (a BuildProviderAction) Valid() bool {
	return a >= ProviderSkip && a <= ProviderBuild
}

// Materializations controls whether final artifacts are written to disk.
type Materializations int32

const (
	MaterializationsDefault Materializations = iota
	MaterializationsMaterialize
	MaterializationsSkip
)

func (m Materializations) String() string {
	switch m {
	case MaterializationsDefault:
		return "default"
	case MaterializationsMaterialize:
		return "materialize"
	case MaterializationsSkip:
		return "skip"
	}
	return fmt.Sprintf("Materializations(%d)", int32(m))
}

// Valid reports whether m is a known policy.
func (m Materializations) Valid() bool {
	return m >= MaterializationsDefault && m <= MaterializationsSkip
}

// ExecutionStrategy selects where actions run.
type ExecutionStrategy int32

const (
	ExecutionDefault ExecutionStrategy = iota
	ExecutionLocalOnly
	ExecutionRemoteOnly
	ExecutionHybrid
	ExecutionHybridPreferLocal
	ExecutionNone
)

func (s ExecutionStrategy) String() string {
	switch s {
	case ExecutionDefault:
		return "default"
	case ExecutionLocalOnly:
		return "local_only"
	case ExecutionRemoteOnly:
		return "remote_only"
	case ExecutionHybrid:
		return "hybrid"
	case ExecutionHybridPreferLocal:
		return "hybrid_prefer_local"
	case ExecutionNone:
		return "no_execution"
	}
	return fmt.Sprintf("ExecutionStrategy(%d)", int32(s))
}

// Valid reports whether s is a known strategy.
func (s ExecutionStrategy) Valid() bool {
	return s >= ExecutionDefault && s <= ExecutionNone
}

// QueryOutputFormat selects how query results are rendered.
type QueryOutputFormat int32

const (
	QueryOutputDefault QueryOutputFormat = iota
	QueryOutputJSON
	QueryOutputDot
	QueryOutputDotCompact
)

func (f QueryOutputFormat) String() string {
	switch f {
	case QueryOutputDefault:
		return "default"
	case QueryOutputJSON:
		return "json"
	case QueryOutputDot:
		return "dot"
	case QueryOutputDotCompact:
		return "dot_compact"
	}
	return fmt.Sprintf("QueryOutputFormat(%d)", int32(f))
}

func (f QueryOutputFormat) Valid() bool {
	return f >= QueryOutputDefault && f <= QueryOutputDotCompact
}

// DumpFormat selects the encoding of a graph dump.
type DumpFormat int32

const (
	DumpFormatTSV DumpFormat = iota
	DumpFormatJSON
)

func (f DumpFormat) String() string {
	switch f {
	case DumpFormatTSV:
		return "tsv"
	case DumpFormatJSON:
		return "json"
	}
	return fmt.Sprintf("DumpFormat(%d)", int32(f))
}

func (f DumpFormat) Valid() bool {
	return f == DumpFormatTSV || f == DumpFormatJSON
}

// ProfileKind selects which phase of evaluation is profiled.
type ProfileKind int32

const (
	ProfileAnalysis ProfileKind = iota
	ProfileLoading
)

func (k ProfileKind) String() string {
	switch k {
	case ProfileAnalysis:
		return "analysis"
	case ProfileLoading:
		return "loading"
	}
	return fmt.Sprintf("ProfileKind(%d)", int32(k))
}

func (k ProfileKind) Valid() bool {
	return k == ProfileAnalysis || k == ProfileLoading
}

// TargetsFormat selects how the targets command renders its output.
type TargetsFormat int32

const (
	TargetsFormatText TargetsFormat = iota
	TargetsFormatJSON
)

func (f TargetsFormat) String() string {
	switch f {
	case TargetsFormatText:
		return "text"
	case TargetsFormatJSON:
		return "json"
	}
	return fmt.Sprintf("TargetsFormat(%d)", int32(f))
}

func (f TargetsFormat) Valid() bool {
	return f == TargetsFormatText || f == TargetsFormatJSON
}
