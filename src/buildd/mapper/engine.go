package mapper

import (
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/executor"
)

// ClientContextToEngineContext builds the engine's view of an invocation.
func ClientContextToEngineContext(cc *api.ClientContext, snap *entity.ConfigSnapshot, traceID string) *entity.EngineContext {
	ec := &entity.EngineContext{TraceID: traceID}
	if cc != nil {
		ec.WorkingDir = cc.WorkingDir
		ec.ProjectRoot = cc.WorkingDir
		ec.TargetPlatform = cc.TargetPlatform
		ec.Oncall = cc.Oncall
		ec.DisableStrictTypes = cc.DisableStrictTypes
		if cc.HostPlatform != api.HostPlatformUnset {
			ec.HostPlatform = cc.HostPlatform.String()
		}
		if cc.HostArch != api.HostArchUnset {
			ec.HostArch = cc.HostArch.String()
		}
	}
	if snap != nil {
		ec.ProjectRoot = snap.ProjectRoot
		ec.ConfigDigest = snap.Digest
		ec.Config = snap.Sections()
	}
	return ec
}

func providerAction(a api.BuildProviderAction) string {
	if a == api.ProviderSkip {
		return ""
	}
	return a.String()
}

// BuildOptionsToSpec maps the build options of a request to the per-target build spec.
func BuildOptionsToSpec(providers *api.BuildProviders, opts *api.CommonBuildOptions) entity.BuildSpec {
	spec := entity.BuildSpec{
		ExecutionStrategy: entity.ExecutionStrategyName(opts.GetExecutionStrategy()),
		Concurrency:       executor.EffectiveConcurrency(opts.GetConcurrency()),
		SkipCacheRead:     opts.GetSkipCacheRead(),
		EagerDepFiles:     opts.GetEagerDepFiles(),
	}
	if providers != nil {
		spec.DefaultInfo = providerAction(providers.DefaultInfo)
		spec.RunInfo = providerAction(providers.RunInfo)
		spec.TestInfo = providerAction(providers.TestInfo)
	}
	return spec
}

// TargetResultToBuildTarget maps an engine result to its wire form. Outputs are listed only
// when requested; an output produced by several providers is listed once with every tag set.
func TargetResultToBuildTarget(result *entity.TargetResult, opts *api.ResponseOptions) *api.BuildTarget {
	bt := &api.BuildTarget{
		Target:        result.Target.Label,
		Configuration: result.Target.Configuration,
		RunArgs:       result.RunArgs,
	}
	if opts == nil || !opts.ReturnOutputs {
		return bt
	}

	byPath := make(map[string]*api.BuildOutput)
	for _, o := range result.Outputs {
		if o.Other && !opts.ReturnDefaultOther {
			continue
		}
		out, ok := byPath[o.Path]
		if !ok {
			out = &api.BuildOutput{Path: o.Path, Providers: &api.OutputProviders{}}
			byPath[o.Path] = out
			bt.Outputs = append(bt.Outputs, out)
		}
		switch {
		case o.Provider == entity.ProviderDefaultInfo && o.Other:
			out.Providers.Other = true
		case o.Provider == entity.ProviderDefaultInfo:
			out.Providers.DefaultInfo = true
		case o.Provider == entity.ProviderRunInfo:
			out.Providers.RunInfo = true
		case o.Provider == entity.ProviderTestInfo:
			out.Providers.TestInfo = true
		}
	}
	return bt
}

// OutputPaths lists the distinct output paths of results, in order.
func OutputPaths(results []*entity.TargetResult) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, r := range results {
		for _, o := range r.Outputs {
			if !seen[o.Path] {
				seen[o.Path] = true
				paths = append(paths, o.Path)
			}
		}
	}
	return paths
}

// QueryOutputFormatName is the engine's name of a query output format, "" for the default.
func QueryOutputFormatName(f api.QueryOutputFormat) string {
	if f == api.QueryOutputDefault {
		return ""
	}
	return f.String()
}
