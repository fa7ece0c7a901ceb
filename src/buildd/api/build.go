package api

// BuildProviders selects which provider categories of each target are built.
// The zero value skips every category, so a request that omits it builds nothing.
type BuildProviders struct {
	DefaultInfo BuildProviderAction `cbor:"1,keyasint,omitempty"`
	RunInfo     BuildProviderAction `cbor:"2,keyasint,omitempty"`
	TestInfo    BuildProviderAction `cbor:"3,keyasint,omitempty"`
}

// AllSkip reports whether no category is requested. A nil receiver skips everything.
func (p *BuildProviders) AllSkip() bool {
	if p == nil {
		return true
	}
	return p.DefaultInfo == ProviderSkip && p.RunInfo == ProviderSkip && p.TestInfo == ProviderSkip
}

// Valid reports whether every action is known.
func (p *BuildProviders) Valid() bool {
	if p == nil {
		return true
	}
	return p.DefaultInfo.Valid() && p.RunInfo.Valid() && p.TestInfo.Valid()
}

// ResponseOptions shapes what a build response reports.
type ResponseOptions struct {
	ReturnOutputs      bool `cbor:"1,keyasint,omitempty"`
	ReturnDefaultOther bool `cbor:"2,keyasint,omitempty"`
}

// CommonBuildOptions are shared by every command that builds.
type CommonBuildOptions struct {
	ExecutionStrategy ExecutionStrategy `cbor:"1,keyasint,omitempty"`
	// Concurrency is the number of local executor slots; 0 infers it from the host.
	Concurrency   uint32 `cbor:"2,keyasint,omitempty"`
	EagerDepFiles bool   `cbor:"3,keyasint,omitempty"`
	SkipCacheRead bool   `cbor:"4,keyasint,omitempty"`
	// 5 reserved
}

// GetConcurrency returns the concurrency hint, 0 for a nil receiver.
func (o *CommonBuildOptions) GetConcurrency() uint32 {
	if o == nil {
		return 0
	}
	return o.Concurrency
}

// GetExecutionStrategy returns the strategy, ExecutionDefault for a nil receiver.
func (o *CommonBuildOptions) GetExecutionStrategy() ExecutionStrategy {
	if o == nil {
		return ExecutionDefault
	}
	return o.ExecutionStrategy
}

// GetSkipCacheRead reports whether remote cache reads are bypassed.
func (o *CommonBuildOptions) GetSkipCacheRead() bool {
	return o != nil && o.SkipCacheRead
}

// GetEagerDepFiles reports whether dep files are loaded eagerly.
func (o *CommonBuildOptions) GetEagerDepFiles() bool {
	return o != nil && o.EagerDepFiles
}

// OutputProviders tags an output with every provider category that produced it.
type OutputProviders struct {
	DefaultInfo bool `cbor:"1,keyasint,omitempty"`
	RunInfo     bool `cbor:"2,keyasint,omitempty"`
	Other       bool `cbor:"3,keyasint,omitempty"`
	TestInfo    bool `cbor:"4,keyasint,omitempty"`
}

// BuildOutput is one realized or logical output path of a target.
type BuildOutput struct {
	Path      string           `cbor:"1,keyasint,omitempty"`
	Providers *OutputProviders `cbor:"2,keyasint,omitempty"`
}

// BuildTarget is the result for one configured target.
type BuildTarget struct {
	Target        string         `cbor:"1,keyasint,omitempty"`
	Configuration string         `cbor:"2,keyasint,omitempty"`
	RunArgs       []string       `cbor:"3,keyasint,omitempty"`
	Outputs       []*BuildOutput `cbor:"4,keyasint,omitempty"`
}
