package api

import (
	"fmt"

	"github.com/uber/buildd/src/buildd/internal/codec"
)

// ResultPayload is one outcome of a command: *CommandError or exactly one success response.
type ResultPayload interface {
	isResultPayload()
}

// CommandResult holds exactly one ResultPayload.
type CommandResult struct {
	Result ResultPayload
}

// NewErrorResult builds an error result from messages.
func NewErrorResult(messages ...string) *CommandResult {
	return &CommandResult{Result: &CommandError{Messages: messages}}
}

// Err returns the error variant, or nil when the result is a success.
func (r *CommandResult) Err() *CommandError {
	if r == nil {
		return nil
	}
	e, _ := r.Result.(*CommandError)
	return e
}

type commandResultWire struct {
	Error              *CommandError               `cbor:"1,keyasint,omitempty"`
	Kill               *KillResponse               `cbor:"2,keyasint,omitempty"`
	Status             *StatusResponse             `cbor:"3,keyasint,omitempty"`
	Ping               *PingResponse               `cbor:"4,keyasint,omitempty"`
	FlushDepFiles      *FlushDepFilesResponse      `cbor:"5,keyasint,omitempty"`
	Generic            *GenericResponse            `cbor:"6,keyasint,omitempty"`
	HeapDump           *HeapDumpResponse           `cbor:"7,keyasint,omitempty"`
	AllocatorStats     *AllocatorStatsResponse     `cbor:"8,keyasint,omitempty"`
	DiceDump           *DiceDumpResponse           `cbor:"9,keyasint,omitempty"`
	Build              *BuildResponse              `cbor:"10,keyasint,omitempty"`
	Bxl                *BxlResponse                `cbor:"11,keyasint,omitempty"`
	Test               *TestResponse               `cbor:"12,keyasint,omitempty"`
	Targets            *TargetsResponse            `cbor:"13,keyasint,omitempty"`
	TargetsShowOutputs *TargetsShowOutputsResponse `cbor:"14,keyasint,omitempty"`
	Aquery             *AqueryResponse             `cbor:"15,keyasint,omitempty"`
	Cquery             *CqueryResponse             `cbor:"16,keyasint,omitempty"`
	Uquery             *UqueryResponse             `cbor:"17,keyasint,omitempty"`
	Audit              *AuditResponse              `cbor:"18,keyasint,omitempty"`
	UnstableDocs       *UnstableDocsResponse       `cbor:"19,keyasint,omitempty"`
	Install            *InstallResponse            `cbor:"20,keyasint,omitempty"`
	Materialize        *MaterializeResponse        `cbor:"21,keyasint,omitempty"`
	CleanStale         *CleanStaleResponse         `cbor:"22,keyasint,omitempty"`
	Profile            *ProfileResponse            `cbor:"23,keyasint,omitempty"`
	Allocative         *AllocativeResponse         `cbor:"24,keyasint,omitempty"`
	Lsp                *LspResponse                `cbor:"25,keyasint,omitempty"`
}

// MarshalCBOR encodes the single populated variant.
func (r CommandResult) MarshalCBOR() ([]byte, error) {
	var w commandResultWire
	if err := setVariant(&w, r.Result); err != nil {
		return nil, fmt.Errorf("encoding command result: %w", err)
	}
	return codec.Marshal(&w)
}

// UnmarshalCBOR rejects results carrying zero or several variants.
func (r *CommandResult) UnmarshalCBOR(data []byte) error {
	var w commandResultWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := getVariant(&w)
	if err != nil {
		return fmt.Errorf("decoding command result: %w", err)
	}
	r.Result = v.(ResultPayload)
	return nil
}

func (*CommandError) isResultPayload()               {}
func (*KillResponse) isResultPayload()               {}
func (*StatusResponse) isResultPayload()             {}
func (*PingResponse) isResultPayload()               {}
func (*FlushDepFilesResponse) isResultPayload()      {}
func (*GenericResponse) isResultPayload()            {}
func (*HeapDumpResponse) isResultPayload()           {}
func (*AllocatorStatsResponse) isResultPayload()     {}
func (*DiceDumpResponse) isResultPayload()           {}
func (*BuildResponse) isResultPayload()              {}
func (*BxlResponse) isResultPayload()                {}
func (*TestResponse) isResultPayload()               {}
func (*TargetsResponse) isResultPayload()            {}
func (*TargetsShowOutputsResponse) isResultPayload() {}
func (*AqueryResponse) isResultPayload()             {}
func (*CqueryResponse) isResultPayload()             {}
func (*UqueryResponse) isResultPayload()             {}
func (*AuditResponse) isResultPayload()              {}
func (*UnstableDocsResponse) isResultPayload()       {}
func (*InstallResponse) isResultPayload()            {}
func (*MaterializeResponse) isResultPayload()        {}
func (*CleanStaleResponse) isResultPayload()         {}
func (*ProfileResponse) isResultPayload()            {}
func (*AllocativeResponse) isResultPayload()         {}
func (*LspResponse) isResultPayload()                {}
