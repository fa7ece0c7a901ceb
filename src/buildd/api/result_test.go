package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/buildd/src/buildd/internal/codec"
)

func allPayloads() []ResultPayload {
	allocated := uint64(42)
	return []ResultPayload{
		&CommandError{Messages: []string{"boom"}},
		&KillResponse{},
		&StatusResponse{ProcessInfo: &DaemonProcessInfo{Pid: 7}, BytesAllocated: &allocated, Uptime: time.Second},
		&PingResponse{},
		&FlushDepFilesResponse{},
		&GenericResponse{},
		&HeapDumpResponse{Path: "/tmp/heap"},
		&AllocatorStatsResponse{Response: "stats"},
		&DiceDumpResponse{Path: "/tmp/dice", Digest: "abc"},
		&BuildResponse{BuildTargets: []*BuildTarget{{Target: "//a:b"}}, ErrorMessages: []string{"//a:c failed"}},
		&BxlResponse{ProjectRoot: "/repo"},
		&TestResponse{ExitCode: 32, Failed: 1},
		&TargetsResponse{Output: "//a:b"},
		&TargetsShowOutputsResponse{TargetsWithOutputs: []*TargetWithOutputs{{Target: "//a:b", Outputs: []string{"out"}}}},
		&AqueryResponse{Output: "a"},
		&CqueryResponse{Output: "c"},
		&UqueryResponse{Output: "u"},
		&AuditResponse{Output: "audit"},
		&UnstableDocsResponse{DocsJSON: "{}"},
		&InstallResponse{Installed: []string{"//a:b"}},
		&MaterializeResponse{Materialized: []string{"out"}},
		&CleanStaleResponse{Removed: []string{"x"}, DryRun: true},
		&ProfileResponse{Destination: "/tmp/p"},
		&AllocativeResponse{OutputPath: "/tmp/a"},
		&LspResponse{},
	}
}

func TestCommandResultRoundTrip(t *testing.T) {
	for _, p := range allPayloads() {
		p := p
		t.Run(typeName(p), func(t *testing.T) {
			data, err := codec.Marshal(&CommandResult{Result: p})
			require.NoError(t, err)

			var decoded CommandResult
			require.NoError(t, codec.Unmarshal(data, &decoded))
			assert.IsType(t, p, decoded.Result)
			assert.Equal(t, p, decoded.Result)
		})
	}
}

func TestCommandResultErrorExcludesSuccess(t *testing.T) {
	data, err := codec.Marshal(NewErrorResult("target not found"))
	require.NoError(t, err)

	var w commandResultWire
	require.NoError(t, codec.Unmarshal(data, &w))
	require.NotNil(t, w.Error)
	w.Error = nil
	_, err = getVariant(&w)
	assert.ErrorIs(t, err, ErrNoVariant, "no success payload may be populated next to an error")

	var decoded CommandResult
	require.NoError(t, codec.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Err())
	assert.Equal(t, []string{"target not found"}, decoded.Err().Messages)
}

func TestCommandResultRejectsSeveralVariants(t *testing.T) {
	data, err := codec.Marshal(&commandResultWire{
		Error: &CommandError{Messages: []string{"x"}},
		Build: &BuildResponse{},
	})
	require.NoError(t, err)

	var decoded CommandResult
	err = decoded.UnmarshalCBOR(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want exactly one")
}

func TestCommandResultRejectsEmpty(t *testing.T) {
	data, err := codec.Marshal(&commandResultWire{})
	require.NoError(t, err)

	var decoded CommandResult
	assert.ErrorIs(t, decoded.UnmarshalCBOR(data), ErrNoVariant)

	_, err = CommandResult{}.MarshalCBOR()
	assert.ErrorIs(t, err, ErrNoVariant)

	var nilBuild *BuildResponse
	_, err = CommandResult{Result: nilBuild}.MarshalCBOR()
	assert.ErrorIs(t, err, ErrNoVariant)
}

func TestCommandResultErr(t *testing.T) {
	assert.Nil(t, (*CommandResult)(nil).Err())
	assert.Nil(t, (&CommandResult{Result: &PingResponse{}}).Err())
	assert.NotNil(t, NewErrorResult("a").Err())
}

func TestCommandErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     string
	}{
		{name: "none", want: "command failed"},
		{name: "one", messages: []string{"a"}, want: "a"},
		{name: "several", messages: []string{"a", "b"}, want: "a; b"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&CommandError{Messages: tt.messages}).Error())
		})
	}
}

func TestStatusOptionalCounters(t *testing.T) {
	zero := uint64(0)
	withZero, err := codec.Marshal(&StatusResponse{BytesAllocated: &zero})
	require.NoError(t, err)
	without, err := codec.Marshal(&StatusResponse{})
	require.NoError(t, err)
	assert.NotEqual(t, withZero, without, "an absent counter must differ from zero on the wire")

	var decoded StatusResponse
	require.NoError(t, codec.Unmarshal(without, &decoded))
	assert.Nil(t, decoded.BytesAllocated)
	require.NoError(t, codec.Unmarshal(withZero, &decoded))
	require.NotNil(t, decoded.BytesAllocated)
	assert.Zero(t, *decoded.BytesAllocated)
}
