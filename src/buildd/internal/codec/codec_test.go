package codec

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

type sample struct {
	Name    string        `cbor:"1,keyasint,omitempty"`
	Count   uint64        `cbor:"2,keyasint,omitempty"`
	Started time.Time     `cbor:"3,keyasint,omitempty"`
	Took    time.Duration `cbor:"4,keyasint,omitempty"`
}

func TestMarshalDeterministic(t *testing.T) {
	v := sample{Name: "build", Count: 3, Took: time.Second}

	first, err := Marshal(v)
	require.NoError(t, err)
	second, err := Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var decoded sample
	require.NoError(t, Unmarshal(first, &decoded))
	assert.Equal(t, v, decoded)
}

func TestIntegerKeys(t *testing.T) {
	data, err := Marshal(sample{Name: "x"})
	require.NoError(t, err)

	var generic map[uint64]any
	require.NoError(t, Unmarshal(data, &generic))
	assert.Equal(t, "x", generic[1])
	assert.Len(t, generic, 1)
}

func TestUnknownKeysIgnored(t *testing.T) {
	type newer struct {
		Name  string `cbor:"1,keyasint"`
		Extra string `cbor:"99,keyasint"`
	}
	data, err := Marshal(newer{Name: "a", Extra: "b"})
	require.NoError(t, err)

	var older sample
	require.NoError(t, Unmarshal(data, &older))
	assert.Equal(t, "a", older.Name)
}

func TestStream(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, enc.Encode(sample{Count: i}))
	}

	dec := NewDecoder(&buf)
	var got []uint64
	for {
		var s sample
		err := dec.Decode(&s)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, s.Count)
	}
	assert.Equal(t, []uint64{1, 2, 3}, got)
}

func TestRegisteredWithGRPC(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)
	assert.Equal(t, Name, c.Name())
}
