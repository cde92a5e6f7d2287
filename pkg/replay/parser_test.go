//nolint:thelper,funlen // ok for tests
package replay

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildContainer(magic, version uint32, first, second []byte) []byte {
	var buf bytes.Buffer
	write := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
	write(magic)
	write(version)
	write(uint32(len(first)))
	buf.Write(first)
	write(uint32(len(second)))
	buf.Write(second)
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	first := []byte(`{"playerID": 12345, "playerName": "TestPlayer"}`)
	second := []byte(`[[{"common": {"winnerTeam": 1}}, {}], {}, []]`)

	raw, err := Decode(bytes.NewReader(buildContainer(Magic, SupportedVersion, first, second)))
	require.NoError(t, err)
	assert.Equal(t, "TestPlayer", raw.Metadata["playerName"])
	assert.Len(t, raw.Sections, 3)
}

func TestParseDocument(t *testing.T) {
	first := []byte(`{"playerID": 12345, "playerName": "TestPlayer"}`)
	second := []byte(`[[{"common": {"winnerTeam": 1}}, {}], {}, []]`)

	doc, err := ParseDocument(buildContainer(Magic, SupportedVersion, first, second))
	require.NoError(t, err)
	assert.Equal(t, "TestPlayer", doc.Metadata().PlayerName)
	assert.Equal(t, 1, doc.Common().WinnerTeam)
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	tests := []struct {
		name    string
		magic   uint32
		version uint32
	}{
		{name: "wrong magic", magic: 0xdeadbeef, version: SupportedVersion},
		{name: "unsupported version", magic: Magic, version: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildContainer(tt.magic, tt.version, []byte(`{}`), []byte(`[]`))
			_, err := Decode(bytes.NewReader(data))
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.magic, formatErr.Magic)
		})
	}
}

func TestDecodeRejectsBadBlockEdges(t *testing.T) {
	tests := []struct {
		name   string
		first  []byte
		second []byte
	}{
		{name: "first block not an object", first: []byte(`[]`), second: []byte(`[]`)},
		{name: "second block not an array", first: []byte(`{}`), second: []byte(`{}`)},
		{name: "garbage first block", first: []byte(`xx`), second: []byte(`[]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildContainer(Magic, SupportedVersion, tt.first, tt.second)
			_, err := Decode(bytes.NewReader(data))
			var structErr *StructuralError
			require.ErrorAs(t, err, &structErr)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	full := buildContainer(Magic, SupportedVersion, []byte(`{"a": 1}`), []byte(`[1]`))

	t.Run("short header", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(full[:8]))
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
	})

	t.Run("truncated first block", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(full[:14]))
		var structErr *StructuralError
		require.ErrorAs(t, err, &structErr)
	})

	t.Run("missing second block", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(full[:20]))
		var structErr *StructuralError
		require.ErrorAs(t, err, &structErr)
	})
}
