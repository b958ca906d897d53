package jfif

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestuff_MarkerTerminated(t *testing.T) {
	// Entropy data ending in an EOI marker.
	content := []byte{0x01, 0xFF, 0x00, 0x02, 0xFF, 0xD9}
	r := NewReader(bytes.NewReader(content))

	var out bytes.Buffer
	stats, err := r.Destuff(&out)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x01, 0xFF, 0x02}, out.Bytes())
	assert.Equal(t, int64(3), stats.Logical)
	assert.Equal(t, int64(1), stats.Stuffed)
	assert.True(t, stats.Marker)
}

func TestDestuff_StreamExhausted(t *testing.T) {
	content := []byte{0x11, 0x22, 0x33}
	r := NewReader(bytes.NewReader(content))

	var out bytes.Buffer
	stats, err := r.Destuff(&out)
	require.NoError(t, err)

	assert.Equal(t, content, out.Bytes())
	assert.Equal(t, int64(3), stats.Logical)
	assert.Zero(t, stats.Stuffed)
	assert.False(t, stats.Marker)
}

func TestDestuff_FromDecodedHeader(t *testing.T) {
	// A whole tiny "file": JFIF header, stuffed entropy bytes, EOI.
	file := append([]byte{}, jfifPrefix...)
	file = append(file, 0xA5, 0xFF, 0x00, 0x5A, 0xFF, 0xD9)

	hdr, err := DecodeHeader(file)
	require.NoError(t, err)
	require.True(t, hdr.HasJFIF())

	var out bytes.Buffer
	stats, err := NewReader(bytes.NewReader(hdr.Content)).Destuff(&out)
	require.NoError(t, err)

	assert.Equal(t, []byte{0xA5, 0xFF, 0x5A}, out.Bytes())
	assert.Equal(t, int64(1), stats.Stuffed)
	assert.True(t, stats.Marker)
}
