package loader

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"lc3/word"
)

// fakeMemory is a minimal Writer that records every write, for asserting
// exactly what the loader touched.
type fakeMemory struct {
	cells map[word.Word]word.Word
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{cells: make(map[word.Word]word.Word)}
}

func (m *fakeMemory) Write(addr, value word.Word) {
	m.cells[addr] = value
}

func TestLoadPlacesPayloadAtOrigin(t *testing.T) {
	// origin 0x3000, payload {0x1234, 0x5678}
	img := []byte{0x30, 0x00, 0x12, 0x34, 0x56, 0x78}
	mem := newFakeMemory()

	err := Load(bytes.NewReader(img), mem)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x1234), mem.cells[0x3000])
	assert.Equal(t, word.Word(0x5678), mem.cells[0x3001])
	assert.Len(t, mem.cells, 2)
}

func TestLoadIgnoresTrailingOddByte(t *testing.T) {
	img := []byte{0x30, 0x00, 0x00, 0x41, 0xFF} // one full word, one lone byte
	mem := newFakeMemory()

	err := Load(bytes.NewReader(img), mem)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x0041), mem.cells[0x3000])
	assert.Len(t, mem.cells, 1)
}

func TestLoadEmptyPayloadIsFine(t *testing.T) {
	img := []byte{0x30, 0x00}
	mem := newFakeMemory()

	err := Load(bytes.NewReader(img), mem)
	assert.NoError(t, err)
	assert.Empty(t, mem.cells)
}

func TestLoadTruncatedOrigin(t *testing.T) {
	for _, img := range [][]byte{{}, {0x30}} {
		mem := newFakeMemory()
		err := Load(bytes.NewReader(img), mem)
		assert.ErrorIs(t, err, ErrImageTruncated)
	}
}

func TestLoadStopsAtTopOfAddressSpace(t *testing.T) {
	img := []byte{0xFF, 0xFF, 0x00, 0x01, 0x00, 0x02} // origin 0xFFFF, two words
	mem := newFakeMemory()

	err := Load(bytes.NewReader(img), mem)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x0001), mem.cells[0xFFFF])
	assert.Len(t, mem.cells, 1) // second word would overflow 0x10000, dropped
}

func TestLoadRoundTripsBigEndianBytes(t *testing.T) {
	img := []byte{0x30, 0x00, 0xDE, 0xAD, 0xBE, 0xEF}
	mem := newFakeMemory()
	assert.NoError(t, Load(bytes.NewReader(img), mem))

	out := []byte{0x30, 0x00}
	for addr := word.Word(0x3000); addr < 0x3002; addr++ {
		v := mem.cells[addr]
		out = append(out, byte(v>>8), byte(v))
	}
	assert.Equal(t, img, out)
}

func TestLoadFileMissingPath(t *testing.T) {
	mem := newFakeMemory()
	err := LoadFile("/nonexistent/path/to/image.obj", mem)
	assert.True(t, errors.Is(err, ErrImageOpen))
}

func TestLoadLaterOverwritesOverlap(t *testing.T) {
	mem := newFakeMemory()
	first := []byte{0x30, 0x00, 0x11, 0x11, 0x22, 0x22}
	second := []byte{0x30, 0x01, 0x99, 0x99}

	assert.NoError(t, Load(bytes.NewReader(first), mem))
	assert.NoError(t, Load(bytes.NewReader(second), mem))

	assert.Equal(t, word.Word(0x1111), mem.cells[0x3000])
	assert.Equal(t, word.Word(0x9999), mem.cells[0x3001])
}
