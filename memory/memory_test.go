package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakePoller lets tests script a sequence of keyboard polls.
type fakePoller struct {
	calls int
	bytes []byte // ready iff calls-1 < len(bytes)
}

func (p *fakePoller) Poll() (byte, bool) {
	i := p.calls
	p.calls++
	if i < len(p.bytes) {
		return p.bytes[i], true
	}
	return 0, false
}

func TestReadWriteOrdinaryAddress(t *testing.T) {
	m := New(&fakePoller{})
	assert.Equal(t, uint16(0), m.Read(0x3000))

	m.Write(0x3000, 0x1234)
	assert.Equal(t, uint16(0x1234), m.Read(0x3000))

	// a read has no side effect: reading twice returns the same value
	assert.Equal(t, uint16(0x1234), m.Read(0x3000))
}

func TestKeyboardMMIOReadByteAvailable(t *testing.T) {
	m := New(&fakePoller{bytes: []byte{'A'}})

	status := m.Read(KeyboardStatus)
	assert.Equal(t, uint16(0x8000), status)
	assert.Equal(t, uint16('A'), m.Read(KeyboardData))
}

func TestKeyboardMMIOReadNoByteAvailable(t *testing.T) {
	m := New(&fakePoller{})

	status := m.Read(KeyboardStatus)
	assert.Equal(t, uint16(0), status)
}

func TestKeyboardMMIOWriteHasNoDeviceEffect(t *testing.T) {
	m := New(&fakePoller{bytes: []byte{'X'}})

	m.Write(KeyboardStatus, 0xBEEF)
	m.Write(KeyboardData, 0xBEEF)
	// Neither write polled the keyboard: the data register still holds the
	// written value, not the pending 'X'.
	assert.Equal(t, uint16(0xBEEF), m.Read(KeyboardData))
	// Only a read of the status register polls, replacing the written value.
	assert.Equal(t, uint16(0x8000), m.Read(KeyboardStatus))
}

func TestKeyboardPollIsPerRead(t *testing.T) {
	p := &fakePoller{bytes: []byte{'A', 'B'}}
	m := New(p)

	assert.Equal(t, uint16(0x8000), m.Read(KeyboardStatus))
	assert.Equal(t, uint16('A'), m.Read(KeyboardData))

	assert.Equal(t, uint16(0x8000), m.Read(KeyboardStatus))
	assert.Equal(t, uint16('B'), m.Read(KeyboardData))

	assert.Equal(t, uint16(0), m.Read(KeyboardStatus))
	assert.Equal(t, 3, p.calls)
}
