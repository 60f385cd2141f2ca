// Package memory implements the machine's flat 16-bit address space,
// including the memory-mapped keyboard registers.
package memory

import "lc3/word"

// Special addresses with read side effects. Writes to these addresses are
// ordinary: there is no device effect on write, only on read.
const (
	KeyboardStatus = 0xFE00 // KBSR: bit 15 set when a byte is available
	KeyboardData   = 0xFE02 // KBDR: holds the most recently polled byte
)

// KeyboardPoller performs a single nonblocking check of the host keyboard.
// It reports whether a byte was available and, if so, what it was. A Read of
// KeyboardStatus calls Poll exactly once; the call itself must not block.
type KeyboardPoller interface {
	Poll() (b byte, ready bool)
}

// Memory is the machine's 2^16-word address space. The zero value is not
// usable; construct one with New.
type Memory struct {
	cells  [1 << 16]word.Word
	poller KeyboardPoller
}

// New returns an empty Memory wired to poller for keyboard MMIO reads.
func New(poller KeyboardPoller) *Memory {
	return &Memory{poller: poller}
}

// Read returns the current cell value at address. Reading KeyboardStatus
// first performs a nonblocking poll of the keyboard: if a byte is available
// it is stored at KeyboardData and KeyboardStatus is set to 0x8000;
// otherwise KeyboardStatus is set to 0. Every other address is a plain
// lookup with no side effect.
func (m *Memory) Read(address word.Word) word.Word {
	if address == KeyboardStatus {
		if b, ready := m.poller.Poll(); ready {
			m.cells[KeyboardData] = word.Word(b)
			m.cells[KeyboardStatus] = 0x8000
		} else {
			m.cells[KeyboardStatus] = 0
		}
	}
	return m.cells[address]
}

// Write stores value at address. Writes never have side effects, even for
// KeyboardStatus or KeyboardData.
func (m *Memory) Write(address word.Word, value word.Word) {
	m.cells[address] = value
}
