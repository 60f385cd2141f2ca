// Package vm implements the LC-3 executor: the register file owner, the
// fetch-decode-execute loop, and the opcode dispatcher.
package vm

import (
	"errors"
	"fmt"

	"lc3/memory"
	"lc3/reg"
	"lc3/trap"
	"lc3/word"
)

// ErrInvalidOpcode is returned by Run when the fetched instruction decodes
// to RTI or RES, the two opcodes this ISA variant leaves unimplemented.
var ErrInvalidOpcode = errors.New("vm: invalid opcode")

// Machine owns the register file, memory, halt flag, and trap service, and
// runs the fetch-decode-execute loop.
type Machine struct {
	Regs   *reg.Registers
	Mem    *memory.Memory
	Trap   *trap.Service
	Halted bool
}

// New returns a Machine wired to mem for storage and terminal for trap I/O.
// Registers start at their documented initial state (see reg.New).
func New(mem *memory.Memory, terminal trap.Terminal) *Machine {
	m := &Machine{
		Regs: reg.New(),
		Mem:  mem,
	}
	m.Trap = trap.New(m.Regs, mem, terminal, &m.Halted)
	return m
}

// Run executes instructions until HALT sets the halt flag or a fault
// occurs. A fault (invalid opcode) is returned as an error; a clean halt
// returns nil.
func (m *Machine) Run() error {
	for !m.Halted {
		if err := m.step(); err != nil {
			return err
		}
	}
	return nil
}

// step fetches the instruction at PC, advances PC (modulo 2^16, via uint16
// wraparound), and dispatches on the top-nibble opcode. PC-relative
// operations inside the dispatched instruction see the post-increment PC,
// per the ISA's post-increment semantics.
func (m *Machine) step() error {
	instr := m.Mem.Read(m.Regs.PC)
	m.Regs.PC++

	opcode := instr >> 12
	fn := opcodeTable[opcode]
	err := fn(m, instr)
	if err == nil {
		return nil
	}
	return fmt.Errorf("vm: at pc=%#04x, opcode=%#x: %w", m.Regs.PC-1, opcode, err)
}

// reg9 extracts the 3-bit register field at bit position 9 (DR/SR0).
func reg9(instr word.Word) word.Word { return (instr >> 9) & 0x7 }

// reg6 extracts the 3-bit register field at bit position 6 (SR1/base).
func reg6(instr word.Word) word.Word { return (instr >> 6) & 0x7 }

// reg0 extracts the 3-bit register field at bit position 0 (SR2).
func reg0(instr word.Word) word.Word { return instr & 0x7 }
