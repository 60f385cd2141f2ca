// Package reg implements the machine's register file: eight general-purpose
// registers, the program counter, and the condition-code register.
package reg

import "lc3/word"

// PCStart is the program counter's value at machine start.
const PCStart = 0x3000

// Registers is the machine's register file. The zero value is not properly
// initialized (Cond would be neither N, Z, nor P); use New.
type Registers struct {
	General [8]word.Word
	PC      word.Word
	Cond    word.Flag
}

// New returns a Registers with PC at PCStart and COND set to Zero, per the
// machine's initial state. General-purpose registers start at zero.
func New() *Registers {
	return &Registers{PC: PCStart, Cond: word.Zero}
}

// Get returns general-purpose register i (0-7).
func (r *Registers) Get(i uint16) word.Word {
	return r.General[i]
}

// Set stores value in general-purpose register i (0-7). It does not touch
// the condition code; call UpdateFlags separately when the instruction
// semantics call for it.
func (r *Registers) Set(i uint16, value word.Word) {
	r.General[i] = value
}

// UpdateFlags sets COND from the value currently held in general-purpose
// register i. Only instructions that are specified to update flags should
// call this.
func (r *Registers) UpdateFlags(i uint16) {
	r.Cond = word.ConditionFlag(r.General[i])
}
