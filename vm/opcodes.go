package vm

import "lc3/word"

// instruction implements one opcode's semantics against the machine state.
// The PC has already been advanced past the current instruction word by the
// time an instruction runs, so PC-relative math here uses the post-fetch
// value directly.
type instruction func(m *Machine, instr word.Word) error

// opcodeTable dispatches on the top 4 bits of the instruction word. Index
// order matches the ISA's opcode numbering (0=BR .. 15=TRAP).
var opcodeTable = [16]instruction{
	0:  opBR,
	1:  opADD,
	2:  opLD,
	3:  opST,
	4:  opJSR,
	5:  opAND,
	6:  opLDR,
	7:  opSTR,
	8:  opInvalid, // RTI: reserved for interrupt return, unimplemented here
	9:  opNOT,
	10: opLDI,
	11: opSTI,
	12: opJMP,
	13: opInvalid, // RES: reserved, unimplemented here
	14: opLEA,
	15: opTRAP,
}
