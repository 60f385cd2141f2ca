package vm

import "lc3/word"

// opBR — conditional branch. If the 3-bit flag mask at bits 11:9 shares a
// set bit with COND, PC += off9. A mask of 0 never branches.
func opBR(m *Machine, instr word.Word) error {
	mask := word.Flag(reg9(instr))
	off9 := word.SignExtend(instr&0x1FF, 9)
	if mask&m.Regs.Cond != 0 {
		m.Regs.PC += off9
	}
	return nil
}

// opADD — DR = SR1 + (SR2 or a sign-extended 5-bit immediate).
func opADD(m *Machine, instr word.Word) error {
	dr, sr1 := reg9(instr), reg6(instr)
	var rhs word.Word
	if (instr>>5)&1 == 1 {
		rhs = word.SignExtend(instr&0x1F, 5)
	} else {
		rhs = m.Regs.Get(reg0(instr))
	}
	m.Regs.Set(dr, m.Regs.Get(sr1)+rhs)
	m.Regs.UpdateFlags(dr)
	return nil
}

// opLD — DR = mem[PC + off9].
func opLD(m *Machine, instr word.Word) error {
	dr := reg9(instr)
	off9 := word.SignExtend(instr&0x1FF, 9)
	m.Regs.Set(dr, m.Mem.Read(m.Regs.PC+off9))
	m.Regs.UpdateFlags(dr)
	return nil
}

// opST — mem[PC + off9] = SR.
func opST(m *Machine, instr word.Word) error {
	sr := reg9(instr)
	off9 := word.SignExtend(instr&0x1FF, 9)
	m.Mem.Write(m.Regs.PC+off9, m.Regs.Get(sr))
	return nil
}

// opJSR — R7 = PC (captured before the jump), then PC = PC + off11 (JSR) or
// PC = the base register (JSRR). RET is not a JSR form; it is JMP R7.
func opJSR(m *Machine, instr word.Word) error {
	m.Regs.Set(7, m.Regs.PC)
	if (instr>>11)&1 == 1 {
		off11 := word.SignExtend(instr&0x7FF, 11)
		m.Regs.PC += off11
	} else {
		m.Regs.PC = m.Regs.Get(reg6(instr))
	}
	return nil
}

// opAND — DR = SR1 AND (SR2 or a sign-extended 5-bit immediate).
func opAND(m *Machine, instr word.Word) error {
	dr, sr1 := reg9(instr), reg6(instr)
	var rhs word.Word
	if (instr>>5)&1 == 1 {
		rhs = word.SignExtend(instr&0x1F, 5)
	} else {
		rhs = m.Regs.Get(reg0(instr))
	}
	m.Regs.Set(dr, m.Regs.Get(sr1)&rhs)
	m.Regs.UpdateFlags(dr)
	return nil
}

// opLDR — DR = mem[base register + off6].
func opLDR(m *Machine, instr word.Word) error {
	dr, base := reg9(instr), reg6(instr)
	off6 := word.SignExtend(instr&0x3F, 6)
	m.Regs.Set(dr, m.Mem.Read(m.Regs.Get(base)+off6))
	m.Regs.UpdateFlags(dr)
	return nil
}

// opSTR — mem[base register + off6] = SR.
func opSTR(m *Machine, instr word.Word) error {
	sr, base := reg9(instr), reg6(instr)
	off6 := word.SignExtend(instr&0x3F, 6)
	m.Mem.Write(m.Regs.Get(base)+off6, m.Regs.Get(sr))
	return nil
}

// opNOT — DR = bitwise NOT of SR.
func opNOT(m *Machine, instr word.Word) error {
	dr, sr := reg9(instr), reg6(instr)
	m.Regs.Set(dr, ^m.Regs.Get(sr))
	m.Regs.UpdateFlags(dr)
	return nil
}

// opLDI — DR = mem[mem[PC + off9]]: exactly two levels of indirection.
func opLDI(m *Machine, instr word.Word) error {
	dr := reg9(instr)
	off9 := word.SignExtend(instr&0x1FF, 9)
	addr := m.Mem.Read(m.Regs.PC + off9)
	m.Regs.Set(dr, m.Mem.Read(addr))
	m.Regs.UpdateFlags(dr)
	return nil
}

// opSTI — mem[mem[PC + off9]] = SR.
func opSTI(m *Machine, instr word.Word) error {
	sr := reg9(instr)
	off9 := word.SignExtend(instr&0x1FF, 9)
	addr := m.Mem.Read(m.Regs.PC + off9)
	m.Mem.Write(addr, m.Regs.Get(sr))
	return nil
}

// opJMP — PC = base register. RET is JMP with that field set to 7.
func opJMP(m *Machine, instr word.Word) error {
	m.Regs.PC = m.Regs.Get(reg6(instr))
	return nil
}

// opLEA — DR = PC + off9.
func opLEA(m *Machine, instr word.Word) error {
	dr := reg9(instr)
	off9 := word.SignExtend(instr&0x1FF, 9)
	m.Regs.Set(dr, m.Regs.PC+off9)
	m.Regs.UpdateFlags(dr)
	return nil
}

// opTRAP dispatches to the trap service on the low 8 bits of the
// instruction.
func opTRAP(m *Machine, instr word.Word) error {
	return m.Trap.Dispatch(uint16(instr & 0xFF))
}

// opInvalid handles RTI and RES, the two opcodes this ISA variant leaves
// unimplemented: both are fatal faults.
func opInvalid(m *Machine, instr word.Word) error {
	return ErrInvalidOpcode
}
