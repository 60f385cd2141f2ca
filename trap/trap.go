// Package trap implements the six LC-3 service calls dispatched by the
// TRAP instruction, bridging register state, memory, and the host terminal.
package trap

import (
	"fmt"

	"lc3/memory"
	"lc3/reg"
	"lc3/word"
)

// Recognized trap vectors, matching the low 8 bits of a TRAP instruction.
const (
	GETC  = 0x20
	OUT   = 0x21
	PUTS  = 0x22
	IN    = 0x23
	PUTSP = 0x24
	HALT  = 0x25
)

// Terminal is the subset of term.Terminal the trap service depends on.
// Declaring it here (rather than depending on the concrete type) lets tests
// exercise the trap vector table against a fake.
type Terminal interface {
	ReadByte() (byte, error)
	WriteByte(b byte) error
	Flush() error
}

// Service implements the trap vector table. Unrecognized vectors are a
// silent no-op, matching the reference implementation.
type Service struct {
	Regs *reg.Registers
	Mem  *memory.Memory
	Term Terminal

	// halted is set by HALT and observed by the executor between cycles.
	halted *bool
}

// New returns a Service wired to the given register file, memory, terminal,
// and the executor's halt flag.
func New(regs *reg.Registers, mem *memory.Memory, terminal Terminal, halted *bool) *Service {
	return &Service{Regs: regs, Mem: mem, Term: terminal, halted: halted}
}

// Dispatch runs the service call named by vector (the low 8 bits of a TRAP
// instruction). Unrecognized vectors are ignored.
func (s *Service) Dispatch(vector uint16) error {
	switch vector {
	case GETC:
		return s.getc()
	case OUT:
		return s.out()
	case PUTS:
		return s.puts()
	case IN:
		return s.in()
	case PUTSP:
		return s.putsp()
	case HALT:
		return s.halt()
	default:
		return nil
	}
}

// getc blocks for one byte from stdin, stores it zero-extended in R0 with
// no echo, and updates flags on R0. End-of-input is reported to the guest
// as 0xFFFF, matching the C host's getchar() -> -1 -> uint16_t cast.
func (s *Service) getc() error {
	b, err := s.Term.ReadByte()
	if err != nil {
		s.Regs.Set(0, 0xFFFF)
	} else {
		s.Regs.Set(0, word.Word(b))
	}
	s.Regs.UpdateFlags(0)
	return nil
}

// out writes the low byte of R0 to stdout and flushes.
func (s *Service) out() error {
	if err := s.Term.WriteByte(byte(s.Regs.Get(0))); err != nil {
		return fmt.Errorf("trap: OUT: %w", err)
	}
	return s.Term.Flush()
}

// puts writes the low byte of each successive memory word starting at the
// address in R0, stopping before a word of 0x0000.
func (s *Service) puts() error {
	addr := s.Regs.Get(0)
	for {
		v := s.Mem.Read(addr)
		if v == 0 {
			break
		}
		if err := s.Term.WriteByte(byte(v)); err != nil {
			return fmt.Errorf("trap: PUTS: %w", err)
		}
		addr++
	}
	return s.Term.Flush()
}

// in prompts, reads and echoes one byte, stores it zero-extended in R0, and
// updates flags on R0.
func (s *Service) in() error {
	prompt := "Enter a character: "
	for i := 0; i < len(prompt); i++ {
		if err := s.Term.WriteByte(prompt[i]); err != nil {
			return fmt.Errorf("trap: IN: %w", err)
		}
	}

	b, err := s.Term.ReadByte()
	if err != nil {
		s.Regs.Set(0, 0xFFFF)
		s.Regs.UpdateFlags(0)
		return s.Term.Flush()
	}

	if err := s.Term.WriteByte(b); err != nil {
		return fmt.Errorf("trap: IN: %w", err)
	}
	if err := s.Term.Flush(); err != nil {
		return err
	}

	s.Regs.Set(0, word.Word(b))
	s.Regs.UpdateFlags(0)
	return nil
}

// putsp writes packed characters starting at the address in R0: the low
// byte, then (if nonzero) the high byte of each word, stopping before a
// word of 0x0000.
func (s *Service) putsp() error {
	addr := s.Regs.Get(0)
	for {
		v := s.Mem.Read(addr)
		if v == 0 {
			break
		}
		lo := byte(v)
		hi := byte(v >> 8)
		if err := s.Term.WriteByte(lo); err != nil {
			return fmt.Errorf("trap: PUTSP: %w", err)
		}
		if hi != 0 {
			if err := s.Term.WriteByte(hi); err != nil {
				return fmt.Errorf("trap: PUTSP: %w", err)
			}
		}
		addr++
	}
	return s.Term.Flush()
}

// halt writes the shutdown banner and sets the executor's halt flag.
func (s *Service) halt() error {
	const banner = "Machine halted!\n"
	for i := 0; i < len(banner); i++ {
		if err := s.Term.WriteByte(banner[i]); err != nil {
			return fmt.Errorf("trap: HALT: %w", err)
		}
	}
	if err := s.Term.Flush(); err != nil {
		return err
	}
	*s.halted = true
	return nil
}
