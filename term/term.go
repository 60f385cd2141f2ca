// Package term adapts the host terminal for the machine: raw (non-canonical,
// no-echo) mode while the machine runs, nonblocking input polling, and
// single-byte read/write.
package term

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Terminal drives stdin/stdout in raw mode. The zero value is not usable;
// construct one with New.
type Terminal struct {
	in  *os.File
	out *bufio.Writer

	fd       int
	original *unix.Termios
}

// New returns a Terminal wired to the process's standard input and output.
func New() *Terminal {
	return &Terminal{
		in:  os.Stdin,
		out: bufio.NewWriter(os.Stdout),
		fd:  int(os.Stdin.Fd()),
	}
}

// EnterRawMode disables canonical input mode and local echo on stdin,
// remembering the prior settings so LeaveRawMode can restore them.
func (t *Terminal) EnterRawMode() error {
	original, err := unix.IoctlGetTermios(t.fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("term: getting termios: %w", err)
	}
	t.original = original

	raw := *original
	raw.Lflag &^= unix.ICANON | unix.ECHO

	if err := unix.IoctlSetTermios(t.fd, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("term: setting termios: %w", err)
	}
	return nil
}

// LeaveRawMode restores the terminal settings captured by EnterRawMode. It
// is idempotent and safe to call from a signal handler: if EnterRawMode was
// never called, it does nothing, and a repeat call re-applies the same saved
// settings.
func (t *Terminal) LeaveRawMode() {
	if t.original == nil {
		return
	}
	_ = unix.IoctlSetTermios(t.fd, unix.TCSETS, t.original)
}

// InputReady reports whether at least one byte can be read from stdin
// without blocking. It never suspends the caller.
func (t *Terminal) InputReady() bool {
	var set unix.FdSet
	fdSet(&set, t.fd)
	timeout := unix.Timeval{} // zero: poll, don't wait

	n, err := unix.Select(t.fd+1, &set, nil, nil, &timeout)
	return err == nil && n > 0
}

// ReadByte reads exactly one byte from stdin, blocking until one is
// available.
func (t *Terminal) ReadByte() (byte, error) {
	var b [1]byte
	_, err := t.in.Read(b[:])
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteByte writes a single byte to stdout. Call Flush to force delivery.
func (t *Terminal) WriteByte(b byte) error {
	return t.out.WriteByte(b)
}

// Flush forces any buffered output to stdout.
func (t *Terminal) Flush() error {
	return t.out.Flush()
}

// Poll implements memory.KeyboardPoller: a single nonblocking check for an
// available byte, consuming it if present.
func (t *Terminal) Poll() (b byte, ready bool) {
	if !t.InputReady() {
		return 0, false
	}
	v, err := t.ReadByte()
	if err != nil {
		return 0, false
	}
	return v, true
}

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}
