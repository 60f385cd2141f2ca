// Package loader reads LC-3 object images: a big-endian origin word
// followed by a run of big-endian payload words, into a machine's memory.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"lc3/word"
)

// ErrImageTruncated is returned when a stream has fewer than two bytes
// available for the origin word.
var ErrImageTruncated = errors.New("loader: image truncated before origin")

// ErrImageOpen is returned by LoadFile when the named image cannot be
// opened. Use errors.Is to detect it; use errors.As against *os.PathError
// for the underlying cause.
var ErrImageOpen = errors.New("loader: image could not be opened")

// Writer is the subset of memory.Memory the loader depends on.
type Writer interface {
	Write(address, value word.Word)
}

// Load reads an origin word followed by payload words from r, both
// big-endian, and writes the payload at consecutive addresses starting at
// the origin. At most 0x10000-origin words are loaded; any remaining bytes
// are ignored, as is a lone trailing byte that can't form a full word.
//
// Load does not zero memory outside the loaded range and does not relocate;
// loading a second image after the first simply overwrites any overlapping
// addresses.
func Load(r io.Reader, mem Writer) error {
	var originBytes [2]byte
	n, err := io.ReadFull(r, originBytes[:])
	if n < 2 {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return ErrImageTruncated
		}
		return fmt.Errorf("loader: reading origin: %w", err)
	}

	origin := binary.BigEndian.Uint16(originBytes[:])
	addr := uint32(origin)

	for addr < 0x10000 {
		var buf [2]byte
		n, err := io.ReadFull(r, buf[:])
		if n < 2 {
			break
		}
		mem.Write(word.Word(addr), binary.BigEndian.Uint16(buf[:]))
		addr++
		if err != nil {
			break
		}
	}

	return nil
}

// LoadFile opens path and loads it into mem via Load. The returned error
// wraps the os.Open failure so callers can distinguish "could not open"
// from malformed content using errors.Is/errors.As against the wrapped
// *os.PathError.
func LoadFile(path string, mem Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrImageOpen, path, err)
	}
	defer f.Close()

	return Load(f, mem)
}
