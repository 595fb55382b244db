// Package storage provides a small buffered reader used by the disk image
// packages to pull fixed-size binary records out of a byte stream without
// each caller re-implementing bounds checks and little-endian decoding.
package storage

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Reader wraps an io.Reader with the handful of operations the disk image
// parsers need: reading whole structures via encoding/binary, peeking at a
// single byte to sniff a format, and reading a fixed-size run of bytes.
type Reader struct {
	r   *bufio.Reader
	pos int64
}

// NewReader wraps r for use by the disk image parsers.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 32768)}
}

// NewReaderFromBytes wraps an in-memory image so the disk package can share
// its parsing code between file-backed and buffer-backed sources.
func NewReaderFromBytes(data []byte) *Reader {
	return NewReader(&byteSliceReader{data: data})
}

// Read implements io.Reader so *Reader can be passed to binary.Read.
func (s *Reader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.pos += int64(n)
	return n, err
}

// ReadByte reads a single byte without disturbing alignment for the next
// multi-byte read.
func (s *Reader) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.pos++
	return b, nil
}

// PeekByte returns the next byte without consuming it. Used to sniff the
// EDSK 'E' marker before committing to a parse path.
func (s *Reader) PeekByte() (byte, error) {
	b, err := s.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBytes reads exactly n bytes, returning an error if the stream is
// exhausted first.
func (s *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, errors.Wrapf(err, "error reading %d bytes", n)
	}
	return buf, nil
}

// ReadUint16LE reads a little-endian 16-bit word.
func (s *Reader) ReadUint16LE() (uint16, error) {
	buf, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// Position returns the number of bytes consumed so far.
func (s *Reader) Position() int64 {
	return s.pos
}

// byteSliceReader adapts a byte slice to io.Reader without an extra copy.
type byteSliceReader struct {
	data []byte
	off  int
}

func (b *byteSliceReader) Read(p []byte) (int, error) {
	if b.off >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.off:])
	b.off += n
	return n, nil
}
