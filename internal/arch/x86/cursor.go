package x86

import (
	"encoding/binary"
)

// Cursor is a read position into an immutable byte buffer. It only moves
// forward and never past the end of the buffer.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor for the buffer starting at the given position.
// The position is clamped to the buffer bounds.
func NewCursor(buf []byte, position int) *Cursor {
	position = max(0, min(position, len(buf)))
	return &Cursor{
		buf: buf,
		pos: position,
	}
}

// Position returns the offset of the next byte to read.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// ReadByte reads the next byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, ErrTruncatedInput
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadInt8 reads the next byte as a signed value.
func (c *Cursor) ReadInt8() (int8, error) {
	b, err := c.ReadByte()
	return int8(b), err
}

// ReadUint16 reads a little endian 16-bit value.
func (c *Cursor) ReadUint16() (uint16, error) {
	if c.Remaining() < 2 {
		return 0, ErrTruncatedInput
	}
	w := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return w, nil
}

// ReadInt16 reads a little endian 16-bit value as a signed value.
func (c *Cursor) ReadInt16() (int16, error) {
	w, err := c.ReadUint16()
	return int16(w), err
}

// consumed returns a copy of the bytes between start and the cursor position.
func (c *Cursor) consumed(start int) []byte {
	start = max(0, min(start, c.pos))
	data := make([]byte, c.pos-start)
	copy(data, c.buf[start:c.pos])
	return data
}
