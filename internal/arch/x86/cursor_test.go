package x86

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCursor(t *testing.T) {
	c := NewCursor([]byte{0x01, 0xfe, 0x34, 0x12, 0xff}, 0)
	assert.Equal(t, 5, c.Remaining())

	b, err := c.ReadByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	i8, err := c.ReadInt8()
	assert.NoError(t, err)
	assert.Equal(t, int8(-2), i8)

	w, err := c.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), w)
	assert.Equal(t, 4, c.Position())

	_, err = c.ReadInt16()
	assert.True(t, errors.Is(err, ErrTruncatedInput))
	assert.Equal(t, 4, c.Position(), "failed read must not advance the cursor")

	_, err = c.ReadByte()
	assert.NoError(t, err)
	_, err = c.ReadByte()
	assert.True(t, errors.Is(err, ErrTruncatedInput))
	assert.Equal(t, 5, c.Position())
	assert.Equal(t, 0, c.Remaining())
}

func TestNewCursor_ClampsPosition(t *testing.T) {
	data := []byte{0x01, 0x02}
	assert.Equal(t, 2, NewCursor(data, 10).Position())
	assert.Equal(t, 0, NewCursor(data, -3).Position())
}
