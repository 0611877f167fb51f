package x86

import (
	"errors"
	"fmt"
	"strconv"
)

// Decode error kinds. A failed decode returns a *DecodeError that unwraps to
// one of them.
var (
	ErrUnrecognizedOpcode        = errors.New("unrecognized opcode")
	ErrUnsupportedAddressingMode = errors.New("unsupported addressing mode")
	ErrTruncatedInput            = errors.New("truncated input")
)

// DecodeError describes why the instruction at Position could not be decoded.
type DecodeError struct {
	Kind     error
	Position int    // offset of the first byte of the instruction
	Bytes    []byte // instruction bytes read before the failure
	Detail   string
}

func (e *DecodeError) Error() string {
	offset := strconv.Itoa(e.Position)
	if e.Position >= 0 {
		offset = fmt.Sprintf("0x%04x", e.Position)
	}
	if e.Detail == "" {
		return fmt.Sprintf("%s at offset %s", e.Kind, offset)
	}
	return fmt.Sprintf("%s at offset %s: %s", e.Kind, offset, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}
