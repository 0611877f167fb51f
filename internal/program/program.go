// Package program represents a decoded 8086 program.
package program

import (
	"hash/crc32"

	"github.com/retroenv/disasm86/internal/arch/x86"
)

// Offset defines a decoded instruction of the program.
type Offset struct {
	Address     int    // offset of the first instruction byte in the input
	Data        []byte // all bytes that are part of the instruction
	Instruction x86.Instruction

	Code string // asm output of this instruction, without line ending
}

// Program defines a decoded 8086 program in input order.
type Program struct {
	Name     string // name of the input, used for comments only
	Size     int    // size of the input in bytes
	Checksum uint32 // CRC32 checksum of the input

	Offsets []Offset
}

// New creates a new program for the given input data.
func New(name string, data []byte) *Program {
	return &Program{
		Name:     name,
		Size:     len(data),
		Checksum: crc32.ChecksumIEEE(data),
	}
}

// Add appends a decoded instruction to the program.
func (p *Program) Add(offset Offset) {
	p.Offsets = append(p.Offsets, offset)
}

// DecodedBytes returns the number of input bytes covered by the decoded instructions.
func (p *Program) DecodedBytes() int {
	var size int
	for _, offset := range p.Offsets {
		size += len(offset.Data)
	}
	return size
}
