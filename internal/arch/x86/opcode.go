package x86

import (
	"fmt"
	"math/bits"
	"slices"

	cpu "github.com/retroenv/retrogolib/arch/cpu/x86"
)

// OpcodeClass defines the encoding shape of an opcode. The shape determines
// which fields follow the opcode byte and how they map to operands.
type OpcodeClass uint8

// Encoding shapes.
const (
	UnknownClass        OpcodeClass = iota
	RegMemToFromReg                 // 100010dw mod reg rm [disp]
	ImmediateToReg                  // 1011wreg data [data]
	ImmediateToRegMem               // 1100011w mod 000 rm [disp] data [data]
	MemoryToAccumulator             // 1010000w addr-lo addr-hi
	AccumulatorToMemory             // 1010001w addr-lo addr-hi
)

func (c OpcodeClass) String() string {
	switch c {
	case RegMemToFromReg:
		return "register/memory to/from register"
	case ImmediateToReg:
		return "immediate to register"
	case ImmediateToRegMem:
		return "immediate to register/memory"
	case MemoryToAccumulator:
		return "memory to accumulator"
	case AccumulatorToMemory:
		return "accumulator to memory"
	default:
		return "unknown"
	}
}

// Opcode is an entry of the opcode table. A byte b belongs to the opcode if
// b&Mask == Value. Mask must be a prefix mask, its set bits are the leading
// bits of the byte.
type Opcode struct {
	Value    byte
	Mask     byte
	Class    OpcodeClass
	Mnemonic string // overrides the instruction set name if set
}

// Name returns the mnemonic for the opcode byte b. Without an explicit
// Mnemonic the name of the 8086 instruction set definition for b is used.
func (o Opcode) Name(b byte) string {
	if o.Mnemonic != "" {
		return o.Mnemonic
	}
	info, ok := cpu.GetOpcodeInfo(b)
	if !ok {
		return ""
	}
	return info.Instruction.Name
}

// Width returns the number of opcode bits.
func (o Opcode) Width() int {
	return bits.OnesCount8(o.Mask)
}

// Matches returns whether the byte starts with the opcode bit pattern.
func (o Opcode) Matches(b byte) bool {
	return b&o.Mask == o.Value
}

func (o Opcode) String() string {
	return fmt.Sprintf("%s %0*b (%s)", o.Name(o.Value), o.Width(), o.Value>>(8-o.Width()), o.Class)
}

// OpcodeTable is an ordered list of opcodes. Entries are ordered by descending
// prefix width so that the longest matching prefix always wins.
type OpcodeTable struct {
	opcodes []Opcode
}

// NewOpcodeTable returns an opcode table for the given opcodes. The entries
// are validated and ordered widest prefix first, entries of the same width
// keep their given order.
func NewOpcodeTable(opcodes ...Opcode) (*OpcodeTable, error) {
	ordered := slices.Clone(opcodes)
	for _, op := range ordered {
		if err := validateOpcode(op); err != nil {
			return nil, err
		}
	}

	slices.SortStableFunc(ordered, func(a, b Opcode) int {
		return b.Width() - a.Width()
	})

	for i, a := range ordered {
		for _, b := range ordered[i+1:] {
			if a.Mask == b.Mask && a.Value == b.Value {
				return nil, fmt.Errorf("duplicate opcode %s and %s", a, b)
			}
		}
	}

	return &OpcodeTable{opcodes: ordered}, nil
}

func mustOpcodeTable(opcodes ...Opcode) *OpcodeTable {
	table, err := NewOpcodeTable(opcodes...)
	if err != nil {
		panic(err)
	}
	return table
}

func validateOpcode(op Opcode) error {
	width := op.Width()
	name := op.Name(op.Value)
	switch {
	case name == "":
		return fmt.Errorf("opcode %08b without mnemonic", op.Value)
	case op.Class == UnknownClass:
		return fmt.Errorf("opcode %s has no encoding shape", name)
	case width == 0 || op.Mask != ^(byte(0xFF)>>width):
		return fmt.Errorf("opcode %s mask %08b is not a prefix mask", name, op.Mask)
	case op.Value&^op.Mask != 0:
		return fmt.Errorf("opcode %s value %08b has bits outside of mask %08b", name, op.Value, op.Mask)
	}
	return nil
}

// Lookup returns the first opcode whose prefix matches the byte.
func (t *OpcodeTable) Lookup(b byte) (Opcode, bool) {
	for _, op := range t.opcodes {
		if op.Matches(b) {
			return op, true
		}
	}
	return Opcode{}, false
}

// Opcodes returns the table entries in lookup order.
func (t *OpcodeTable) Opcodes() []Opcode {
	return slices.Clone(t.opcodes)
}

// MovOpcodes contains the supported MOV encodings. The mnemonics are taken
// from the instruction set definition.
var MovOpcodes = []Opcode{
	{Value: 0b1000_1000, Mask: 0b1111_1100, Class: RegMemToFromReg},
	{Value: 0b1011_0000, Mask: 0b1111_0000, Class: ImmediateToReg},
	{Value: 0b1100_0110, Mask: 0b1111_1110, Class: ImmediateToRegMem},
	{Value: 0b1010_0000, Mask: 0b1111_1110, Class: MemoryToAccumulator},
	{Value: 0b1010_0010, Mask: 0b1111_1110, Class: AccumulatorToMemory},
}

var defaultOpcodes = mustOpcodeTable(MovOpcodes...)
