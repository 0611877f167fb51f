package x86

import (
	"fmt"
	"testing"

	cpu "github.com/retroenv/retrogolib/arch/cpu/x86"
	"github.com/retroenv/retrogolib/assert"
)

func TestOpcodeTable_Order(t *testing.T) {
	opcodes := defaultOpcodes.Opcodes()
	assert.Len(t, opcodes, len(MovOpcodes))

	for i := 1; i < len(opcodes); i++ {
		assert.True(t, opcodes[i-1].Width() >= opcodes[i].Width(),
			fmt.Sprintf("opcode %s is ordered before wider opcode %s", opcodes[i-1], opcodes[i]))
	}
}

func TestOpcodeTable_LongestPrefixWins(t *testing.T) {
	broad := Opcode{Value: 0b1000_0000, Mask: 0b1100_0000, Class: ImmediateToReg, Mnemonic: "broad"}
	narrow := Opcode{Value: 0b1000_1000, Mask: 0b1111_1100, Class: RegMemToFromReg, Mnemonic: "narrow"}

	table, err := NewOpcodeTable(broad, narrow)
	assert.NoError(t, err)

	op, ok := table.Lookup(0b1000_1001)
	assert.True(t, ok)
	assert.Equal(t, "narrow", op.Mnemonic)

	op, ok = table.Lookup(0b1001_0000)
	assert.True(t, ok)
	assert.Equal(t, "broad", op.Mnemonic)

	_, ok = table.Lookup(0b0100_0000)
	assert.False(t, ok)
}

func TestOpcodeTable_Lookup(t *testing.T) {
	tests := []struct {
		name  string
		b     byte
		class OpcodeClass
		found bool
	}{
		{"register/memory", 0b1000_1011, RegMemToFromReg, true},
		{"immediate to register byte", 0b1011_0011, ImmediateToReg, true},
		{"immediate to register word", 0b1011_1111, ImmediateToReg, true},
		{"immediate to register/memory", 0b1100_0111, ImmediateToRegMem, true},
		{"memory to accumulator", 0b1010_0001, MemoryToAccumulator, true},
		{"accumulator to memory", 0b1010_0010, AccumulatorToMemory, true},
		{"unknown", 0b1111_1111, UnknownClass, false},
		{"segment register move", 0b1000_1110, UnknownClass, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := defaultOpcodes.Lookup(tt.b)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.class, op.Class)
		})
	}
}

func TestNewOpcodeTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opcodes []Opcode
	}{
		{
			name:    "missing class",
			opcodes: []Opcode{{Value: 0x80, Mask: 0xF0, Mnemonic: "mov"}},
		},
		{
			name:    "non prefix mask",
			opcodes: []Opcode{{Value: 0x80, Mask: 0b1011_0000, Class: ImmediateToReg, Mnemonic: "mov"}},
		},
		{
			name:    "empty mask",
			opcodes: []Opcode{{Value: 0, Mask: 0, Class: ImmediateToReg, Mnemonic: "mov"}},
		},
		{
			name:    "value outside of mask",
			opcodes: []Opcode{{Value: 0b1011_0001, Mask: 0xF0, Class: ImmediateToReg, Mnemonic: "mov"}},
		},
		{
			name: "duplicate",
			opcodes: []Opcode{
				{Value: 0b1011_0000, Mask: 0xF0, Class: ImmediateToReg, Mnemonic: "mov"},
				{Value: 0b1011_0000, Mask: 0xF0, Class: ImmediateToReg, Mnemonic: "other"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewOpcodeTable(tt.opcodes...)
			assert.Error(t, err)
			assert.True(t, table == nil)
		})
	}
}

func TestOpcode_String(t *testing.T) {
	op := Opcode{Value: 0b1011_0000, Mask: 0xF0, Class: ImmediateToReg, Mnemonic: "mov"}
	assert.Equal(t, 4, op.Width())
	assert.Equal(t, "mov 1011 (immediate to register)", op.String())
}

func TestMovOpcodes_Names(t *testing.T) {
	for _, op := range MovOpcodes {
		assert.Equal(t, "", op.Mnemonic)
		for b := range 256 {
			if op.Matches(byte(b)) {
				assert.Equal(t, cpu.MovName, op.Name(byte(b)), "opcode byte 0x%02x", b)
			}
		}
	}
}

func TestOpcode_NameOverride(t *testing.T) {
	op := Opcode{Value: 0b1011_0000, Mask: 0xF0, Class: ImmediateToReg, Mnemonic: "ld"}
	assert.Equal(t, "ld", op.Name(0xb1))
	assert.Equal(t, "ld 1011 (immediate to register)", op.String())
}
