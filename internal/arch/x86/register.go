package x86

import (
	cpu "github.com/retroenv/retrogolib/arch/cpu/x86"
)

// Register is an index into the flat register table.
//
// Indexes 0-7 are the 8-bit registers and 8-15 the 16-bit registers, the same
// 3-bit register field therefore selects al or ax, cl or cx and so on depending
// on the word bit. The numbering matches the CPU register parameters, so the
// names come from the instruction set definition.
type Register = cpu.RegisterParam

// Register table indexes.
const (
	AL = cpu.RegAL
	CL = cpu.RegCL
	DL = cpu.RegDL
	BL = cpu.RegBL
	AH = cpu.RegAH
	CH = cpu.RegCH
	DH = cpu.RegDH
	BH = cpu.RegBH
	AX = cpu.RegAX
	CX = cpu.RegCX
	DX = cpu.RegDX
	BX = cpu.RegBX
	SP = cpu.RegSP
	BP = cpu.RegBP
	SI = cpu.RegSI
	DI = cpu.RegDI
)

// RegisterFromFields returns the register encoded by a 3-bit register field
// and the word bit of the opcode, using the lookup rule (w << 3) | reg.
func RegisterFromFields(word, reg byte) Register {
	return AL + Register((word&1)<<3|reg&0b111)
}

// EffectiveAddress is the rm field of a memory operand, selecting the
// base/index register combination the address is calculated from.
type EffectiveAddress uint8

var effectiveAddressExpressions = [8]string{
	"bx + si",
	"bx + di",
	"bp + si",
	"bp + di",
	"si",
	"di",
	"bp",
	"bx",
}

// String returns the address expression without brackets.
func (e EffectiveAddress) String() string {
	return effectiveAddressExpressions[e&0b111]
}
