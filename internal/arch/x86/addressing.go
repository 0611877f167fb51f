package x86

import (
	"fmt"

	cpu "github.com/retroenv/retrogolib/arch/cpu/x86"
)

// AddressingMode defines how the rm field of a mod/reg/rm byte is resolved.
type AddressingMode uint8

// Addressing modes.
const (
	RegisterDirect AddressingMode = iota
	MemoryNoDisplacement
	MemoryDisplacement8
	MemoryDisplacement16
	MemoryDirect
)

// mod field values.
const (
	modMemory        = 0b00
	modDisplacement8 = 0b01
	modDisplacement  = 0b10
	modRegister      = 0b11
)

// rmDirectAddress is the rm value that turns mod=00 into direct addressing.
const rmDirectAddress = 0b110

func (m AddressingMode) String() string {
	switch m {
	case RegisterDirect:
		return "register direct"
	case MemoryNoDisplacement:
		return "memory"
	case MemoryDisplacement8:
		return "memory with 8-bit displacement"
	case MemoryDisplacement16:
		return "memory with 16-bit displacement"
	case MemoryDirect:
		return "direct address"
	default:
		return fmt.Sprintf("addressing mode %d", uint8(m))
	}
}

// ExtraBytes returns the number of displacement or address bytes that follow
// the mod/reg/rm byte.
func (m AddressingMode) ExtraBytes() int {
	switch m {
	case MemoryDisplacement8:
		return 1
	case MemoryDisplacement16, MemoryDirect:
		return 2
	default:
		return 0
	}
}

// addressingModeOf maps the mod and rm fields to an addressing mode.
func addressingModeOf(mod, rm byte) (AddressingMode, bool) {
	switch mod {
	case modRegister:
		return RegisterDirect, true
	case modMemory:
		if rm == rmDirectAddress {
			return MemoryDirect, true
		}
		return MemoryNoDisplacement, true
	case modDisplacement8:
		return MemoryDisplacement8, true
	case modDisplacement:
		return MemoryDisplacement16, true
	default:
		return 0, false
	}
}

// readModRM splits a mod/reg/rm byte into its fields.
func readModRM(b byte) cpu.ModRM {
	var modrm cpu.ModRM
	modrm.FromByte(b)
	return modrm
}
