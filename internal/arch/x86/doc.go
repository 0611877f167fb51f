// Package x86 provides the 8086 instruction decoder.
//
// # Encoding Overview
//
// 8086 instructions are 1 to 6 bytes long. The first byte carries the opcode,
// whose width differs between instruction families:
//   - 4 bits for immediate to register moves (1011wreg)
//   - 6 bits for register/memory to/from register moves (100010dw)
//   - 7 bits for immediate to register/memory and accumulator moves
//
// Most families are followed by a mod/reg/rm byte:
//
//	 7 6   5 4 3   2 1 0
//	[mod] [ reg ] [ rm  ]
//
// The mod field selects between register direct addressing and memory
// addressing with no, 8-bit or 16-bit displacement. mod=00 with rm=110 is the
// special direct address form that is followed by a 16-bit absolute address.
//
// # Register Numbering
//
// Registers are looked up in a single flat table of 16 entries. The 3-bit
// register field is combined with the word bit of the opcode as
// (w << 3) | reg, which selects the 8-bit names for w=0 and the 16-bit names
// for w=1:
//
//	index  0  1  2  3  4  5  6  7  8  9  10 11 12 13 14 15
//	name   al cl dl bl ah ch dh bh ax cx dx bx sp bp si di
//
// The numbering is the register parameter numbering of the retrogolib x86 CPU
// definition, which also provides the mod/reg/rm field split and the
// instruction mnemonics.
//
// # Decoding
//
// DecodeOne classifies the byte at the given position using an ordered opcode
// table in which the longest matching prefix wins, consumes exactly the bytes
// the encoding requires and returns the decoded Instruction together with the
// position of the next instruction. Decoding never reads past the end of the
// buffer and never modifies it.
//
// # Limitations
//
// Only the MOV family is part of the opcode table. Segment registers, prefixes
// and all other instructions are reported as unrecognized opcodes.
package x86
