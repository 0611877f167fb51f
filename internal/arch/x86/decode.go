package x86

import (
	"fmt"

	cpu "github.com/retroenv/retrogolib/arch/cpu/x86"
)

// Decoder decodes instructions using an opcode table.
type Decoder struct {
	opcodes *OpcodeTable
}

// NewDecoder returns a decoder for the given opcode table.
func NewDecoder(opcodes *OpcodeTable) *Decoder {
	return &Decoder{
		opcodes: opcodes,
	}
}

var defaultDecoder = NewDecoder(defaultOpcodes)

// DefaultDecoder returns the decoder for the MOV opcode table.
func DefaultDecoder() *Decoder {
	return defaultDecoder
}

// DecodeOne decodes the instruction at position using the default opcode table.
// It returns the instruction and the position of the next instruction.
func DecodeOne(buffer []byte, position int) (Instruction, int, error) {
	return defaultDecoder.DecodeOne(buffer, position)
}

// DecodeOne decodes the instruction at position. On success the returned
// position is the start of the next instruction. On failure the returned
// position equals the passed position and the error is a *DecodeError.
func (d *Decoder) DecodeOne(buffer []byte, position int) (Instruction, int, error) {
	s := &decodeState{
		cursor: NewCursor(buffer, position),
		start:  position,
	}
	if position < 0 || position > len(buffer) {
		return Instruction{}, position, s.fail(ErrTruncatedInput, "position %d outside of buffer of %d bytes", position, len(buffer))
	}

	opByte, err := s.readByte("opcode")
	if err != nil {
		return Instruction{}, position, err
	}

	op, ok := d.opcodes.Lookup(opByte)
	if !ok {
		return Instruction{}, position, s.fail(ErrUnrecognizedOpcode, "bit pattern %08b", opByte)
	}
	name := op.Name(opByte)
	if name == "" {
		return Instruction{}, position, s.fail(ErrUnrecognizedOpcode, "bit pattern %08b has no instruction name", opByte)
	}

	var ins Instruction
	switch op.Class {
	case RegMemToFromReg:
		ins, err = s.decodeRegMemToFromReg(opByte)
	case ImmediateToReg:
		ins, err = s.decodeImmediateToReg(opByte)
	case ImmediateToRegMem:
		ins, err = s.decodeImmediateToRegMem(opByte)
	case MemoryToAccumulator, AccumulatorToMemory:
		ins, err = s.decodeAccumulator(opByte, op.Class)
	default:
		err = s.fail(ErrUnrecognizedOpcode, "bit pattern %08b has unsupported encoding shape %s", opByte, op.Class)
	}
	if err != nil {
		return Instruction{}, position, err
	}

	next := s.cursor.Position()
	ins.Mnemonic = name
	ins.Class = op.Class
	ins.Size = next - position
	return ins, next, nil
}

// decodeState tracks a single decode call.
type decodeState struct {
	cursor *Cursor
	start  int
}

func (s *decodeState) fail(kind error, format string, args ...any) error {
	return &DecodeError{
		Kind:     kind,
		Position: s.start,
		Bytes:    s.cursor.consumed(s.start),
		Detail:   fmt.Sprintf(format, args...),
	}
}

func (s *decodeState) readByte(field string) (byte, error) {
	b, err := s.cursor.ReadByte()
	if err != nil {
		return 0, s.fail(ErrTruncatedInput, "missing %s byte", field)
	}
	return b, nil
}

func (s *decodeState) readInt8(field string) (int8, error) {
	v, err := s.cursor.ReadInt8()
	if err != nil {
		return 0, s.fail(ErrTruncatedInput, "missing %s byte", field)
	}
	return v, nil
}

func (s *decodeState) readUint16(field string) (uint16, error) {
	v, err := s.cursor.ReadUint16()
	if err != nil {
		return 0, s.fail(ErrTruncatedInput, "missing %s bytes, %d of 2 available", field, s.cursor.Remaining())
	}
	return v, nil
}

func (s *decodeState) readInt16(field string) (int16, error) {
	v, err := s.readUint16(field)
	return int16(v), err
}

// readImmediate reads an 8-bit or 16-bit signed immediate.
func (s *decodeState) readImmediate(word bool) (Operand, error) {
	if word {
		v, err := s.readInt16("16-bit immediate")
		if err != nil {
			return Operand{}, err
		}
		return ImmediateOperand(v, true), nil
	}

	v, err := s.readInt8("8-bit immediate")
	if err != nil {
		return Operand{}, err
	}
	return ImmediateOperand(int16(v), false), nil
}

// readRegMem resolves the rm field of a mod/reg/rm byte and consumes the
// displacement or address bytes the addressing mode requires.
func (s *decodeState) readRegMem(fields cpu.ModRM, word byte) (Operand, error) {
	mode, ok := addressingModeOf(fields.Mod, fields.RM)
	if !ok {
		return Operand{}, s.fail(ErrUnsupportedAddressingMode, "mode %02b with rm %03b", fields.Mod, fields.RM)
	}

	wide := word == 1
	mem := Memory{
		Mode: mode,
		Base: EffectiveAddress(fields.RM),
	}

	switch mode {
	case RegisterDirect:
		return RegisterOperand(RegisterFromFields(word, fields.RM)), nil

	case MemoryNoDisplacement:
		return MemoryOperand(mem, wide), nil

	case MemoryDirect:
		address, err := s.readUint16("direct address")
		if err != nil {
			return Operand{}, err
		}
		mem.Base = 0
		mem.Address = address
		return MemoryOperand(mem, wide), nil

	case MemoryDisplacement8:
		disp, err := s.readInt8("8-bit displacement")
		if err != nil {
			return Operand{}, err
		}
		mem.Displacement = int16(disp)
		return MemoryOperand(mem, wide), nil

	case MemoryDisplacement16:
		disp, err := s.readInt16("16-bit displacement")
		if err != nil {
			return Operand{}, err
		}
		mem.Displacement = disp
		return MemoryOperand(mem, wide), nil

	default:
		return Operand{}, s.fail(ErrUnsupportedAddressingMode, "%s", mode)
	}
}

// decodeRegMemToFromReg decodes 100010dw mod reg rm [disp-lo] [disp-hi].
func (s *decodeState) decodeRegMemToFromReg(opByte byte) (Instruction, error) {
	direction := (opByte >> 1) & 1
	word := opByte & 1

	b, err := s.readByte("mod/reg/rm")
	if err != nil {
		return Instruction{}, err
	}
	fields := readModRM(b)

	reg := RegisterOperand(RegisterFromFields(word, fields.Reg))
	rm, err := s.readRegMem(fields, word)
	if err != nil {
		return Instruction{}, err
	}

	if direction == 1 {
		return Instruction{Destination: reg, Source: rm}, nil
	}
	return Instruction{Destination: rm, Source: reg}, nil
}

// decodeImmediateToReg decodes 1011wreg data [data].
func (s *decodeState) decodeImmediateToReg(opByte byte) (Instruction, error) {
	word := (opByte >> 3) & 1
	reg := opByte & 0b111

	imm, err := s.readImmediate(word == 1)
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Destination: RegisterOperand(RegisterFromFields(word, reg)),
		Source:      imm,
	}, nil
}

// decodeImmediateToRegMem decodes 1100011w mod 000 rm [disp-lo] [disp-hi] data [data].
func (s *decodeState) decodeImmediateToRegMem(opByte byte) (Instruction, error) {
	word := opByte & 1

	b, err := s.readByte("mod/reg/rm")
	if err != nil {
		return Instruction{}, err
	}
	fields := readModRM(b)
	if fields.Reg != 0 {
		return Instruction{}, s.fail(ErrUnrecognizedOpcode, "bit pattern %08b with reg field %03b", opByte, fields.Reg)
	}

	rm, err := s.readRegMem(fields, word)
	if err != nil {
		return Instruction{}, err
	}

	imm, err := s.readImmediate(word == 1)
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Destination: rm,
		Source:      imm,
	}, nil
}

// decodeAccumulator decodes 101000dw addr-lo addr-hi, the accumulator is the
// destination for MemoryToAccumulator and the source otherwise.
func (s *decodeState) decodeAccumulator(opByte byte, class OpcodeClass) (Instruction, error) {
	word := opByte & 1

	address, err := s.readUint16("direct address")
	if err != nil {
		return Instruction{}, err
	}

	acc := RegisterOperand(RegisterFromFields(word, 0))
	mem := MemoryOperand(Memory{Mode: MemoryDirect, Address: address}, word == 1)

	if class == MemoryToAccumulator {
		return Instruction{Destination: acc, Source: mem}, nil
	}
	return Instruction{Destination: mem, Source: acc}, nil
}
