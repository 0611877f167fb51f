package x86

// OperandKind defines the variant of an operand.
type OperandKind uint8

// Operand kinds.
const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandMemory
	OperandImmediate
)

// Memory describes a memory operand.
type Memory struct {
	Mode         AddressingMode
	Base         EffectiveAddress // unused for MemoryDirect
	Displacement int16            // set for MemoryDisplacement8 and MemoryDisplacement16
	Address      uint16           // set for MemoryDirect
}

// HasDisplacement returns whether the memory operand was encoded with a
// displacement, a zero displacement included.
func (m Memory) HasDisplacement() bool {
	return m.Mode == MemoryDisplacement8 || m.Mode == MemoryDisplacement16
}

// Operand is a decoded instruction operand. Only the field matching Kind is
// meaningful.
type Operand struct {
	Kind      OperandKind
	Register  Register
	Memory    Memory
	Immediate int16
	Word      bool // access width, 16-bit if set
}

// RegisterOperand returns a register operand.
func RegisterOperand(reg Register) Operand {
	return Operand{
		Kind:     OperandRegister,
		Register: reg,
		Word:     reg.Is16Bit(),
	}
}

// MemoryOperand returns a memory operand.
func MemoryOperand(mem Memory, word bool) Operand {
	return Operand{
		Kind:   OperandMemory,
		Memory: mem,
		Word:   word,
	}
}

// ImmediateOperand returns an immediate operand.
func ImmediateOperand(value int16, word bool) Operand {
	return Operand{
		Kind:      OperandImmediate,
		Immediate: value,
		Word:      word,
	}
}

// IsNil returns true if the operand is not set.
func (o Operand) IsNil() bool {
	return o.Kind == OperandNone
}
