package x86

// Instruction is a decoded instruction. It is created by a single decode call
// and not modified afterwards.
type Instruction struct {
	Mnemonic    string
	Class       OpcodeClass
	Destination Operand
	Source      Operand
	Size        int // number of bytes the encoding consumed
}

// IsNil returns true if the instruction is not set.
func (i Instruction) IsNil() bool {
	return i.Mnemonic == ""
}
