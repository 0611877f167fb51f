package nasm

import (
	"strconv"
	"strings"

	"github.com/retroenv/disasm86/internal/arch/x86"
)

// Format renders a decoded instruction as a single NASM source line
// including the trailing newline. The output only depends on the
// instruction, the raw bytes are never inspected.
func Format(ins x86.Instruction) string {
	var sb strings.Builder
	sb.WriteString(ins.Mnemonic)

	dst, src := ins.Destination, ins.Source
	if !dst.IsNil() {
		sb.WriteByte(' ')
		sb.WriteString(formatOperand(dst, needsSizeKeyword(dst, src)))
	}
	if !src.IsNil() {
		sb.WriteString(", ")
		sb.WriteString(formatOperand(src, needsSizeKeyword(src, dst)))
	}

	sb.WriteByte('\n')
	return sb.String()
}

// needsSizeKeyword returns whether the immediate operand has no register
// operand next to it that determines the access width.
func needsSizeKeyword(op, other x86.Operand) bool {
	return op.Kind == x86.OperandImmediate && other.Kind == x86.OperandMemory
}

func formatOperand(op x86.Operand, sizeKeyword bool) string {
	switch op.Kind {
	case x86.OperandRegister:
		return op.Register.String()

	case x86.OperandMemory:
		return formatMemory(op.Memory)

	case x86.OperandImmediate:
		value := strconv.Itoa(int(op.Immediate))
		if !sizeKeyword {
			return value
		}
		if op.Word {
			return "word " + value
		}
		return "byte " + value

	default:
		return ""
	}
}

func formatMemory(mem x86.Memory) string {
	if mem.Mode == x86.MemoryDirect {
		return "[" + strconv.Itoa(int(mem.Address)) + "]"
	}

	expression := mem.Base.String()
	if !mem.HasDisplacement() {
		return "[" + expression + "]"
	}
	switch {
	case mem.Displacement > 0:
		expression += " + " + strconv.Itoa(int(mem.Displacement))
	case mem.Displacement < 0:
		expression += " - " + strconv.Itoa(-int(mem.Displacement))
	}
	return "[" + expression + "]"
}
