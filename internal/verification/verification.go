// Package verification verifies the decoded instructions against an independent decoder.
package verification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/disasm86/internal/arch/x86"
	"github.com/retroenv/disasm86/internal/program"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/arch/x86/x86asm"
)

// decodeMode selects 16-bit real mode decoding in x86asm.
const decodeMode = 16

// maxLoggedMismatches limits the number of mismatches that are logged in detail.
const maxLoggedMismatches = 10

// ErrMismatch is returned when the independent decoder disagrees with a decoded instruction.
var ErrMismatch = errors.New("instruction mismatch")

// VerifyProgram decodes the bytes of every instruction of the program again
// using x86asm and compares length, mnemonic and operand kinds.
func VerifyProgram(logger *log.Logger, app *program.Program) error {
	var mismatches int
	for _, offset := range app.Offsets {
		err := verifyOffset(offset)
		if err == nil {
			continue
		}

		mismatches++
		if mismatches <= maxLoggedMismatches {
			logger.Error("Instruction mismatch",
				log.Hex("offset", offset.Address),
				log.String("bytes", fmt.Sprintf("% x", offset.Data)),
				log.Err(err))
		}
	}

	if mismatches == 0 {
		logger.Debug("Verified instructions", log.Int("count", len(app.Offsets)))
		return nil
	}
	return fmt.Errorf("%d of %d instructions: %w", mismatches, len(app.Offsets), ErrMismatch)
}

func verifyOffset(offset program.Offset) error {
	inst, err := x86asm.Decode(offset.Data, decodeMode)
	if err != nil {
		return fmt.Errorf("decoding with x86asm: %w", err)
	}

	ins := offset.Instruction
	if inst.Len != ins.Size {
		return fmt.Errorf("length %d differs from expected %d", ins.Size, inst.Len)
	}

	expectedName := strings.ToLower(inst.Op.String())
	if ins.Mnemonic != expectedName {
		return fmt.Errorf("mnemonic '%s' differs from expected '%s'", ins.Mnemonic, expectedName)
	}

	operands := []x86.Operand{ins.Destination, ins.Source}
	for i, op := range operands {
		if err := compareOperand(op, inst.Args[i]); err != nil {
			return fmt.Errorf("operand %d: %w", i+1, err)
		}
	}
	return nil
}

func compareOperand(op x86.Operand, arg x86asm.Arg) error {
	switch a := arg.(type) {
	case nil:
		if !op.IsNil() {
			return errors.New("unexpected operand")
		}

	case x86asm.Reg:
		if op.Kind != x86.OperandRegister {
			return fmt.Errorf("expected register %s", strings.ToLower(a.String()))
		}
		expected := strings.ToLower(a.String())
		if op.Register.String() != expected {
			return fmt.Errorf("register %s differs from expected %s", op.Register, expected)
		}

	case x86asm.Mem:
		if op.Kind != x86.OperandMemory {
			return errors.New("expected memory operand")
		}

	case x86asm.Imm:
		if op.Kind != x86.OperandImmediate {
			return errors.New("expected immediate operand")
		}

	default:
		return fmt.Errorf("unsupported operand type %T", arg)
	}
	return nil
}
