package verification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/disasm86/internal/assembler/nasm"
	"github.com/retroenv/disasm86/internal/program"
	"github.com/retroenv/retrogolib/log"
)

// VerifyReassembly assembles the generated source with the external NASM
// assembler and compares the result to the decoded input bytes. The check is
// skipped with a warning if NASM is not installed.
func VerifyReassembly(ctx context.Context, logger *log.Logger, app *program.Program, source []byte) error {
	dir, err := os.MkdirTemp("", "disasm86-verify-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	asmFile := filepath.Join(dir, "output.asm")
	if err := os.WriteFile(asmFile, source, 0o600); err != nil {
		return fmt.Errorf("writing temp asm file: %w", err)
	}

	binFile := filepath.Join(dir, "output.bin")
	if err := nasm.AssembleUsingExternalApp(ctx, asmFile, binFile); err != nil {
		if errors.Is(err, nasm.ErrNotInstalled) {
			logger.Warn("Skipping reassembly check", log.Err(err))
			return nil
		}
		return fmt.Errorf("reassembling output: %w", err)
	}

	output, err := os.ReadFile(binFile)
	if err != nil {
		return fmt.Errorf("reading reassembled file: %w", err)
	}

	if err := checkBufferEqual(logger, programBytes(app), output); err != nil {
		return fmt.Errorf("reassembled output mismatch: %w", err)
	}
	return nil
}

// programBytes returns the input bytes covered by the decoded instructions.
func programBytes(app *program.Program) []byte {
	data := make([]byte, 0, app.DecodedBytes())
	for _, offset := range app.Offsets {
		data = append(data, offset.Data...)
	}
	return data
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d: %w", len(input), len(output), ErrMismatch)
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches: %w", diffs, ErrMismatch)
}
