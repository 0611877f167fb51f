package nasm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const assemblerName = "nasm"

// ErrNotInstalled is returned when the external assembler can not be found.
var ErrNotInstalled = errors.New("assembler is not installed")

// AssembleUsingExternalApp calls the external assembler to generate a flat
// binary from the given asm file.
func AssembleUsingExternalApp(ctx context.Context, asmFile, outputFile string) error {
	if _, err := exec.LookPath(assemblerName); err != nil {
		return fmt.Errorf("%s: %w", assemblerName, ErrNotInstalled)
	}

	cmd := exec.CommandContext(ctx, assemblerName, "-f", "bin", "-o", outputFile, asmFile)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("assembling file: %s: %w", strings.TrimSpace(string(out)), err)
	}

	return nil
}
