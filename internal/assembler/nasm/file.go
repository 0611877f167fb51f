// Package nasm provides the NASM assembler file writer implementation.
package nasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/disasm86/internal/options"
	"github.com/retroenv/disasm86/internal/program"
	"github.com/retroenv/disasm86/internal/writer"
)

// Header is written at the start of every generated file to select 16-bit
// code generation in NASM.
const Header = "bits 16\n\n"

// FileWriter writes NASM assembly files.
type FileWriter struct {
	app        *program.Program
	options    options.Disassembler
	mainWriter io.Writer
	writer     *writer.Writer
}

// New creates a new NASM file writer.
func New(app *program.Program, options options.Disassembler, mainWriter io.Writer) writer.AssemblerWriter {
	opts := writer.Options{
		CommentPrefix:  ";",
		HexComments:    options.HexComments,
		OffsetComments: options.OffsetComments,
	}
	return &FileWriter{
		app:        app,
		options:    options,
		mainWriter: mainWriter,
		writer:     writer.New(app, mainWriter, opts),
	}
}

// Write writes the NASM assembly file.
func (f FileWriter) Write() error {
	if f.options.HeaderComments {
		if err := f.writer.WriteCommentHeader(); err != nil {
			return fmt.Errorf("writing comment header: %w", err)
		}
	}

	if _, err := fmt.Fprint(f.mainWriter, Header); err != nil {
		return fmt.Errorf("writing bits header: %w", err)
	}

	for i := range f.app.Offsets {
		offset := &f.app.Offsets[i]
		offset.Code = strings.TrimSuffix(Format(offset.Instruction), "\n")
	}

	if err := f.writer.ProcessOffsets(); err != nil {
		return fmt.Errorf("writing instructions: %w", err)
	}
	return nil
}
