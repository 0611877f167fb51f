// Package writer implements common assembly file writing functionality.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/disasm86/internal/program"
)

// codeColumnWidth is the width of the code column when a comment follows.
const codeColumnWidth = 30

// AssemblerWriter defines a shared interface used by the different assembler compatibility packages.
// Their constructors need to return this shared interface, having them return the actual type instead of
// the interface results in compiler errors for the constructor variable that they are assigned to.
type AssemblerWriter interface {
	Write() error
}

// Writer implements common assembly file writing functionality.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	CommentPrefix  string // prefix that starts a comment in the assembler syntax
	HexComments    bool   // output the instruction bytes as hex values in comments
	OffsetComments bool   // output the input offset of instructions in comments
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	if options.CommentPrefix == "" {
		options.CommentPrefix = ";"
	}
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// WriteCommentHeader writes the input name, size and CRC32 checksum as comments to the output.
func (w Writer) WriteCommentHeader() error {
	prefix := w.options.CommentPrefix
	if w.app.Name != "" {
		if _, err := fmt.Fprintf(w.writer, "%s Input: %s\n", prefix, w.app.Name); err != nil {
			return fmt.Errorf("writing input name: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "%s Size: %d bytes\n", prefix, w.app.Size); err != nil {
		return fmt.Errorf("writing size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "%s CRC32 checksum: %08x\n\n", prefix, w.app.Checksum); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	return nil
}

// ProcessOffsets writes the code lines of all program offsets.
func (w Writer) ProcessOffsets() error {
	for _, offset := range w.app.Offsets {
		if err := w.writeCodeLine(offset); err != nil {
			return fmt.Errorf("writing code line at offset 0x%04x: %w", offset.Address, err)
		}
	}
	return nil
}

func (w Writer) writeCodeLine(offset program.Offset) error {
	comment := w.offsetComment(offset)
	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "%s\n", offset.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "%-*s %s %s\n", codeColumnWidth, offset.Code, w.options.CommentPrefix, comment); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// offsetComment combines the enabled generated comments of the offset.
func (w Writer) offsetComment(offset program.Offset) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", offset.Address))
	}
	if w.options.HexComments && len(offset.Data) > 0 {
		parts = append(parts, fmt.Sprintf("% x", offset.Data))
	}
	return strings.Join(parts, "  ")
}
