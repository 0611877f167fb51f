// Package disasm implements the 8086 decode loop.
package disasm

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/disasm86/internal/arch/x86"
	"github.com/retroenv/disasm86/internal/options"
	"github.com/retroenv/disasm86/internal/program"
	"github.com/retroenv/disasm86/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// FileWriterConstructor creates the assembler specific writer for a decoded program.
type FileWriterConstructor func(app *program.Program, options options.Disassembler,
	mainWriter io.Writer) writer.AssemblerWriter

// decoder defines the minimal interface needed from the instruction decoder.
type decoder interface {
	// DecodeOne decodes the instruction at position and returns the position of the next instruction.
	DecodeOne(buffer []byte, position int) (x86.Instruction, int, error)
}

// Disasm implements a disassembler.
type Disasm struct {
	decoder decoder
	logger  *log.Logger
	options options.Disassembler

	name string // name of the input, used for comments
	data []byte // read-only input buffer

	fileWriterConstructor FileWriterConstructor
}

// New creates a new disassembler for the given input data.
func New(logger *log.Logger, name string, data []byte,
	options options.Disassembler, fileWriterConstructor FileWriterConstructor) *Disasm {

	return &Disasm{
		decoder:               x86.DefaultDecoder(),
		logger:                logger,
		options:               options,
		name:                  name,
		data:                  data,
		fileWriterConstructor: fileWriterConstructor,
	}
}

// SetDecoder replaces the instruction decoder, for example to use a custom opcode table.
func (dis *Disasm) SetDecoder(decoder *x86.Decoder) {
	dis.decoder = decoder
}

// Process decodes the input and writes the generated assembly to mainWriter.
// Nothing is written if decoding fails.
func (dis *Disasm) Process(ctx context.Context, mainWriter io.Writer) (*program.Program, error) {
	app, err := dis.Decode(ctx)
	if err != nil {
		return nil, err
	}

	fileWriter := dis.fileWriterConstructor(app, dis.options, mainWriter)
	if err = fileWriter.Write(); err != nil {
		return nil, fmt.Errorf("writing app to file: %w", err)
	}
	return app, nil
}

// Decode decodes all instructions of the input in order. It stops at the
// first instruction that can not be decoded and returns its error, the
// instructions decoded until then are discarded.
func (dis *Disasm) Decode(ctx context.Context) (*program.Program, error) {
	app := program.New(dis.name, dis.data)

	for pos := 0; pos < len(dis.data); {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("decoding cancelled: %w", err)
		}

		ins, next, err := dis.decoder.DecodeOne(dis.data, pos)
		if err != nil {
			dis.logger.Debug("Decoding failed",
				log.Hex("offset", pos),
				log.Int("decoded", len(app.Offsets)),
				log.Err(err))
			return nil, fmt.Errorf("decoding instruction: %w", err)
		}

		app.Add(program.Offset{
			Address:     pos,
			Data:        dis.data[pos:next],
			Instruction: ins,
		})
		pos = next
	}

	dis.logger.Debug("Decoded instructions",
		log.Int("count", len(app.Offsets)),
		log.Int("bytes", app.DecodedBytes()))
	return app, nil
}
