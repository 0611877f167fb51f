// Package pipeline orchestrates the disassembly workflow stages.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/retroenv/disasm86/internal/assembler/nasm"
	"github.com/retroenv/disasm86/internal/disasm"
	"github.com/retroenv/disasm86/internal/loader"
	"github.com/retroenv/disasm86/internal/options"
	"github.com/retroenv/disasm86/internal/program"
	"github.com/retroenv/disasm86/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete disassembly workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new disassembly pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(logger),
	}
}

// Execute runs the complete disassembly pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler, writer io.Writer) (*program.Program, error) {
	data, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}

	return p.ExecuteWithData(ctx, data, opts, disasmOpts, writer)
}

// ExecuteWithData runs the disassembly pipeline with input data that is already in memory.
// This is useful for testing and programmatic usage. The writer receives output
// before verification runs, callers that must not persist unverified output
// should pass a buffer.
func (p *Pipeline) ExecuteWithData(ctx context.Context, data []byte, opts options.Program,
	disasmOpts options.Disassembler, writer io.Writer) (*program.Program, error) {

	p.printInfo(opts, data)

	// Keep a copy of the generated source for the reassembly check
	var source bytes.Buffer
	if opts.AssembleTest {
		writer = io.MultiWriter(writer, &source)
	}

	dis := disasm.New(p.logger, opts.Input, data, disasmOpts, nasm.New)
	app, err := dis.Process(ctx, writer)
	if err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}

	// Verify output (if requested)
	if opts.AssembleTest {
		if err := verification.VerifyProgram(p.logger, app); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		if err := verification.VerifyReassembly(ctx, p.logger, app, source.Bytes()); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return app, nil
}

// printInfo prints information about the input being processed.
func (p *Pipeline) printInfo(opts options.Program, data []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing 8086 binary",
		log.String("file", opts.Input),
		log.Int("size", len(data)),
	)
}
