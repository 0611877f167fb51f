// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/disasm86/internal/options"
	"github.com/retroenv/disasm86/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// StdoutOutput is the output name that prints the generated assembly on the console.
const StdoutOutput = "-"

// outputSuffix is appended to the input file name to build the output file name.
const outputSuffix = "_decompiled.asm"

// ErrNoFilesMatched is returned when a batch pattern does not match any file.
var ErrNoFilesMatched = errors.New("no files matched")

// ProcessFile handles the complete file processing workflow. The assembly is
// rendered in memory first, the output file is only created if the whole
// input was decoded successfully.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) error {
	var buf bytes.Buffer

	pipe := pipeline.New(logger)
	if _, err := pipe.Execute(ctx, opts, disasmOptions, &buf); err != nil {
		return err
	}

	if err := writeOutput(opts.Output, buf.Bytes()); err != nil {
		return err
	}

	if opts.Output != StdoutOutput {
		logger.Info("Done", log.String("output", opts.Output))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch == "" {
		return []string{opts.Input}, nil
	}

	matches, err := filepath.Glob(opts.Batch)
	if err != nil {
		return nil, fmt.Errorf("globbing batch pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("batch pattern '%s': %w", opts.Batch, ErrNoFilesMatched)
	}
	return matches, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	return inputFile + outputSuffix
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("disasm86", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

func writeOutput(output string, data []byte) error {
	if output == StdoutOutput {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", output, err)
	}
	if err := writeAndClose(file, data); err != nil {
		return fmt.Errorf("writing output file %s: %w", output, err)
	}
	return nil
}

// writeAndClose writes data and closes w, returning the first error.
func writeAndClose(w io.WriteCloser, data []byte) error {
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing: %w", err)
	}
	return nil
}
