// Package loader handles input file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/disasm86/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Loader handles loading binary input files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new input file loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the complete input file into memory. The returned buffer is
// treated as read-only by all later stages.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	if len(data) == 0 {
		l.logger.Warn("Input file is empty", log.String("file", opts.Input))
	}
	l.logger.Debug("Loaded input file",
		log.String("file", opts.Input),
		log.Int("size", len(data)))

	return data, nil
}
