// Package main implements the main entry point for an 8086 machine code disassembler
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/disasm86/internal/cli"
	"github.com/retroenv/disasm86/internal/config"
	"github.com/retroenv/disasm86/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			if msg := usageErr.Error(); msg != "" {
				logger.Error(msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Error("Collecting input files failed", log.Err(err))
		os.Exit(1)
	}

	failed := false
	for _, file := range files {
		opts.Input = file
		if len(files) > 1 || opts.Output == "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts, disasmOptions); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				os.Exit(1)
			}
			logger.Error("Disassembling failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
