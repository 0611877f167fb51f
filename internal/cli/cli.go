// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/disasm86/internal/options"
)

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if errors.Is(err, flag.ErrHelp) {
		return opts, options.Disassembler{}, &UsageError{flags: flags}
	}
	if err != nil {
		return opts, options.Disassembler{}, &UsageError{flags: flags, msg: err.Error()}
	}
	if len(args) == 0 && opts.Batch == "" && opts.Input == "" {
		return opts, options.Disassembler{}, &UsageError{flags: flags, msg: "no file to disassemble given"}
	}

	if err := validateArgs(flags, opts, args); err != nil {
		return opts, options.Disassembler{}, err
	}

	if len(args) == 1 {
		opts.Input = args[0]
	}

	disasmOptions := options.NewDisassembler(opts)
	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information.
// The message is empty if the usage was explicitly requested.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text with all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: disasm86 [options] <file to disassemble>\n\n")
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks that at most one input is given and that it is passed
// after all options.
func validateArgs(flags *flag.FlagSet, opts options.Program, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after file to disassemble, please pass the file to disassemble as last argument", arg),
			}
		}
	}

	switch {
	case len(args) > 1:
		return &UsageError{flags: flags, msg: fmt.Sprintf("only one file to disassemble can be given, got %d", len(args))}
	case len(args) == 1 && opts.Batch != "":
		return &UsageError{flags: flags, msg: "a file to disassemble can not be combined with batch mode"}
	case len(args) == 1 && opts.Input != "":
		return &UsageError{flags: flags, msg: "the file to disassemble is given twice"}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input binary file")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, - prints on console, <input>_decompiled.asm if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .asm file naming, for example *.bin")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.AssembleTest, "verify", false, "verify the decoded instructions by decoding them again with an independent decoder")
	flags.BoolVar(&opts.HexComments, "hexcomments", false, "output instruction bytes as hex values in comments")
	flags.BoolVar(&opts.OffsetComments, "offsets", false, "output file offsets in comments")
	flags.BoolVar(&opts.HeaderComments, "header", false, "output a comment header with input name, size and checksum")
}
