// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input binary file"`
	Output string `flag:"o" usage:"output .asm file, - for stdout (default: <input>_decompiled.asm)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.bin)"`
}

// Flags contains behavior options.
type Flags struct {
	AssembleTest bool `flag:"verify" usage:"verify decoded instructions against an independent decoder"`
	Debug        bool `flag:"debug" usage:"enable debug logging"`
	Quiet        bool `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	HexComments    bool `flag:"hexcomments" usage:"output instruction bytes as hex values in comments"`
	OffsetComments bool `flag:"offsets" usage:"output file offsets in comments"`
	HeaderComments bool `flag:"header" usage:"output a comment header with input name, size and checksum"`
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Disassembler defines options to control the generated output.
type Disassembler struct {
	HeaderComments bool
	HexComments    bool
	OffsetComments bool
}

// NewDisassembler returns a new options instance based on the program options.
// All comments are disabled by default so that the output is a plain listing.
func NewDisassembler(opts Program) Disassembler {
	return Disassembler{
		HeaderComments: opts.HeaderComments,
		HexComments:    opts.HexComments,
		OffsetComments: opts.OffsetComments,
	}
}
