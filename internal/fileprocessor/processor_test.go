package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/disasm86/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"listing_0037", "listing_0037_decompiled.asm"},
		{"dir/program.bin", "dir/program.bin_decompiled.asm"},
		{"code.com", "code.com_decompiled.asm"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateOutputFilename(tt.input))
		})
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "listing_0038")
	assert.NoError(t, os.WriteFile(input, []byte{0x89, 0xd9, 0x88, 0xe5}, 0o600))

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: GenerateOutputFilename(input),
		},
		Flags: options.Flags{Quiet: true},
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.NewDisassembler(opts))
	assert.NoError(t, err)

	output, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	assert.Equal(t, "bits 16\n\nmov cx, bx\nmov ch, ah\n", string(output))
}

func TestProcessFile_NoOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.bin")
	assert.NoError(t, os.WriteFile(input, []byte{0x89, 0xd9, 0xff}, 0o600))

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: GenerateOutputFilename(input),
		},
		Flags: options.Flags{Quiet: true},
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.NewDisassembler(opts))
	assert.Error(t, err)
	assert.ErrorContains(t, err, "unrecognized opcode")

	_, err = os.Stat(opts.Output)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestProcessFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "missing.bin")

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: GenerateOutputFilename(input),
		},
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.Disassembler{})
	assert.Error(t, err)
	assert.ErrorContains(t, err, input)

	_, err = os.Stat(opts.Output)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bin", "b.bin", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0x89, 0xd9}, 0o600))
	}

	t.Run("single input", func(t *testing.T) {
		opts := &options.Program{Parameters: options.Parameters{Input: "single.bin"}}
		files, err := GetFilesToProcess(opts)
		assert.NoError(t, err)
		assert.Len(t, files, 1)
		assert.Equal(t, "single.bin", files[0])
	})

	t.Run("batch pattern", func(t *testing.T) {
		opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.bin")}}
		files, err := GetFilesToProcess(opts)
		assert.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("batch pattern without matches", func(t *testing.T) {
		opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.com")}}
		_, err := GetFilesToProcess(opts)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoFilesMatched))
	})
}

type closeRecorder struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteAndClose(t *testing.T) {
	w := &closeRecorder{}
	assert.NoError(t, writeAndClose(w, []byte("mov cx, bx\n")))
	assert.True(t, w.closed)
	assert.Equal(t, "mov cx, bx\n", w.String())

	errClose := errors.New("disk full")
	w = &closeRecorder{closeErr: errClose}
	err := writeAndClose(w, []byte("mov cx, bx\n"))
	assert.True(t, errors.Is(err, errClose))
	assert.ErrorContains(t, err, "closing")
	assert.True(t, w.closed)
}

func TestWriteOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.asm")
	assert.NoError(t, writeOutput(output, []byte("bits 16\n")))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "bits 16\n", string(data))

	err = writeOutput(filepath.Join(t.TempDir(), "missing", "out.asm"), nil)
	assert.ErrorContains(t, err, "creating output file")
}
