package verification

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/disasm86/internal/arch/x86"
	"github.com/retroenv/disasm86/internal/program"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// bufferLogger returns a logger that records into buf. Mismatch details are
// logged at error level, which fails a test logger.
func bufferLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithConfig(log.Config{
		Output:     buf,
		TimeFormat: "-",
	})
}

func decodeProgram(t *testing.T, data []byte) *program.Program {
	t.Helper()
	app := program.New("test.bin", data)
	for pos := 0; pos < len(data); {
		ins, next, err := x86.DecodeOne(data, pos)
		assert.NoError(t, err)
		app.Add(program.Offset{
			Address:     pos,
			Data:        data[pos:next],
			Instruction: ins,
		})
		pos = next
	}
	return app
}

func TestVerifyProgram(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"register to register", []byte{0x89, 0xd9, 0x88, 0xe5, 0x89, 0xfc}},
		{"immediate to register", []byte{0xb1, 0x0c, 0xb5, 0xf4, 0xba, 0x94, 0xf0}},
		{"memory modes", []byte{0x8a, 0x00, 0x8b, 0x56, 0x00, 0x8a, 0x60, 0x04, 0x8a, 0x80, 0x87, 0x13}},
		{"memory destinations", []byte{0x89, 0x09, 0x88, 0x6e, 0x00, 0x89, 0x8c, 0xd4, 0xfe}},
		{"direct address", []byte{0x8b, 0x2e, 0x05, 0x00}},
		{"immediate to memory", []byte{0xc6, 0x03, 0x07, 0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01}},
		{"accumulator", []byte{0xa1, 0xfb, 0x09, 0xa2, 0x0f, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := decodeProgram(t, tt.data)
			err := VerifyProgram(log.NewTestLogger(t), app)
			assert.NoError(t, err)
		})
	}
}

func TestVerifyProgram_Mismatch(t *testing.T) {
	tests := []struct {
		name   string
		modify func(ins *x86.Instruction)
	}{
		{
			name:   "wrong mnemonic",
			modify: func(ins *x86.Instruction) { ins.Mnemonic = "add" },
		},
		{
			name:   "wrong size",
			modify: func(ins *x86.Instruction) { ins.Size = 3 },
		},
		{
			name:   "wrong register",
			modify: func(ins *x86.Instruction) { ins.Destination = x86.RegisterOperand(x86.DX) },
		},
		{
			name:   "swapped operand kinds",
			modify: func(ins *x86.Instruction) { ins.Source = x86.ImmediateOperand(1, true) },
		},
		{
			name:   "missing operand",
			modify: func(ins *x86.Instruction) { ins.Source = x86.Operand{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := decodeProgram(t, []byte{0x89, 0xd9})
			tt.modify(&app.Offsets[0].Instruction)

			var buf bytes.Buffer
			err := VerifyProgram(bufferLogger(&buf), app)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrMismatch))
			assert.ErrorContains(t, err, "1 of 1 instructions")
			assert.Contains(t, buf.String(), "Instruction mismatch")
		})
	}
}

func TestVerifyProgram_LoggedMismatchesLimited(t *testing.T) {
	data := bytes.Repeat([]byte{0x89, 0xd9}, maxLoggedMismatches+2)
	app := decodeProgram(t, data)
	for i := range app.Offsets {
		app.Offsets[i].Instruction.Mnemonic = "add"
	}

	var buf bytes.Buffer
	err := VerifyProgram(bufferLogger(&buf), app)
	assert.ErrorContains(t, err, "12 of 12 instructions")
	assert.Equal(t, maxLoggedMismatches, strings.Count(buf.String(), "Instruction mismatch"))
}
