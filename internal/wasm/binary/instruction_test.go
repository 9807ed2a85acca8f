package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tarnlang/tarn/internal/wasm"
)

func TestEncodeInstruction(t *testing.T) {
	i32 := wasm.ValueTypeI32

	tests := []struct {
		name     string
		input    wasm.Instruction
		expected []byte
	}{
		{
			name:     "unreachable",
			input:    wasm.Instruction{Opcode: wasm.OpcodeUnreachable},
			expected: []byte{0x00},
		},
		{
			name:     "nop",
			input:    wasm.Instruction{Opcode: wasm.OpcodeNop},
			expected: []byte{0x01},
		},
		{
			name:     "drop",
			input:    wasm.Instruction{Opcode: wasm.OpcodeDrop},
			expected: []byte{0x1a},
		},
		{
			name:     "i32.const 42",
			input:    wasm.Instruction{Opcode: wasm.OpcodeI32Const, I32: 42},
			expected: []byte{0x41, 0x2a},
		},
		{
			name:     "i32.const -1",
			input:    wasm.Instruction{Opcode: wasm.OpcodeI32Const, I32: -1},
			expected: []byte{0x41, 0x7f},
		},
		{
			name:     "i32.const 624485 is multi-byte sleb128",
			input:    wasm.Instruction{Opcode: wasm.OpcodeI32Const, I32: 624485},
			expected: []byte{0x41, 0xe5, 0x8e, 0x26},
		},
		{
			name:     "i64.const -1",
			input:    wasm.Instruction{Opcode: wasm.OpcodeI64Const, I64: -1},
			expected: []byte{0x42, 0x7f},
		},
		{
			name:     "f32.const 1.0",
			input:    wasm.Instruction{Opcode: wasm.OpcodeF32Const, F32: 1.0},
			expected: []byte{0x43, 0x00, 0x00, 0x80, 0x3f},
		},
		{
			name:     "f64.const 1.0",
			input:    wasm.Instruction{Opcode: wasm.OpcodeF64Const, F64: 1.0},
			expected: []byte{0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f},
		},
		{
			name:     "local.get 1",
			input:    wasm.Instruction{Opcode: wasm.OpcodeLocalGet, Index: 1},
			expected: []byte{0x20, 0x01},
		},
		{
			name:     "call 0",
			input:    wasm.Instruction{Opcode: wasm.OpcodeCall, Index: 0},
			expected: []byte{0x10, 0x00},
		},
		{
			name:     "call_indirect type 2",
			input:    wasm.Instruction{Opcode: wasm.OpcodeCallIndirect, Index: 2},
			expected: []byte{0x11, 0x02, 0x00},
		},
		{
			name:     "br 0",
			input:    wasm.Instruction{Opcode: wasm.OpcodeBr, Index: 0},
			expected: []byte{0x0c, 0x00},
		},
		{
			name:     "br_if 1",
			input:    wasm.Instruction{Opcode: wasm.OpcodeBrIf, Index: 1},
			expected: []byte{0x0d, 0x01},
		},
		{
			name:     "i32.store align=2 offset=0",
			input:    wasm.Instruction{Opcode: wasm.OpcodeI32Store, Mem: wasm.MemArg{Align: 2}},
			expected: []byte{0x36, 0x02, 0x00},
		},
		{
			name:     "i32.load align=2 offset=8",
			input:    wasm.Instruction{Opcode: wasm.OpcodeI32Load, Mem: wasm.MemArg{Align: 2, Offset: 8}},
			expected: []byte{0x28, 0x02, 0x08},
		},
		{
			name:     "memory.size",
			input:    wasm.Instruction{Opcode: wasm.OpcodeMemorySize},
			expected: []byte{0x3f},
		},
		{
			name: "empty block",
			input: wasm.Instruction{
				Opcode: wasm.OpcodeBlock,
			},
			expected: []byte{0x02, 0x40, 0x0b},
		},
		{
			name: "block with value type and body",
			input: wasm.Instruction{
				Opcode: wasm.OpcodeBlock,
				Block:  wasm.BlockType{ValType: &i32},
				Body:   []wasm.Instruction{{Opcode: wasm.OpcodeI32Const, I32: 1}},
			},
			expected: []byte{0x02, i32, 0x41, 0x01, 0x0b},
		},
		{
			name: "loop with nested block",
			input: wasm.Instruction{
				Opcode: wasm.OpcodeLoop,
				Body: []wasm.Instruction{
					{Opcode: wasm.OpcodeBlock, Body: []wasm.Instruction{{Opcode: wasm.OpcodeNop}}},
				},
			},
			expected: []byte{
				0x03, 0x40, // loop, empty type
				0x02, 0x40, // block, empty type
				0x01, // nop
				0x0b, // end of block
				0x0b, // end of loop
			},
		},
		{
			name: "if without else",
			input: wasm.Instruction{
				Opcode: wasm.OpcodeIf,
				Body:   []wasm.Instruction{{Opcode: wasm.OpcodeNop}},
			},
			expected: []byte{0x04, 0x40, 0x01, 0x0b},
		},
		{
			name: "if with else",
			input: wasm.Instruction{
				Opcode: wasm.OpcodeIf,
				Body:   []wasm.Instruction{{Opcode: wasm.OpcodeNop}},
				Else:   []wasm.Instruction{{Opcode: wasm.OpcodeUnreachable}},
			},
			expected: []byte{
				0x04, 0x40, // if, empty type
				0x01, // nop
				0x05, // else
				0x00, // unreachable
				0x0b, // end
			},
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			bytes, err := EncodeInstruction(&tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, bytes)
		})
	}
}

func TestEncodeInstruction_Errors(t *testing.T) {
	_, err := EncodeInstruction(&wasm.Instruction{Opcode: 0xff})
	require.EqualError(t, err, "invalid opcode 0xff")

	// An invalid opcode inside a structured instruction also fails.
	_, err = EncodeInstruction(&wasm.Instruction{
		Opcode: wasm.OpcodeBlock,
		Body:   []wasm.Instruction{{Opcode: 0xfe}},
	})
	require.EqualError(t, err, "invalid opcode 0xfe")
}

func TestEncodeExpr(t *testing.T) {
	bytes, err := EncodeExpr([]wasm.Instruction{{Opcode: wasm.OpcodeI32Const, I32: 42}})
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x41, 0x2a, // i32.const 42
		0x0b, // end
	}, bytes)
}
