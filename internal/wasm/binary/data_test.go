package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tarnlang/tarn/internal/wasm"
)

func TestEncodeConstantExpression(t *testing.T) {
	require.Equal(t, []byte{wasm.OpcodeI32Const, 0x08, wasm.OpcodeEnd},
		encodeConstantExpression(&wasm.ConstantExpression{Opcode: wasm.OpcodeI32Const, Data: []byte{0x08}}))
}

func TestEncodeDataSegment(t *testing.T) {
	tests := []struct {
		name     string
		input    *wasm.DataSegment
		expected []byte
	}{
		{
			name: "empty init",
			input: &wasm.DataSegment{
				OffsetExpression: &wasm.ConstantExpression{Opcode: wasm.OpcodeI32Const, Data: []byte{0x00}},
			},
			expected: []byte{
				0x00,                                      // memory index
				wasm.OpcodeI32Const, 0x00, wasm.OpcodeEnd, // offset expression
				0x00, // size of init
			},
		},
		{
			name: "offset 8, two bytes",
			input: &wasm.DataSegment{
				OffsetExpression: &wasm.ConstantExpression{Opcode: wasm.OpcodeI32Const, Data: []byte{0x08}},
				Init:             []byte{'A', '\n'},
			},
			expected: []byte{
				0x00,                                      // memory index
				wasm.OpcodeI32Const, 0x08, wasm.OpcodeEnd, // offset expression
				0x02, 'A', '\n', // size of init, init
			},
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, encodeDataSegment(tc.input))
		})
	}
}
