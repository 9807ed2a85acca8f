package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tarnlang/tarn/internal/wasm"
)

func TestEncodeSection(t *testing.T) {
	require.Equal(t, []byte{wasm.SectionIDType, 0x03, 0x0a, 0x0b, 0x0c},
		encodeSection(wasm.SectionIDType, []byte{0x0a, 0x0b, 0x0c}))
}

func TestEncodeFunctionSection(t *testing.T) {
	require.Equal(t, []byte{wasm.SectionIDFunction, 0x2, 0x01, 0x05}, encodeFunctionSection([]wasm.Index{5}))
}

func TestEncodeMemorySection(t *testing.T) {
	three := uint32(3)
	tests := []struct {
		name     string
		input    []*wasm.Memory
		expected []byte
	}{
		{
			name:  "min 1",
			input: []*wasm.Memory{{Min: 1}},
			expected: []byte{
				wasm.SectionIDMemory, 0x03,
				0x01,       // 1 memory
				0x00, 0x01, // (memory 1)
			},
		},
		{
			name:  "min 2 max 3",
			input: []*wasm.Memory{{Min: 2, Max: &three}},
			expected: []byte{
				wasm.SectionIDMemory, 0x04,
				0x01,             // 1 memory
				0x01, 0x02, 0x03, // (memory 2 3)
			},
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, encodeMemorySection(tc.input))
		})
	}
}

func TestEncodeTypeSection(t *testing.T) {
	i32 := wasm.ValueTypeI32
	bytes := encodeTypeSection([]*wasm.FunctionType{
		{},
		{Params: []wasm.ValueType{i32}, Results: []wasm.ValueType{i32}},
	})
	require.Equal(t, []byte{
		wasm.SectionIDType, 0x09, // 9 bytes in this section
		0x02,             // 2 types
		0x60, 0x00, 0x00, // func=0x60 no param no result
		0x60, 0x01, i32, 0x01, i32, // func=0x60 1 param and 1 result
	}, bytes)
}

func TestEncodeExportSection(t *testing.T) {
	bytes := encodeExportSection([]*wasm.Export{
		{Name: "_start", Type: wasm.ExternTypeFunc, Index: wasm.Index(1)},
		{Name: "memory", Type: wasm.ExternTypeMemory, Index: wasm.Index(0)},
	})
	require.Equal(t, []byte{
		wasm.SectionIDExport, 0x13, // 19 bytes in this section
		0x02, // 2 exports
		0x06, '_', 's', 't', 'a', 'r', 't', wasm.ExternTypeFunc, 0x01,
		0x06, 'm', 'e', 'm', 'o', 'r', 'y', wasm.ExternTypeMemory, 0x00,
	}, bytes)
}
