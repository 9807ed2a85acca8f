package binary

import (
	"github.com/tarnlang/tarn/internal/leb128"
	"github.com/tarnlang/tarn/internal/wasm"
)

// encodeConstantExpression encodes a single-instruction initializer followed
// by OpcodeEnd.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#constant-expressions%E2%91%A0
func encodeConstantExpression(expr *wasm.ConstantExpression) []byte {
	data := append([]byte{expr.Opcode}, expr.Data...)
	return append(data, wasm.OpcodeEnd)
}

// encodeDataSegment encodes the memory index, the offset expression and the
// size-prefixed initialization bytes.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#data-section%E2%91%A0
func encodeDataSegment(d *wasm.DataSegment) []byte {
	data := append(leb128.EncodeUint32(d.MemoryIndex), encodeConstantExpression(d.OffsetExpression)...)
	data = append(data, leb128.EncodeUint32(uint32(len(d.Init)))...)
	return append(data, d.Init...)
}
