package binary

import (
	"github.com/tarnlang/tarn/internal/leb128"
	"github.com/tarnlang/tarn/internal/wasm"
)

// encodeExport encodes the export name, the descriptor byte (func, table,
// memory or global) and the index into the corresponding space.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#export-section%E2%91%A0
func encodeExport(e *wasm.Export) []byte {
	data := append(encodeName(e.Name), e.Type)
	return append(data, leb128.EncodeUint32(e.Index)...)
}
