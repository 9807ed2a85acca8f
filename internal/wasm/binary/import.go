package binary

import (
	"github.com/tarnlang/tarn/internal/leb128"
	"github.com/tarnlang/tarn/internal/wasm"
)

// encodeImport encodes the module and entity names followed by the import
// descriptor. Only function imports are emitted by this compiler.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#import-section%E2%91%A0
func encodeImport(i *wasm.Import) []byte {
	data := append(encodeName(i.Module), encodeName(i.Name)...)
	data = append(data, wasm.ExternTypeFunc)
	return append(data, leb128.EncodeUint32(i.DescFunc)...)
}
