package binary

import (
	"github.com/tarnlang/tarn/internal/leb128"
	"github.com/tarnlang/tarn/internal/wasm"
)

// encodeSizePrefixed prefixes the byte length of the contents to the
// contents themselves. Vectors, names, sections and code entries all share
// this shape.
func encodeSizePrefixed(contents []byte) []byte {
	return append(leb128.EncodeUint32(uint32(len(contents))), contents...)
}

// encodeValTypes encodes a vector of value types, e.g. the parameter list of
// a function type.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#value-types%E2%91%A0
func encodeValTypes(vt []wasm.ValueType) []byte {
	return append(leb128.EncodeUint32(uint32(len(vt))), vt...)
}

// encodeName encodes the byte length of the UTF-8 name, then the bytes
// verbatim.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#names%E2%91%A0
func encodeName(name string) []byte {
	return encodeSizePrefixed([]byte(name))
}

// encodeFunctionType encodes the function type prefix byte 0x60 followed by
// its parameter and result vectors.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#function-types%E2%91%A0
func encodeFunctionType(t *wasm.FunctionType) []byte {
	data := append([]byte{0x60}, encodeValTypes(t.Params)...)
	return append(data, encodeValTypes(t.Results)...)
}
