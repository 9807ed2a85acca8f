package binary

import (
	"github.com/tarnlang/tarn/internal/leb128"
)

// encodeLimits encodes the minimum, and the maximum when present. A flag
// byte tells the two forms apart.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#limits%E2%91%A0
func encodeLimits(min uint32, max *uint32) []byte {
	if max == nil {
		return append([]byte{0x00}, leb128.EncodeUint32(min)...)
	}
	ret := append([]byte{0x01}, leb128.EncodeUint32(min)...)
	return append(ret, leb128.EncodeUint32(*max)...)
}
