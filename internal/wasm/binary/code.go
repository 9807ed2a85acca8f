package binary

import (
	"github.com/tarnlang/tarn/internal/leb128"
	"github.com/tarnlang/tarn/internal/wasm"
)

// encodeCode returns the size-prefixed wasm.Code: the run-length encoded
// local declarations followed by the function body.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-code
func encodeCode(c *wasm.Code) []byte {
	// Equal adjacent local types compress into one (count, type) entry.
	var localBlocks []byte
	localBlockCount := uint32(0)
	if len(c.LocalTypes) > 0 {
		i := 0
		for i < len(c.LocalTypes) {
			lt := c.LocalTypes[i]
			n := 1
			for i+n < len(c.LocalTypes) && c.LocalTypes[i+n] == lt {
				n++
			}
			localBlocks = append(localBlocks, leb128.EncodeUint32(uint32(n))...)
			localBlocks = append(localBlocks, lt)
			localBlockCount++
			i += n
		}
	}
	data := append(leb128.EncodeUint32(localBlockCount), localBlocks...)
	data = append(data, c.Body...)
	return encodeSizePrefixed(data)
}
