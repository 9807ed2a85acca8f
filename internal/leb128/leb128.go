// Package leb128 implements Little Endian Base 128 integer encoding, the
// variable-length representation used throughout the WebAssembly binary
// format.
package leb128

import (
	"errors"
	"fmt"
)

const (
	maxVarintLen32 = 5
	maxVarintLen64 = 10
)

var (
	errOverflow32 = errors.New("overflows a 32-bit integer")
	errOverflow64 = errors.New("overflows a 64-bit integer")
)

// EncodeInt32 encodes the signed value into a buffer in LEB128 format
//
// See https://en.wikipedia.org/wiki/LEB128#Encode_signed_integer
func EncodeInt32(value int32) []byte {
	return EncodeInt64(int64(value))
}

// EncodeInt64 encodes the signed value into a buffer in LEB128 format
//
// See https://en.wikipedia.org/wiki/LEB128#Encode_signed_integer
func EncodeInt64(value int64) (buf []byte) {
	for {
		// Take 7 remaining low-order bits of the value.
		b := uint8(value & 0x7f)
		signBit := b & 0x40
		value >>= 7
		// If the remaining value with the sign bit fit in 7 bits, we are done.
		if (value == 0 && signBit == 0) || (value == -1 && signBit != 0) {
			buf = append(buf, b)
			break
		}
		// Otherwise, set the continuation bit and keep going.
		buf = append(buf, b|0x80)
	}
	return buf
}

// EncodeUint32 encodes the value into a buffer in LEB128 format
//
// See https://en.wikipedia.org/wiki/LEB128#Encode_unsigned_integer
func EncodeUint32(value uint32) []byte {
	return EncodeUint64(uint64(value))
}

// EncodeUint64 encodes the value into a buffer in LEB128 format
//
// See https://en.wikipedia.org/wiki/LEB128#Encode_unsigned_integer
func EncodeUint64(value uint64) (buf []byte) {
	// This is effectively a do/while loop where we take 7 bits of the value
	// until the next byte is zero.
	for {
		b := uint8(value & 0x7f)
		value >>= 7
		if value == 0 {
			buf = append(buf, b)
			break
		}
		buf = append(buf, b|0x80)
	}
	return buf
}

// LoadUint32 decodes a uint32 from the buffer, returning the value and the
// number of bytes read.
func LoadUint32(buf []byte) (ret uint32, bytesRead uint64, err error) {
	var shift int
	for i, b := range buf {
		if i >= maxVarintLen32 {
			return 0, 0, errOverflow32
		}
		ret |= (uint32(b) & 0x7f) << shift
		if b&0x80 == 0 {
			// The fifth byte holds bits 28..31, so only its low nibble is data.
			if i == maxVarintLen32-1 && b > 0xf {
				return 0, 0, errOverflow32
			}
			return ret, uint64(i) + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("buffer shorter than expected")
}

// LoadUint64 decodes a uint64 from the buffer, returning the value and the
// number of bytes read.
func LoadUint64(buf []byte) (ret uint64, bytesRead uint64, err error) {
	var shift int
	for i, b := range buf {
		if i >= maxVarintLen64 {
			return 0, 0, errOverflow64
		}
		ret |= (uint64(b) & 0x7f) << shift
		if b&0x80 == 0 {
			// The top byte of a ten-byte encoding only contributes one bit.
			if i == maxVarintLen64-1 && b > 1 {
				return 0, 0, errOverflow64
			}
			return ret, uint64(i) + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("buffer shorter than expected")
}

// LoadInt32 decodes an int32 from the buffer, returning the value and the
// number of bytes read.
func LoadInt32(buf []byte) (ret int32, bytesRead uint64, err error) {
	var shift int
	var b byte
	for i := 0; ; i++ {
		if i >= len(buf) {
			return 0, 0, fmt.Errorf("buffer shorter than expected")
		} else if i >= maxVarintLen32 {
			return 0, 0, errOverflow32
		}
		b = buf[i]
		ret |= (int32(b) & 0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			bytesRead = uint64(i) + 1
			break
		}
	}
	// The fifth byte of a five-byte encoding holds bits 28..31. The unused
	// high bits must all equal the sign bit or the value does not fit.
	if bytesRead == maxVarintLen32 {
		msb := b >> 3
		if msb != 0 && msb != 0b1111 {
			return 0, 0, errOverflow32
		}
	}
	// Sign extend.
	if shift < 32 && b&0x40 != 0 {
		ret |= ^0 << shift
	}
	return ret, bytesRead, nil
}

// LoadInt64 decodes an int64 from the buffer, returning the value and the
// number of bytes read.
func LoadInt64(buf []byte) (ret int64, bytesRead uint64, err error) {
	var shift int
	var b byte
	for i := 0; ; i++ {
		if i >= len(buf) {
			return 0, 0, fmt.Errorf("buffer shorter than expected")
		} else if i >= maxVarintLen64 {
			return 0, 0, errOverflow64
		}
		b = buf[i]
		ret |= (int64(b) & 0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			bytesRead = uint64(i) + 1
			break
		}
	}
	// In the ten-byte encoding only the low bit of the final byte is data;
	// the rest must match the sign extension.
	if bytesRead == maxVarintLen64 {
		if b != 0 && b != 0x7f {
			return 0, 0, errOverflow64
		}
	}
	if shift < 64 && b&0x40 != 0 {
		ret |= ^0 << shift
	}
	return ret, bytesRead, nil
}
