package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tarnlang/tarn/internal/leb128"
	"github.com/tarnlang/tarn/internal/wasm"
)

// EncodeExpr encodes the instruction sequence followed by the OpcodeEnd
// terminator, the shape shared by function bodies and initializers.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#expressions%E2%91%A0
func EncodeExpr(instructions []wasm.Instruction) ([]byte, error) {
	data, err := encodeInstructionSequence(instructions)
	if err != nil {
		return nil, err
	}
	return append(data, wasm.OpcodeEnd), nil
}

func encodeInstructionSequence(instructions []wasm.Instruction) (data []byte, err error) {
	for i := range instructions {
		d, err := EncodeInstruction(&instructions[i])
		if err != nil {
			return nil, err
		}
		data = append(data, d...)
	}
	return
}

// EncodeInstruction encodes the opcode byte and any operands. Structured
// instructions write their own OpcodeEnd, so nesting stays lexical.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#instructions%E2%91%A0
func EncodeInstruction(i *wasm.Instruction) ([]byte, error) {
	switch i.Opcode {
	case wasm.OpcodeUnreachable, wasm.OpcodeNop, wasm.OpcodeReturn,
		wasm.OpcodeDrop, wasm.OpcodeSelect,
		wasm.OpcodeMemorySize, wasm.OpcodeMemoryGrow,
		wasm.OpcodeI32Add:
		return []byte{i.Opcode}, nil

	case wasm.OpcodeBlock, wasm.OpcodeLoop:
		data := append([]byte{i.Opcode}, encodeBlockType(i.Block)...)
		inner, err := encodeInstructionSequence(i.Body)
		if err != nil {
			return nil, err
		}
		data = append(data, inner...)
		return append(data, wasm.OpcodeEnd), nil

	case wasm.OpcodeIf:
		data := append([]byte{i.Opcode}, encodeBlockType(i.Block)...)
		then, err := encodeInstructionSequence(i.Body)
		if err != nil {
			return nil, err
		}
		data = append(data, then...)
		if i.Else != nil {
			elseSeq, err := encodeInstructionSequence(i.Else)
			if err != nil {
				return nil, err
			}
			data = append(data, wasm.OpcodeElse)
			data = append(data, elseSeq...)
		}
		return append(data, wasm.OpcodeEnd), nil

	case wasm.OpcodeBr, wasm.OpcodeBrIf, wasm.OpcodeCall,
		wasm.OpcodeLocalGet, wasm.OpcodeLocalSet, wasm.OpcodeLocalTee,
		wasm.OpcodeGlobalGet, wasm.OpcodeGlobalSet:
		return append([]byte{i.Opcode}, leb128.EncodeUint32(i.Index)...), nil

	case wasm.OpcodeCallIndirect:
		// The type index is followed by the table index, which must be zero
		// in WebAssembly 1.0.
		data := append([]byte{i.Opcode}, leb128.EncodeUint32(i.Index)...)
		return append(data, 0x00), nil

	case wasm.OpcodeI32Load, wasm.OpcodeI64Load, wasm.OpcodeF32Load, wasm.OpcodeF64Load,
		wasm.OpcodeI32Load8S, wasm.OpcodeI32Load8U, wasm.OpcodeI32Load16S, wasm.OpcodeI32Load16U,
		wasm.OpcodeI64Load8S, wasm.OpcodeI64Load8U, wasm.OpcodeI64Load16S, wasm.OpcodeI64Load16U,
		wasm.OpcodeI64Load32S, wasm.OpcodeI64Load32U,
		wasm.OpcodeI32Store, wasm.OpcodeI64Store, wasm.OpcodeF32Store, wasm.OpcodeF64Store,
		wasm.OpcodeI32Store8, wasm.OpcodeI32Store16,
		wasm.OpcodeI64Store8, wasm.OpcodeI64Store16, wasm.OpcodeI64Store32:
		return append([]byte{i.Opcode}, encodeMemArg(i.Mem)...), nil

	case wasm.OpcodeI32Const:
		return append([]byte{i.Opcode}, leb128.EncodeInt32(i.I32)...), nil
	case wasm.OpcodeI64Const:
		return append([]byte{i.Opcode}, leb128.EncodeInt64(i.I64)...), nil
	case wasm.OpcodeF32Const:
		data := make([]byte, 5)
		data[0] = i.Opcode
		binary.LittleEndian.PutUint32(data[1:], math.Float32bits(i.F32))
		return data, nil
	case wasm.OpcodeF64Const:
		data := make([]byte, 9)
		data[0] = i.Opcode
		binary.LittleEndian.PutUint64(data[1:], math.Float64bits(i.F64))
		return data, nil
	}
	return nil, fmt.Errorf("invalid opcode 0x%x", i.Opcode)
}

// encodeMemArg encodes the alignment hint then the static offset.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#memory-instructions%E2%91%A0
func encodeMemArg(m wasm.MemArg) []byte {
	return append(leb128.EncodeUint32(m.Align), leb128.EncodeUint32(m.Offset)...)
}

// encodeBlockType encodes 0x40 for the empty type, the value type byte for a
// single result, or a type index.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-blocktype
func encodeBlockType(bt wasm.BlockType) []byte {
	switch {
	case bt.ValType != nil:
		return []byte{*bt.ValType}
	case bt.TypeIndex != nil:
		return leb128.EncodeUint32(*bt.TypeIndex)
	default:
		return []byte{0x40}
	}
}
