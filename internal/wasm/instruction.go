package wasm

// Opcode is the first byte of an instruction in the binary format.
type Opcode = byte

const (
	// OpcodeUnreachable causes an unconditional trap.
	OpcodeUnreachable Opcode = 0x00
	// OpcodeNop does nothing.
	OpcodeNop   Opcode = 0x01
	OpcodeBlock Opcode = 0x02
	OpcodeLoop  Opcode = 0x03
	OpcodeIf    Opcode = 0x04
	// OpcodeElse separates the arms of an if instruction.
	OpcodeElse Opcode = 0x05
	// OpcodeEnd terminates a structured instruction or an expression.
	OpcodeEnd Opcode = 0x0b

	OpcodeBr           Opcode = 0x0c
	OpcodeBrIf         Opcode = 0x0d
	OpcodeReturn       Opcode = 0x0f
	OpcodeCall         Opcode = 0x10
	OpcodeCallIndirect Opcode = 0x11

	OpcodeDrop   Opcode = 0x1a
	OpcodeSelect Opcode = 0x1b

	OpcodeLocalGet  Opcode = 0x20
	OpcodeLocalSet  Opcode = 0x21
	OpcodeLocalTee  Opcode = 0x22
	OpcodeGlobalGet Opcode = 0x23
	OpcodeGlobalSet Opcode = 0x24

	OpcodeI32Load    Opcode = 0x28
	OpcodeI64Load    Opcode = 0x29
	OpcodeF32Load    Opcode = 0x2a
	OpcodeF64Load    Opcode = 0x2b
	OpcodeI32Load8S  Opcode = 0x2c
	OpcodeI32Load8U  Opcode = 0x2d
	OpcodeI32Load16S Opcode = 0x2e
	OpcodeI32Load16U Opcode = 0x2f
	OpcodeI64Load8S  Opcode = 0x30
	OpcodeI64Load8U  Opcode = 0x31
	OpcodeI64Load16S Opcode = 0x32
	OpcodeI64Load16U Opcode = 0x33
	OpcodeI64Load32S Opcode = 0x34
	OpcodeI64Load32U Opcode = 0x35

	OpcodeI32Store   Opcode = 0x36
	OpcodeI64Store   Opcode = 0x37
	OpcodeF32Store   Opcode = 0x38
	OpcodeF64Store   Opcode = 0x39
	OpcodeI32Store8  Opcode = 0x3a
	OpcodeI32Store16 Opcode = 0x3b
	OpcodeI64Store8  Opcode = 0x3c
	OpcodeI64Store16 Opcode = 0x3d
	OpcodeI64Store32 Opcode = 0x3e

	OpcodeMemorySize Opcode = 0x3f
	OpcodeMemoryGrow Opcode = 0x40

	OpcodeI32Const Opcode = 0x41
	OpcodeI64Const Opcode = 0x42
	OpcodeF32Const Opcode = 0x43
	OpcodeF64Const Opcode = 0x44

	OpcodeI32Add Opcode = 0x6a
)

// MemArg is the alignment hint and static offset attached to every load and
// store instruction.
type MemArg struct {
	// Align is log2 of the alignment in bytes, e.g. 2 for 32-bit access.
	Align uint32
	// Offset is added to the dynamic address operand.
	Offset uint32
}

// BlockType describes the result arity of a block, loop or if instruction.
// The zero value is the empty type.
type BlockType struct {
	// ValType, when non-nil, means the block yields one value of this type.
	ValType *ValueType
	// TypeIndex, when non-nil, refers to an entry in the type section.
	TypeIndex *Index
}

// Instruction is one instruction of the supported subset, with whichever
// operand fields its Opcode requires. Structured instructions (block, loop,
// if) nest through Body and Else; the encoder writes their terminating
// OpcodeEnd, so bodies never include it.
type Instruction struct {
	Opcode Opcode

	// Index is a label, function, type, local or global index, depending on
	// the opcode.
	Index Index

	// Mem applies to load and store opcodes.
	Mem MemArg

	// Block applies to OpcodeBlock, OpcodeLoop and OpcodeIf.
	Block BlockType
	// Body is the inner sequence of a structured instruction, or the then
	// arm of an if.
	Body []Instruction
	// Else is the else arm of an if; nil means no else.
	Else []Instruction

	I32 int32
	I64 int64
	F32 float32
	F64 float64
}
