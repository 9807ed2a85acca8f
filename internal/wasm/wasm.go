// Package wasm models the subset of the WebAssembly 1.0 (20191205) binary
// format this compiler emits: types, imports, functions, memories, exports,
// code and data.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/
package wasm

import (
	"fmt"
	"strings"
)

// Index is the offset into one of the module's index spaces, e.g. the
// function index space or the type index space. Each space begins at zero.
//
// Note: the function index space concatenates imported functions and module
// defined ones, imports first.
type Index = uint32

// Module is the result of compilation, ready to encode into the binary
// format. Fields are ordered the way the specification orders sections.
//
// Once handed to the encoder a Module must not be mutated.
type Module struct {
	// TypeSection contains the unique function signatures referenced by
	// ImportSection and FunctionSection, in type index order.
	TypeSection []*FunctionType

	// ImportSection contains imported functions in declaration order. These
	// occupy the lowest function indices.
	ImportSection []*Import

	// FunctionSection holds one type index per module-defined function, in
	// function index order.
	FunctionSection []Index

	// MemorySection declares linear memories. The specification allows at
	// most one in a valid module.
	MemorySection []*Memory

	// ExportSection names functions or memories visible to the host.
	ExportSection []*Export

	// CodeSection pairs with FunctionSection by position: code[i] is the body
	// of the function with type FunctionSection[i].
	CodeSection []*Code

	// DataSection initializes ranges of a linear memory.
	DataSection []*DataSegment
}

// ValueType is a tag identifying a numeric type, e.g. ValueTypeI32.
type ValueType = byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
)

// ValueTypeName returns the type name in the text format, e.g. "i32".
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	}
	return "unknown"
}

// FunctionType is a possibly-empty parameter and result signature.
type FunctionType struct {
	Params, Results []ValueType
}

// String returns a unique key for this signature, e.g. "i32i32_i32".
func (t *FunctionType) String() string {
	var sb strings.Builder
	if len(t.Params) == 0 {
		sb.WriteString("v")
	} else {
		for _, p := range t.Params {
			sb.WriteString(ValueTypeName(p))
		}
	}
	sb.WriteByte('_')
	if len(t.Results) == 0 {
		sb.WriteString("v")
	} else {
		for _, r := range t.Results {
			sb.WriteString(ValueTypeName(r))
		}
	}
	return sb.String()
}

// ExternType classifies an import or export: func, table, memory or global.
type ExternType = byte

const (
	ExternTypeFunc   ExternType = 0x00
	ExternTypeTable  ExternType = 0x01
	ExternTypeMemory ExternType = 0x02
	ExternTypeGlobal ExternType = 0x03
)

// ExternTypeName returns the name used in the text format, e.g. "func".
func ExternTypeName(t ExternType) string {
	switch t {
	case ExternTypeFunc:
		return "func"
	case ExternTypeTable:
		return "table"
	case ExternTypeMemory:
		return "memory"
	case ExternTypeGlobal:
		return "global"
	}
	return fmt.Sprintf("0x%x", t)
}

// Import is a host function this module requires, e.g. WASI's fd_write.
//
// Only function imports are emitted; the Type field exists so the encoder
// stays aligned with the import descriptor byte in the specification.
type Import struct {
	// Type must be ExternTypeFunc in an emitted module.
	Type ExternType
	// Module is the possibly-empty name of the providing module.
	Module string
	// Name is the possibly-empty entity name within Module.
	Name string
	// DescFunc is the type index of the imported function's signature.
	DescFunc Index
}

// Memory declares the limits of a linear memory in 64KiB pages. A nil Max
// means unbounded.
type Memory struct {
	Min uint32
	Max *uint32
}

// Export makes a function or memory callable or accessible by the host
// under Name.
type Export struct {
	Name string
	// Type identifies the index space Index refers to.
	Type ExternType
	// Index is the offset into the space Type selects.
	Index Index
}

// Code is one entry of the code section: the local declarations and the
// instruction bytes of a module-defined function.
type Code struct {
	// LocalTypes are the types of locals declared past the parameters, in
	// slot order.
	LocalTypes []ValueType

	// Body is the already-encoded instruction sequence, which must end with
	// OpcodeEnd.
	Body []byte
}

// ConstantExpression is a single-instruction initializer, e.g. the offset of
// a data segment.
type ConstantExpression struct {
	Opcode Opcode
	// Data is the encoded operand, e.g. an sleb128 constant.
	Data []byte
}

// DataSegment copies Init into memory MemoryIndex at the offset computed by
// OffsetExpression when the module is instantiated.
type DataSegment struct {
	MemoryIndex      Index
	OffsetExpression *ConstantExpression
	Init             []byte
}

// SectionID identifies a section's kind in the binary format.
type SectionID = byte

const (
	SectionIDCustom   SectionID = 0
	SectionIDType     SectionID = 1
	SectionIDImport   SectionID = 2
	SectionIDFunction SectionID = 3
	SectionIDTable    SectionID = 4
	SectionIDMemory   SectionID = 5
	SectionIDGlobal   SectionID = 6
	SectionIDExport   SectionID = 7
	SectionIDStart    SectionID = 8
	SectionIDElement  SectionID = 9
	SectionIDCode     SectionID = 10
	SectionIDData     SectionID = 11
)
