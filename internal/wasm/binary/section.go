package binary

import (
	"github.com/tarnlang/tarn/internal/leb128"
	"github.com/tarnlang/tarn/internal/wasm"
)

// encodeSection encodes the sectionID, the byte length of the contents, then
// the contents themselves.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#sections%E2%91%A0
func encodeSection(sectionID wasm.SectionID, contents []byte) []byte {
	return append([]byte{sectionID}, encodeSizePrefixed(contents)...)
}

// encodeTypeSection encodes a SectionIDType header and a vector of
// FuncType entries.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#type-section%E2%91%A0
func encodeTypeSection(types []*wasm.FunctionType) []byte {
	contents := leb128.EncodeUint32(uint32(len(types)))
	for _, t := range types {
		contents = append(contents, encodeFunctionType(t)...)
	}
	return encodeSection(wasm.SectionIDType, contents)
}

// encodeImportSection encodes a SectionIDImport header and a vector of
// import entries.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#import-section%E2%91%A0
func encodeImportSection(imports []*wasm.Import) []byte {
	contents := leb128.EncodeUint32(uint32(len(imports)))
	for _, i := range imports {
		contents = append(contents, encodeImport(i)...)
	}
	return encodeSection(wasm.SectionIDImport, contents)
}

// encodeFunctionSection encodes a SectionIDFunction header and a vector of
// type indices, one per module-defined function.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#function-section%E2%91%A0
func encodeFunctionSection(typeIndices []wasm.Index) []byte {
	contents := leb128.EncodeUint32(uint32(len(typeIndices)))
	for _, i := range typeIndices {
		contents = append(contents, leb128.EncodeUint32(i)...)
	}
	return encodeSection(wasm.SectionIDFunction, contents)
}

// encodeMemorySection encodes a SectionIDMemory header and a vector of
// memory limits.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#memory-section%E2%91%A0
func encodeMemorySection(memories []*wasm.Memory) []byte {
	contents := leb128.EncodeUint32(uint32(len(memories)))
	for _, m := range memories {
		contents = append(contents, encodeLimits(m.Min, m.Max)...)
	}
	return encodeSection(wasm.SectionIDMemory, contents)
}

// encodeExportSection encodes a SectionIDExport header and a vector of
// export entries.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#export-section%E2%91%A0
func encodeExportSection(exports []*wasm.Export) []byte {
	contents := leb128.EncodeUint32(uint32(len(exports)))
	for _, e := range exports {
		contents = append(contents, encodeExport(e)...)
	}
	return encodeSection(wasm.SectionIDExport, contents)
}

// encodeCodeSection encodes a SectionIDCode header and a vector of code
// entries.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#code-section%E2%91%A0
func encodeCodeSection(code []*wasm.Code) []byte {
	contents := leb128.EncodeUint32(uint32(len(code)))
	for _, c := range code {
		contents = append(contents, encodeCode(c)...)
	}
	return encodeSection(wasm.SectionIDCode, contents)
}

// encodeDataSection encodes a SectionIDData header and a vector of data
// segments.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#data-section%E2%91%A0
func encodeDataSection(segments []*wasm.DataSegment) []byte {
	contents := leb128.EncodeUint32(uint32(len(segments)))
	for _, d := range segments {
		contents = append(contents, encodeDataSegment(d)...)
	}
	return encodeSection(wasm.SectionIDData, contents)
}
