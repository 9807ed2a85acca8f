// Package tarn is an ahead-of-time compiler from the Tarn language to
// WebAssembly.
//
// Compilation is transactional: source text goes through the parser, the
// semanticizer and the code generator, and the first error at any stage
// aborts with no output. A successful compile returns a WebAssembly 1.0
// binary any standard runtime can load.
package tarn

import (
	"github.com/tarnlang/tarn/internal/codegen"
	"github.com/tarnlang/tarn/internal/semantics"
	"github.com/tarnlang/tarn/internal/syntax"
	"github.com/tarnlang/tarn/internal/wasm"
	"github.com/tarnlang/tarn/internal/wasm/binary"
	"github.com/tarnlang/tarn/internal/wasmdebug"
)

// Compile compiles Tarn source text into a WebAssembly binary.
//
// The returned error is a *syntax.ParseError, *semantics.SemanticizeError or
// *codegen.CodeGenError depending on the failing stage.
func Compile(source string) ([]byte, error) {
	m, err := compileModule(source)
	if err != nil {
		return nil, err
	}
	return binary.EncodeModule(m), nil
}

// Inspect compiles source and returns a readable listing of the resulting
// module's sections instead of its bytes.
func Inspect(source string) (string, error) {
	m, err := compileModule(source)
	if err != nil {
		return "", err
	}
	return wasmdebug.DumpModule(m), nil
}

func compileModule(source string) (*wasm.Module, error) {
	prog, err := syntax.Parse(source)
	if err != nil {
		return nil, err
	}
	root, err := semantics.Semanticize(prog)
	if err != nil {
		return nil, err
	}
	return codegen.GenerateModule(root)
}
