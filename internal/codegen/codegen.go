// Package codegen lowers a semantic tree into a wasm.Module in two passes:
// the first interns every function signature and indexes every declaration,
// the second emits instructions for each implementation and assembles the
// sections.
package codegen

import (
	"fmt"
	"sort"

	"github.com/tarnlang/tarn/internal/semantics"
	"github.com/tarnlang/tarn/internal/wasm"
	"github.com/tarnlang/tarn/internal/wasm/binary"
)

// StartFunctionName is the entrypoint exported from compiled modules, along
// with the linear memory WASI hosts expect under "memory".
const StartFunctionName = "_start"

// CodeGenError reports why a semantic tree could not be lowered to a module.
type CodeGenError struct {
	Reason string
}

func (e *CodeGenError) Error() string {
	return "code gen error: " + e.Reason
}

func errorf(format string, args ...interface{}) *CodeGenError {
	return &CodeGenError{Reason: fmt.Sprintf(format, args...)}
}

// typeTable is a bijective mapping between TypeIDs and function signatures.
// IDs are assigned in first-seen order; structurally equal signatures share
// one entry.
type typeTable struct {
	ids   map[string]semantics.TypeID
	types []semantics.Type
}

func newTypeTable() *typeTable {
	return &typeTable{ids: map[string]semantics.TypeID{}}
}

func (t *typeTable) intern(typ semantics.Type) semantics.TypeID {
	key := typ.Key()
	if id, ok := t.ids[key]; ok {
		return id
	}
	id := semantics.TypeID(len(t.types))
	t.ids[key] = id
	t.types = append(t.types, typ)
	return id
}

func (t *typeTable) lookup(typ semantics.Type) (semantics.TypeID, bool) {
	id, ok := t.ids[typ.Key()]
	return id, ok
}

// functionEntry is what pass one records per declaration.
type functionEntry struct {
	signature semantics.Type
	locals    []semantics.Type
}

// globalContext is the module-wide state shared by every CodeGenContext.
type globalContext struct {
	typeTable     *typeTable
	functionTable map[semantics.FuncID]*functionEntry
}

// codeGenContext is a per-function or per-block scope linked to its parent
// and to the module-wide state; contexts are immutable once created.
// Instruction generation reads only the global tables; nothing walks the
// parent chain.
type codeGenContext struct {
	global *globalContext
	parent *codeGenContext
	locals []semantics.Type
}

func (c *codeGenContext) child() *codeGenContext {
	return &codeGenContext{global: c.global, parent: c}
}

// GenerateModule lowers root, which must be a *semantics.Root, into an
// encodable module.
func GenerateModule(root semantics.Node) (*wasm.Module, error) {
	r, ok := root.(*semantics.Root)
	if !ok {
		return nil, errorf("must generate module on a root node")
	}

	// Pass one: intern signatures and index every declaration.
	global := &globalContext{
		typeTable:     newTypeTable(),
		functionTable: map[semantics.FuncID]*functionEntry{},
	}
	var imports, implementations []*semantics.FunctionDeclaration
	for _, child := range r.Declarations {
		decl, ok := child.(*semantics.FunctionDeclaration)
		if !ok {
			return nil, errorf("root must only contain valid function definitions")
		}
		global.typeTable.intern(decl.Signature)
		switch def := decl.Definition.(type) {
		case *semantics.Import:
			global.functionTable[decl.ID] = &functionEntry{signature: decl.Signature}
			imports = append(imports, decl)
		case *semantics.Implementation:
			global.functionTable[decl.ID] = &functionEntry{signature: decl.Signature, locals: def.Locals}
			implementations = append(implementations, decl)
		default:
			return nil, errorf("root must only contain valid function definitions")
		}
	}

	// The wasm function index space puts imports before module-defined
	// functions, so interleavings the IR numbering cannot express are
	// rejected rather than silently renumbered.
	for _, imp := range imports {
		for _, impl := range implementations {
			if impl.ID < imp.ID {
				return nil, errorf("import %q must precede all implementations", imp.Name)
			}
		}
	}

	// Pass two: emit instructions per implementation.
	codeTable := map[semantics.FuncID][]wasm.Instruction{}
	for _, decl := range implementations {
		def := decl.Definition.(*semantics.Implementation)
		ctx := &codeGenContext{global: global, locals: def.Locals}
		instrs, err := generateInstructions(def.Body, ctx)
		if err != nil {
			return nil, err
		}
		codeTable[decl.ID] = instrs
	}

	// The code table and the implemented part of the function table must
	// cover the same IDs.
	if len(codeTable) != len(implementations) {
		return nil, errorf("code and function table key mismatch")
	}
	for _, decl := range implementations {
		if _, ok := codeTable[decl.ID]; !ok {
			return nil, errorf("code and function table key mismatch")
		}
	}

	implIDs := make([]semantics.FuncID, 0, len(implementations))
	for _, decl := range implementations {
		implIDs = append(implIDs, decl.ID)
	}
	sort.Slice(implIDs, func(i, j int) bool { return implIDs[i] < implIDs[j] })

	m := &wasm.Module{}

	// Type section: every interned signature, in TypeID order.
	for _, typ := range global.typeTable.types {
		ft, err := wasmFunctionType(typ)
		if err != nil {
			return nil, err
		}
		m.TypeSection = append(m.TypeSection, ft)
	}

	// Import section, in declaration order.
	for _, decl := range imports {
		typeID, ok := global.typeTable.lookup(decl.Signature)
		if !ok {
			return nil, errorf("missing type key")
		}
		def := decl.Definition.(*semantics.Import)
		m.ImportSection = append(m.ImportSection, &wasm.Import{
			Type:     wasm.ExternTypeFunc,
			Module:   def.Module,
			Name:     def.Name,
			DescFunc: wasm.Index(typeID),
		})
	}

	// Function and code sections, in matching index order.
	for _, id := range implIDs {
		entry := global.functionTable[id]
		typeID, ok := global.typeTable.lookup(entry.signature)
		if !ok {
			return nil, errorf("missing type key")
		}
		m.FunctionSection = append(m.FunctionSection, wasm.Index(typeID))

		localTypes := make([]wasm.ValueType, len(entry.locals))
		for i, l := range entry.locals {
			vt, err := wasmValueType(l)
			if err != nil {
				return nil, errorf("unable to convert local type")
			}
			localTypes[i] = vt
		}
		body, err := binary.EncodeExpr(codeTable[id])
		if err != nil {
			return nil, &CodeGenError{Reason: err.Error()}
		}
		m.CodeSection = append(m.CodeSection, &wasm.Code{LocalTypes: localTypes, Body: body})
	}

	// One linear memory of at least one page.
	m.MemorySection = []*wasm.Memory{{Min: 1}}

	// Export the entrypoint and, for its host's benefit, the memory.
	for _, decl := range implementations {
		if decl.Name != StartFunctionName {
			continue
		}
		m.ExportSection = append(m.ExportSection,
			&wasm.Export{Name: StartFunctionName, Type: wasm.ExternTypeFunc, Index: wasm.Index(decl.ID)},
			&wasm.Export{Name: "memory", Type: wasm.ExternTypeMemory, Index: 0},
		)
	}

	return m, nil
}

// generateInstructions emits the instruction sequence of one expression.
func generateInstructions(node semantics.Node, ctx *codeGenContext) ([]wasm.Instruction, error) {
	switch n := node.(type) {
	case *semantics.IntegerConstant:
		// Integer literals are 32-bit regardless of their declared width.
		return []wasm.Instruction{{Opcode: wasm.OpcodeI32Const, I32: int32(n.Value)}}, nil

	case *semantics.Local:
		return []wasm.Instruction{{Opcode: wasm.OpcodeLocalGet, Index: wasm.Index(n.ID)}}, nil

	case *semantics.Block:
		inner := ctx.child()
		var result []wasm.Instruction
		for i, item := range n.Items {
			instrs, err := generateInstructions(item, inner)
			if err != nil {
				return nil, err
			}
			result = append(result, instrs...)
			// Values the block does not pass on are dropped: every
			// non-final expression's, and the final one's when a trailing
			// semicolon terminated the block.
			if yieldsValue(item, ctx.global) && (i < len(n.Items)-1 || n.Terminated) {
				result = append(result, wasm.Instruction{Opcode: wasm.OpcodeDrop})
			}
		}
		return result, nil

	case *semantics.Call:
		if _, ok := ctx.global.functionTable[n.Target]; !ok {
			return nil, errorf("unable to resolve symbol with id %d", n.Target)
		}
		var result []wasm.Instruction
		for _, arg := range n.Args {
			instrs, err := generateInstructions(arg, ctx)
			if err != nil {
				return nil, err
			}
			result = append(result, instrs...)
		}
		return append(result, wasm.Instruction{Opcode: wasm.OpcodeCall, Index: wasm.Index(n.Target)}), nil

	case *semantics.MemSet:
		addr, err := generateInstructions(n.Addr, ctx)
		if err != nil {
			return nil, err
		}
		value, err := generateInstructions(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		result := append(addr, value...)
		return append(result, wasm.Instruction{Opcode: wasm.OpcodeI32Store, Mem: wasm.MemArg{Align: 2}}), nil

	case *semantics.FunctionDeclaration:
		return nil, errorf("can't generate instructions for a function definition")

	case *semantics.Root:
		return nil, errorf("can't generate instructions for a root")
	}
	return nil, errorf("can't generate instructions for an unknown node")
}

// yieldsValue reports whether evaluating the node leaves a value on the
// stack.
func yieldsValue(node semantics.Node, global *globalContext) bool {
	switch n := node.(type) {
	case *semantics.IntegerConstant, *semantics.Local:
		return true
	case *semantics.Call:
		if entry, ok := global.functionTable[n.Target]; ok {
			return entry.signature.Result != nil
		}
		return false
	case *semantics.Block:
		return !n.Terminated && len(n.Items) > 0 && yieldsValue(n.Items[len(n.Items)-1], global)
	}
	return false
}

// wasmValueType converts a source type to a wasm value type. Only Int is
// representable as a value.
func wasmValueType(t semantics.Type) (wasm.ValueType, error) {
	if t.Kind != semantics.TypeKindInt {
		return 0, errorf("unable to convert value type")
	}
	return wasm.ValueTypeI32, nil
}

// wasmFunctionType converts a source signature to a wasm function type.
func wasmFunctionType(t semantics.Type) (*wasm.FunctionType, error) {
	if t.Kind != semantics.TypeKindFunction {
		return nil, errorf("unable to convert function type")
	}
	ft := &wasm.FunctionType{Params: []wasm.ValueType{}, Results: []wasm.ValueType{}}
	for _, p := range t.Params {
		vt, err := wasmValueType(p)
		if err != nil {
			return nil, errorf("unable to convert function type")
		}
		ft.Params = append(ft.Params, vt)
	}
	if t.Result != nil {
		vt, err := wasmValueType(*t.Result)
		if err != nil {
			return nil, errorf("unable to convert function type")
		}
		ft.Results = append(ft.Results, vt)
	}
	return ft, nil
}
