// Package semantics lowers the parse tree into a typed intermediate
// representation with resolved names and stable indices.
package semantics

import (
	"strings"
)

// FuncID indexes the function space. IDs are assigned sequentially from zero
// in declaration order, imports and implementations alike.
type FuncID uint32

// LocalID indexes a function's local space: parameters first, declared
// locals after.
type LocalID uint32

// TypeID indexes the interned signature table built during code generation.
type TypeID uint32

// TypeKind discriminates the closed set of source types.
type TypeKind byte

const (
	// TypeKindInt is a 32-bit integer.
	TypeKindInt TypeKind = iota
	// TypeKindFunction is a signature; only valid for declarations, not
	// values.
	TypeKindFunction
)

// Type is a source type. Equality is structural; use Key as a map key.
type Type struct {
	Kind TypeKind

	// Params and Result are only meaningful when Kind is TypeKindFunction.
	// A nil Result means the function yields nothing.
	Params []Type
	Result *Type
}

// IntType returns the 32-bit integer type.
func IntType() Type {
	return Type{Kind: TypeKindInt}
}

// FunctionType returns the signature with the given parameters and optional
// result.
func FunctionType(params []Type, result *Type) Type {
	return Type{Kind: TypeKindFunction, Params: params, Result: result}
}

// Key returns a unique textual form of the type, usable as a map key for
// structural equality, e.g. "fn(Int,Int)->Int".
func (t Type) Key() string {
	if t.Kind == TypeKindInt {
		return "Int"
	}
	var sb strings.Builder
	sb.WriteString("fn(")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Key())
	}
	sb.WriteByte(')')
	if t.Result != nil {
		sb.WriteString("->")
		sb.WriteString(t.Result.Key())
	}
	return sb.String()
}

// Node is a node of the semantic tree.
type Node interface {
	semanticNode()
}

// Root holds the top-level function declarations.
type Root struct {
	Declarations []Node
}

// FunctionDeclaration binds a FuncID to a signature and either an import or
// an implementation.
type FunctionDeclaration struct {
	ID         FuncID
	Name       string
	Signature  Type
	Definition Definition
}

// Definition is how a declared function is provided.
type Definition interface {
	definition()
}

// Import names a host-provided function.
type Import struct {
	Module string
	Name   string
}

// Implementation is a function body defined in this module. Locals are the
// types of locals past the parameters; parameters live in the signature.
type Implementation struct {
	Locals []Type
	Body   Node
}

// IntegerConstant is an integer value.
type IntegerConstant struct {
	Value int64
}

// Local reads a parameter or local by index.
type Local struct {
	ID LocalID
}

// Call applies the declared function Target to Args.
type Call struct {
	Target FuncID
	Args   []Node
}

// Block evaluates Items in order. Terminated means the last expression's
// value is discarded rather than yielded.
type Block struct {
	Items      []Node
	Terminated bool
}

// MemSet stores Value into linear memory at Addr.
type MemSet struct {
	Addr  Node
	Value Node
}

func (*Root) semanticNode()                {}
func (*FunctionDeclaration) semanticNode() {}
func (*IntegerConstant) semanticNode()     {}
func (*Local) semanticNode()               {}
func (*Call) semanticNode()                {}
func (*Block) semanticNode()               {}
func (*MemSet) semanticNode()              {}

func (*Import) definition()         {}
func (*Implementation) definition() {}
