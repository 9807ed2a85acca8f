package semantics

import (
	"fmt"

	"github.com/tarnlang/tarn/internal/syntax"
)

// SemanticizeError reports why a parse tree could not be lowered.
type SemanticizeError struct {
	Reason string
}

func (e *SemanticizeError) Error() string {
	return "semanticize error: " + e.Reason
}

func errorf(format string, args ...interface{}) *SemanticizeError {
	return &SemanticizeError{Reason: fmt.Sprintf(format, args...)}
}

// treeContext is a lexical scope: a name table with an optional parent.
// Lookup walks child to parent. Contexts are immutable once built.
type treeContext struct {
	parent *treeContext
	locals map[string]LocalID
}

func (c *treeContext) resolve(name string) (LocalID, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if id, ok := ctx.locals[name]; ok {
			return id, true
		}
	}
	return 0, false
}

// semanticizer carries the function index built in the first phase.
type semanticizer struct {
	functions map[string]FuncID
}

// Semanticize lowers a program into a Root of function declarations.
//
// Phase one scans top-level items in source order, assigning each function
// the next FuncID from zero. Phase two lowers each item, resolving call
// targets through the function table and identifiers through the parameter
// scope.
func Semanticize(prog *syntax.Program) (*Root, error) {
	s := &semanticizer{functions: map[string]FuncID{}}
	for _, item := range prog.Items {
		var name string
		switch n := item.(type) {
		case *syntax.FunctionImplementation:
			name = n.Name
		case *syntax.FunctionImport:
			name = n.Name
		default:
			return nil, errorf("must only have functions in program")
		}
		if _, ok := s.functions[name]; ok {
			return nil, errorf("duplicate function name %q", name)
		}
		s.functions[name] = FuncID(len(s.functions))
	}

	root := &Root{}
	for _, item := range prog.Items {
		decl, err := s.declaration(item)
		if err != nil {
			return nil, err
		}
		root.Declarations = append(root.Declarations, decl)
	}
	return root, nil
}

// typeOf converts a type name to a source type. Every type name, whatever
// identifier it is, becomes Int.
func (s *semanticizer) typeOf(id *syntax.Identifier) Type {
	return IntType()
}

// signatureOf builds the Type_Function of a parameter list and return type.
func (s *semanticizer) signatureOf(params []*syntax.FunctionParameter, ret *syntax.Identifier) Type {
	paramTypes := make([]Type, len(params))
	for i, p := range params {
		paramTypes[i] = s.typeOf(p.Type)
	}
	result := s.typeOf(ret)
	return FunctionType(paramTypes, &result)
}

// paramScope opens the lexical scope holding a function's parameters, in
// declaration order from LocalID zero.
func paramScope(params []*syntax.FunctionParameter) *treeContext {
	locals := make(map[string]LocalID, len(params))
	for i, p := range params {
		locals[p.Name] = LocalID(i)
	}
	return &treeContext{locals: locals}
}

func (s *semanticizer) declaration(item syntax.Node) (*FunctionDeclaration, error) {
	switch n := item.(type) {
	case *syntax.FunctionImport:
		return &FunctionDeclaration{
			ID:        s.functions[n.Name],
			Name:      n.Name,
			Signature: s.signatureOf(n.Params, n.ReturnType),
			Definition: &Import{
				Module: n.Module,
				Name:   n.Name,
			},
		}, nil
	case *syntax.FunctionImplementation:
		body, err := s.expression(n.Body, paramScope(n.Params))
		if err != nil {
			return nil, err
		}
		return &FunctionDeclaration{
			ID:        s.functions[n.Name],
			Name:      n.Name,
			Signature: s.signatureOf(n.Params, n.ReturnType),
			Definition: &Implementation{
				Body: body,
			},
		}, nil
	}
	return nil, errorf("must only have functions in program")
}

func (s *semanticizer) expression(node syntax.Node, ctx *treeContext) (Node, error) {
	switch n := node.(type) {
	case *syntax.Identifier:
		if id, ok := ctx.resolve(n.Name); ok {
			return &Local{ID: id}, nil
		}
		return nil, errorf("unable to resolve symbol %q", n.Name)

	case *syntax.IntegerLiteral:
		return &IntegerConstant{Value: n.Value}, nil

	case *syntax.Call:
		target, ok := n.Callee.(*syntax.Identifier)
		if !ok {
			return nil, errorf("must call an identifier")
		}
		id, ok := s.functions[target.Name]
		if !ok {
			return nil, errorf("no function %s", target.Name)
		}
		args := make([]Node, len(n.Args))
		for i, arg := range n.Args {
			a, err := s.expression(arg, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &Call{Target: id, Args: args}, nil

	case *syntax.Block:
		// A block opens a child scope; it holds no names yet but keeps
		// lookup walking the chain once block-scoped locals exist.
		inner := &treeContext{parent: ctx}
		items := make([]Node, len(n.Items))
		for i, item := range n.Items {
			it, err := s.expression(item, inner)
			if err != nil {
				return nil, err
			}
			items[i] = it
		}
		return &Block{Items: items, Terminated: n.Terminated}, nil

	case *syntax.MemSet:
		addr, err := s.expression(n.Addr, ctx)
		if err != nil {
			return nil, err
		}
		value, err := s.expression(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		return &MemSet{Addr: addr, Value: value}, nil
	}
	return nil, errorf("unexpected node in expression position")
}
