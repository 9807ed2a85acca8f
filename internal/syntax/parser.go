package syntax

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// reservedWords cannot be used as identifiers.
var reservedWords = map[string]bool{"fn": true, "import": true}

// ParseError reports the furthest byte offset the parser reached and the
// tokens that would have allowed it to continue.
type ParseError struct {
	Offset   int
	Expected []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: expected %s", e.Offset, strings.Join(e.Expected, " or "))
}

// Parse parses a whole source file. The input must be consumed entirely;
// trailing garbage is a ParseError.
func Parse(source string) (*Program, error) {
	p := &parser{source: source}
	prog := p.program()
	if prog == nil || p.pos != len(p.source) {
		return nil, p.err()
	}
	return prog, nil
}

type parser struct {
	source string
	pos    int

	// failOffset and failExpected track the furthest failure for error
	// reporting. Backtracking rewinds pos but never these.
	failOffset   int
	failExpected []string
}

// fail records an expectation at the current position and returns false.
func (p *parser) fail(expected string) bool {
	if p.pos > p.failOffset {
		p.failOffset = p.pos
		p.failExpected = p.failExpected[:0]
	}
	if p.pos == p.failOffset {
		for _, e := range p.failExpected {
			if e == expected {
				return false
			}
		}
		p.failExpected = append(p.failExpected, expected)
	}
	return false
}

func (p *parser) err() error {
	expected := append([]string(nil), p.failExpected...)
	sort.Strings(expected)
	return &ParseError{Offset: p.failOffset, Expected: expected}
}

// ws skips any run of space, tab and newline characters.
func (p *parser) ws() {
	for p.pos < len(p.source) {
		switch p.source[p.pos] {
		case ' ', '\t', '\n':
			p.pos++
		default:
			return
		}
	}
}

// wsRequired skips whitespace, failing unless at least one character was
// consumed.
func (p *parser) wsRequired() bool {
	start := p.pos
	p.ws()
	if p.pos == start {
		return p.fail("whitespace")
	}
	return true
}

// literal consumes the exact text, or fails without consuming.
func (p *parser) literal(text string) bool {
	if strings.HasPrefix(p.source[p.pos:], text) {
		p.pos += len(text)
		return true
	}
	return p.fail(fmt.Sprintf("%q", text))
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// identifier consumes [A-Za-z_][A-Za-z_0-9]* unless the result is a reserved
// word.
func (p *parser) identifier() (string, bool) {
	start := p.pos
	if p.pos >= len(p.source) || !isIdentStart(p.source[p.pos]) {
		return "", p.fail("identifier")
	}
	end := p.pos + 1
	for end < len(p.source) && isIdentPart(p.source[end]) {
		end++
	}
	id := p.source[start:end]
	if reservedWords[id] {
		return "", p.fail("identifier")
	}
	p.pos = end
	return id, true
}

// keyword consumes the reserved word followed by a word boundary.
func (p *parser) keyword(word string) bool {
	if !strings.HasPrefix(p.source[p.pos:], word) {
		return p.fail(fmt.Sprintf("%q", word))
	}
	if end := p.pos + len(word); end < len(p.source) && isIdentPart(p.source[end]) {
		return p.fail(fmt.Sprintf("%q", word))
	}
	p.pos += len(word)
	return true
}

// integerLiteral consumes an optional minus sign then decimal digits.
func (p *parser) integerLiteral() (int64, bool) {
	start := p.pos
	end := p.pos
	if end < len(p.source) && p.source[end] == '-' {
		end++
	}
	digits := end
	for end < len(p.source) && p.source[end] >= '0' && p.source[end] <= '9' {
		end++
	}
	if end == digits {
		p.pos = start
		return 0, p.fail("integer")
	}
	n, err := strconv.ParseInt(p.source[start:end], 10, 64)
	if err != nil {
		p.pos = start
		return 0, p.fail("integer")
	}
	p.pos = end
	return n, true
}

// typeName parses a type, which is currently just an identifier.
func (p *parser) typeName() (*Identifier, bool) {
	id, ok := p.identifier()
	if !ok {
		return nil, false
	}
	return &Identifier{Name: id}, true
}

// expr is the lowest-precedence expression rule.
func (p *parser) expr() (Node, bool) {
	return p.memSet()
}

// memSet parses "set! addr value", or cascades to block. A partial match
// backtracks and retries the next alternative, as ordered choice requires.
func (p *parser) memSet() (Node, bool) {
	mark := p.pos
	if p.literal("set!") {
		if !p.wsRequired() {
			p.pos = mark
			return p.block()
		}
		addr, ok := p.expr()
		if !ok {
			p.pos = mark
			return p.block()
		}
		if !p.wsRequired() {
			p.pos = mark
			return p.block()
		}
		value, ok := p.expr()
		if !ok {
			p.pos = mark
			return p.block()
		}
		return &MemSet{Addr: addr, Value: value}, true
	}
	return p.block()
}

// block parses a braced statement sequence, or cascades to call. Terminated
// records a trailing semicolon inside the braces.
func (p *parser) block() (Node, bool) {
	mark := p.pos
	if !p.literal("{") {
		return p.call()
	}
	p.ws()
	var items []Node
	if first, ok := p.expr(); ok {
		items = append(items, first)
		for {
			sep := p.pos
			p.ws()
			if !p.literal(";") {
				p.pos = sep
				break
			}
			p.ws()
			item, ok := p.expr()
			if !ok {
				// The semicolon was the block terminator, not a separator.
				p.pos = sep
				break
			}
			items = append(items, item)
		}
	}
	p.ws()
	terminated := false
	if p.literal(";") {
		terminated = true
	}
	p.ws()
	if !p.literal("}") {
		p.pos = mark
		return p.call()
	}
	return &Block{Items: items, Terminated: terminated}, true
}

// call parses an atom optionally applied to an argument list.
func (p *parser) call() (Node, bool) {
	target, ok := p.atom()
	if !ok {
		return nil, false
	}
	mark := p.pos
	if !p.literal("(") {
		p.pos = mark
		return target, true
	}
	p.ws()
	var args []Node
	if first, ok := p.expr(); ok {
		args = append(args, first)
		for {
			sep := p.pos
			p.ws()
			if !p.literal(",") {
				p.pos = sep
				break
			}
			p.ws()
			arg, ok := p.expr()
			if !ok {
				// Not a well-formed argument list; the atom stands alone.
				p.pos = mark
				return target, true
			}
			args = append(args, arg)
		}
	}
	p.ws()
	if !p.literal(")") {
		p.pos = mark
		return target, true
	}
	return &Call{Callee: target, Args: args}, true
}

// atom parses an identifier, an integer literal or a parenthesized
// expression.
func (p *parser) atom() (Node, bool) {
	if id, ok := p.identifier(); ok {
		return &Identifier{Name: id}, true
	}
	if n, ok := p.integerLiteral(); ok {
		return &IntegerLiteral{Value: n}, true
	}
	mark := p.pos
	if !p.literal("(") {
		return nil, false
	}
	p.ws()
	e, ok := p.expr()
	if !ok {
		p.pos = mark
		return nil, false
	}
	p.ws()
	if !p.literal(")") {
		p.pos = mark
		return nil, false
	}
	return e, true
}

// parameter parses one "name : Type" entry.
func (p *parser) parameter() (*FunctionParameter, bool) {
	mark := p.pos
	name, ok := p.identifier()
	if !ok {
		return nil, false
	}
	p.ws()
	if !p.literal(":") {
		p.pos = mark
		return nil, false
	}
	p.ws()
	typ, ok := p.typeName()
	if !ok {
		p.pos = mark
		return nil, false
	}
	return &FunctionParameter{Name: name, Type: typ}, true
}

// parameterList parses a possibly-empty comma-separated parameter list.
func (p *parser) parameterList() ([]*FunctionParameter, bool) {
	var params []*FunctionParameter
	first, ok := p.parameter()
	if !ok {
		return nil, true
	}
	params = append(params, first)
	for {
		sep := p.pos
		p.ws()
		if !p.literal(",") {
			p.pos = sep
			return params, true
		}
		p.ws()
		param, ok := p.parameter()
		if !ok {
			return nil, false
		}
		params = append(params, param)
	}
}

// signature parses "( params ) -> Type", shared by imports and
// implementations.
func (p *parser) signature() ([]*FunctionParameter, *Identifier, bool) {
	if !p.literal("(") {
		return nil, nil, false
	}
	p.ws()
	params, ok := p.parameterList()
	if !ok {
		return nil, nil, false
	}
	p.ws()
	if !p.literal(")") {
		return nil, nil, false
	}
	p.ws()
	if !p.literal("->") {
		return nil, nil, false
	}
	p.ws()
	ret, ok := p.typeName()
	if !ok {
		return nil, nil, false
	}
	return params, ret, true
}

// functionImport parses
// "import fn module name ( params ) -> Type ;".
func (p *parser) functionImport() (Node, bool) {
	mark := p.pos
	if !p.keyword("import") || !p.wsRequired() || !p.keyword("fn") || !p.wsRequired() {
		p.pos = mark
		return nil, false
	}
	module, ok := p.identifier()
	if !ok {
		p.pos = mark
		return nil, false
	}
	if !p.wsRequired() {
		p.pos = mark
		return nil, false
	}
	name, ok := p.identifier()
	if !ok {
		p.pos = mark
		return nil, false
	}
	params, ret, ok := p.signature()
	if !ok {
		p.pos = mark
		return nil, false
	}
	p.ws()
	if !p.literal(";") {
		p.pos = mark
		return nil, false
	}
	return &FunctionImport{Module: module, Name: name, Params: params, ReturnType: ret}, true
}

// functionImplementation parses "fn name ( params ) -> Type body".
func (p *parser) functionImplementation() (Node, bool) {
	mark := p.pos
	if !p.keyword("fn") || !p.wsRequired() {
		p.pos = mark
		return nil, false
	}
	name, ok := p.identifier()
	if !ok {
		p.pos = mark
		return nil, false
	}
	params, ret, ok := p.signature()
	if !ok {
		p.pos = mark
		return nil, false
	}
	if !p.wsRequired() {
		p.pos = mark
		return nil, false
	}
	body, ok := p.expr()
	if !ok {
		p.pos = mark
		return nil, false
	}
	return &FunctionImplementation{Name: name, Params: params, ReturnType: ret, Body: body}, true
}

// semicolons skips any run of semicolons and whitespace.
func (p *parser) semicolons() {
	for {
		p.ws()
		if !p.literal(";") {
			return
		}
	}
}

// program parses the whole file: top-level items separated by optional
// semicolons.
func (p *parser) program() *Program {
	prog := &Program{}
	p.semicolons()
	for {
		item, ok := p.functionImport()
		if !ok {
			item, ok = p.functionImplementation()
		}
		if !ok {
			break
		}
		prog.Items = append(prog.Items, item)
		p.semicolons()
	}
	return prog
}
