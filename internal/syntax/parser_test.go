package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const wasiHello = `
import fn wasi_unstable fd_write(fd : Int, ptr : Int, len : Int, out : Int) -> Int;

fn _start() -> Int {
    set! 0 8;
    set! 4 2;
    set! 8 65;
    set! 9 10;
    fd_write(1, 0, 1, 0)
}
`

func TestParse(t *testing.T) {
	intType := &Identifier{Name: "Int"}

	tests := []struct {
		name     string
		input    string
		expected *Program
	}{
		{
			name:     "empty",
			input:    "",
			expected: &Program{},
		},
		{
			name:     "stray semicolons",
			input:    " ;; ;\n",
			expected: &Program{},
		},
		{
			name:  "constant function",
			input: "fn f() -> Int 42",
			expected: &Program{Items: []Node{
				&FunctionImplementation{
					Name:       "f",
					ReturnType: intType,
					Body:       &IntegerLiteral{Value: 42},
				},
			}},
		},
		{
			name:  "negative literal",
			input: "fn f() -> Int -1",
			expected: &Program{Items: []Node{
				&FunctionImplementation{
					Name:       "f",
					ReturnType: intType,
					Body:       &IntegerLiteral{Value: -1},
				},
			}},
		},
		{
			name:  "parenthesized atom",
			input: "fn f() -> Int (42)",
			expected: &Program{Items: []Node{
				&FunctionImplementation{
					Name:       "f",
					ReturnType: intType,
					Body:       &IntegerLiteral{Value: 42},
				},
			}},
		},
		{
			name:  "two functions without separators",
			input: "fn a() -> Int 1  fn b() -> Int 1",
			expected: &Program{Items: []Node{
				&FunctionImplementation{Name: "a", ReturnType: intType, Body: &IntegerLiteral{Value: 1}},
				&FunctionImplementation{Name: "b", ReturnType: intType, Body: &IntegerLiteral{Value: 1}},
			}},
		},
		{
			name:  "parameter reference",
			input: "fn id(x : Int) -> Int x",
			expected: &Program{Items: []Node{
				&FunctionImplementation{
					Name:       "id",
					Params:     []*FunctionParameter{{Name: "x", Type: intType}},
					ReturnType: intType,
					Body:       &Identifier{Name: "x"},
				},
			}},
		},
		{
			name:  "empty block",
			input: "fn f() -> Int {}",
			expected: &Program{Items: []Node{
				&FunctionImplementation{
					Name:       "f",
					ReturnType: intType,
					Body:       &Block{},
				},
			}},
		},
		{
			name:  "terminated block",
			input: "fn f() -> Int { set! 0 65; }",
			expected: &Program{Items: []Node{
				&FunctionImplementation{
					Name:       "f",
					ReturnType: intType,
					Body: &Block{
						Items: []Node{
							&MemSet{Addr: &IntegerLiteral{Value: 0}, Value: &IntegerLiteral{Value: 65}},
						},
						Terminated: true,
					},
				},
			}},
		},
		{
			name:  "unterminated block yields last expression",
			input: "fn f() -> Int { set! 0 65; 7 }",
			expected: &Program{Items: []Node{
				&FunctionImplementation{
					Name:       "f",
					ReturnType: intType,
					Body: &Block{
						Items: []Node{
							&MemSet{Addr: &IntegerLiteral{Value: 0}, Value: &IntegerLiteral{Value: 65}},
							&IntegerLiteral{Value: 7},
						},
					},
				},
			}},
		},
		{
			name:  "nested call arguments",
			input: "fn f(x : Int) -> Int g(g(x))",
			expected: &Program{Items: []Node{
				&FunctionImplementation{
					Name:       "f",
					Params:     []*FunctionParameter{{Name: "x", Type: intType}},
					ReturnType: intType,
					Body: &Call{
						Callee: &Identifier{Name: "g"},
						Args: []Node{
							&Call{Callee: &Identifier{Name: "g"}, Args: []Node{&Identifier{Name: "x"}}},
						},
					},
				},
			}},
		},
		{
			name:  "import",
			input: "import fn wasi_unstable fd_write(fd : Int) -> Int;",
			expected: &Program{Items: []Node{
				&FunctionImport{
					Module:     "wasi_unstable",
					Name:       "fd_write",
					Params:     []*FunctionParameter{{Name: "fd", Type: intType}},
					ReturnType: intType,
				},
			}},
		},
		{
			name:  "wasi hello",
			input: wasiHello,
			expected: &Program{Items: []Node{
				&FunctionImport{
					Module: "wasi_unstable",
					Name:   "fd_write",
					Params: []*FunctionParameter{
						{Name: "fd", Type: intType},
						{Name: "ptr", Type: intType},
						{Name: "len", Type: intType},
						{Name: "out", Type: intType},
					},
					ReturnType: intType,
				},
				&FunctionImplementation{
					Name:       "_start",
					ReturnType: intType,
					Body: &Block{
						Items: []Node{
							&MemSet{Addr: &IntegerLiteral{Value: 0}, Value: &IntegerLiteral{Value: 8}},
							&MemSet{Addr: &IntegerLiteral{Value: 4}, Value: &IntegerLiteral{Value: 2}},
							&MemSet{Addr: &IntegerLiteral{Value: 8}, Value: &IntegerLiteral{Value: 65}},
							&MemSet{Addr: &IntegerLiteral{Value: 9}, Value: &IntegerLiteral{Value: 10}},
							&Call{
								Callee: &Identifier{Name: "fd_write"},
								Args: []Node{
									&IntegerLiteral{Value: 1},
									&IntegerLiteral{Value: 0},
									&IntegerLiteral{Value: 1},
									&IntegerLiteral{Value: 0},
								},
							},
						},
					},
				},
			}},
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			prog, err := Parse(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, prog)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr string
	}{
		{
			name:        "function name cannot be an integer",
			input:       "fn 1f() -> Int 1",
			expectedErr: "parse error at offset 3: expected identifier",
		},
		{
			name:        "trailing garbage",
			input:       "fn f() -> Int 42 oops",
			expectedErr: `parse error at offset 17: expected ";" or "fn" or "import"`,
		},
		{
			name:        "import requires trailing semicolon",
			input:       "import fn m f() -> Int",
			expectedErr: `parse error at offset 22: expected ";"`,
		},
		{
			name:        "reserved word is not an identifier",
			input:       "fn fn() -> Int 1",
			expectedErr: "parse error at offset 3: expected identifier",
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.EqualError(t, err, tc.expectedErr)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}
