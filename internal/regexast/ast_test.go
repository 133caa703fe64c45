package regexast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_valid(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		expect  *Node
	}{
		{
			name:    "single literal",
			pattern: "a",
			expect:  Literal('a'),
		},
		{
			name:    "concat by adjacency",
			pattern: "ab",
			expect:  Concat(Literal('a'), Literal('b')),
		},
		{
			name:    "union binds looser than concat",
			pattern: "ab|c",
			expect:  Union(Concat(Literal('a'), Literal('b')), Literal('c')),
		},
		{
			name:    "star binds tighter than concat",
			pattern: "ab*",
			expect:  Concat(Literal('a'), Star(Literal('b'))),
		},
		{
			name:    "parens override precedence",
			pattern: "(a|b)*",
			expect:  Star(Union(Literal('a'), Literal('b'))),
		},
		{
			name:    "plus and ques",
			pattern: "a+b?",
			expect:  Concat(Plus(Literal('a')), Ques(Literal('b'))),
		},
		{
			name:    "stacked postfix is left associative",
			pattern: "a**",
			expect:  Star(Star(Literal('a'))),
		},
		{
			name:    "plus in operand position is a literal sign",
			pattern: "(+|-)",
			expect:  Union(Literal('+'), Literal('-')),
		},
		{
			name:    "number regex from scenario 1",
			pattern: "d+(.d+)?(e(+|-)?d+)?",
			expect: Concat(
				Concat(
					Plus(Literal('d')),
					Ques(Concat(Literal('.'), Plus(Literal('d')))),
				),
				Ques(Concat(Concat(Literal('e'), Ques(Union(Literal('+'), Literal('-')))), Plus(Literal('d')))),
			),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Parse(tc.pattern)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func Test_Parse_invalid(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
	}{
		{name: "empty pattern", pattern: ""},
		{name: "leading union", pattern: "|a"},
		{name: "trailing union", pattern: "a|"},
		{name: "leading star", pattern: "*a"},
		{name: "unmatched open paren", pattern: "(a"},
		{name: "unmatched close paren", pattern: "a)"},
		{name: "operator directly after open paren", pattern: "(*a)"},
		{name: "empty parens", pattern: "()"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.pattern)
			assert.Error(t, err)
		})
	}
}

func Test_Node_Alphabet(t *testing.T) {
	n, err := Parse("a(b|c)*d")
	if !assert.NoError(t, err) {
		return
	}

	alpha := n.Alphabet()
	assert.Equal(t, map[rune]struct{}{'a': {}, 'b': {}, 'c': {}, 'd': {}}, alpha)
}
