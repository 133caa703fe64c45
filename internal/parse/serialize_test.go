package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SaveTable_LoadTable_roundTrip(t *testing.T) {
	a := exprAutomaton(t)
	if err := BuildSLR1(a); !assert.NoError(t, err) {
		return
	}

	data, err := SaveTable(a)
	if !assert.NoError(t, err) {
		return
	}

	loaded, err := LoadTable(data)
	if !assert.NoError(t, err) {
		return
	}

	tokens := []Token{
		{Kind: "identifier", Lexeme: "x"},
		{Kind: "+", Lexeme: ""},
		{Kind: "identifier", Lexeme: "y"},
	}

	tree, err := Parse(loaded, tokens)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{"identifier -> x", "+", "identifier -> y"}, tree.Yield())
}
