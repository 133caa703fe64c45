package parse

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Automaton_String_rendersStateRows(t *testing.T) {
	a := exprAutomaton(t)

	out := a.String()

	assert.Contains(t, out, "STATE")
	for _, is := range a.States {
		assert.Contains(t, out, strconv.Itoa(is.Index))
	}
}
