// Package grammarfile parses the standalone grammar file external
// interface: the same "lhs -> rhs1 | rhs2 | ..." rules
// syntax the pattern file's trailing rules: block uses, without any of
// the lexical-vocabulary keys surrounding it.
package grammarfile

import (
	"bufio"
	"io"
	"strings"

	"github.com/tinylangtools/tinytool/internal/ferrors"
	"github.com/tinylangtools/tinytool/internal/grammar"
)

// Load parses a standalone grammar file's rules text into a Grammar,
// given the terminal vocabulary produced by the lexer stage (keywords,
// symbols, "identifier", "number", and the end-marker, which grammar.New
// always adds via grammar.EndMarker).
func Load(r io.Reader, terminals []string, start string) (*grammar.Grammar, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, ferrors.IO(err, "reading grammar file")
	}
	return grammar.ParseRules(strings.TrimSpace(string(data)), terminals, start)
}
