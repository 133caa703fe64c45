package grammar

import (
	"bufio"
	"strings"

	"github.com/tinylangtools/tinytool/internal/ferrors"
)

// ParseRules reads the "rules:" block format: lines of the form
// "lhs -> rhs1 | rhs2 | ..." with whitespace-significant token separation
// within each alternative. Blank lines are skipped. The first lhs
// encountered becomes the grammar's start symbol if start is empty.
//
// terminals is the vocabulary seeded from the lexer's keyword/symbol set
// plus identifier, number, and the end-marker; start, if
// non-empty, overrides the "first lhs wins" default (e.g. when a pattern
// file's "start:" key names it explicitly).
func ParseRules(rules string, terminals []string, start string) (*Grammar, error) {
	g := New(terminals, start)

	scanner := bufio.NewScanner(strings.NewReader(rules))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		lhs, alts, err := parseRuleLine(line)
		if err != nil {
			return nil, err
		}

		if g.Start == "" {
			g.Start = lhs
		}

		for _, alt := range alts {
			if err := g.AddProduction(lhs, alt); err != nil {
				return nil, err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, ferrors.IO(err, "reading grammar rules")
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// parseRuleLine splits one "lhs -> rhs1 | rhs2 | ..." line into its
// left-hand side and a list of token sequences, one per alternative.
func parseRuleLine(line string) (string, [][]string, error) {
	sides := strings.SplitN(line, "->", 2)
	if len(sides) != 2 {
		return "", nil, ferrors.PatternParse("grammar line missing '->': %q", line)
	}

	lhs := strings.TrimSpace(sides[0])
	if lhs == "" {
		return "", nil, ferrors.PatternParse("grammar line has empty left-hand side: %q", line)
	}

	altStrs := strings.Split(sides[1], "|")
	alts := make([][]string, 0, len(altStrs))
	for _, altStr := range altStrs {
		fields := strings.Fields(altStr)
		if len(fields) == 0 {
			return "", nil, ferrors.PatternParse("empty alternative in production for %q", lhs)
		}
		alts = append(alts, fields)
	}

	return lhs, alts, nil
}
