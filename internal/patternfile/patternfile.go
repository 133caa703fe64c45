// Package patternfile parses the pattern file external interface: the
// declarative source that names a lexer's keywords, symbols, comment
// delimiters, and the identifier/number/comment regexes, plus a trailing
// grammar rules block.
package patternfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tinylangtools/tinytool/internal/ferrors"
	"golang.org/x/text/width"
)

const (
	defaultLetters = "abcdefghijklmnopqrstuvwxyz"
	defaultDigits  = "0123456789"
)

// Pattern is the structured result of parsing a pattern file: the
// lexical vocabulary a recognizer is built from, plus a raw rules block
// text handed to the grammar parser unparsed.
type Pattern struct {
	Keywords []string
	Symbols  []string

	LComment string
	RComment string
	Comment  string

	Identifier string
	Number     string

	Letters string
	Digits  string

	Start string
	Rules string
}

// Parse reads a pattern file from r: line-oriented "key: value" pairs,
// with "rules:" opening a trailing block of "lhs -> rhs1 | rhs2 | ..."
// lines read verbatim until EOF.
func Parse(r io.Reader) (*Pattern, error) {
	p := &Pattern{Letters: defaultLetters, Digits: defaultDigits}

	scanner := bufio.NewScanner(r)
	var rulesLines []string
	inRules := false

	for scanner.Scan() {
		line := scanner.Text()

		if inRules {
			rulesLines = append(rulesLines, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			return nil, ferrors.PatternParse("malformed line (expected \"key: value\"): %q", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "keywords":
			p.Keywords = strings.Fields(value)
		case "symbols":
			p.Symbols = strings.Fields(value)
		case "lcomment":
			p.LComment = value
		case "rcomment":
			p.RComment = value
		case "comment":
			p.Comment = value
		case "identifier":
			p.Identifier = value
		case "number":
			p.Number = value
		case "letters":
			p.Letters = value
		case "digits":
			p.Digits = value
		case "start":
			p.Start = value
		case "rules":
			inRules = true
		default:
			return nil, ferrors.PatternParse("unrecognized key %q", key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ferrors.IO(err, "reading pattern file")
	}

	p.Rules = strings.Join(rulesLines, "\n")

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the structural rules a pattern file must satisfy:
// at most one of the paired lcomment/rcomment keys or the single comment
// key is set (a pattern with neither is accepted), lcomment and rcomment
// are set together, and letters/digits (explicit or defaulted) contain no
// rune that golang.org/x/text/width classifies as East Asian fullwidth,
// halfwidth, or ambiguous. Other runes, including wide and control
// runes, are not rejected.
func (p *Pattern) Validate() error {
	pairSet := p.LComment != "" || p.RComment != ""
	singleSet := p.Comment != ""
	if pairSet && singleSet {
		return ferrors.PatternParse("both comment and lcomment/rcomment are set; exactly one form is allowed")
	}
	if p.LComment == "" && p.RComment != "" || p.LComment != "" && p.RComment == "" {
		return ferrors.PatternParse("lcomment and rcomment must be set together")
	}

	if err := validCharList("letters", p.Letters); err != nil {
		return err
	}
	if err := validCharList("digits", p.Digits); err != nil {
		return err
	}
	return nil
}

func validCharList(field, chars string) error {
	for _, r := range chars {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianHalfwidth, width.EastAsianAmbiguous:
			return ferrors.PatternParse("%s contains a non-standard-width rune %q", field, r)
		}
	}
	return nil
}

func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern{keywords=%v, symbols=%v, identifier=%q, number=%q}", p.Keywords, p.Symbols, p.Identifier, p.Number)
}
