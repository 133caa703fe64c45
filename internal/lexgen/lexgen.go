// Package lexgen assembles a lexical recognizer: given a pattern file's
// keyword set, symbol set, and identifier/number/comment regex strings,
// build one tagged NFA per token kind, union them, and reduce the union
// to a minimized DFA recognizer.
package lexgen

import (
	"github.com/google/uuid"
	"github.com/tinylangtools/tinytool/internal/automaton"
	"github.com/tinylangtools/tinytool/internal/ferrors"
	"github.com/tinylangtools/tinytool/internal/patternfile"
	"github.com/tinylangtools/tinytool/internal/regexast"
)

// commentAlphabet is the rune range a brace/block-delimited comment body
// may contain. The regex surface has no negated character
// class, so a comment's "anything but either delimiter" body is
// built directly against the NFA arena rather than through RegExpAst.
const (
	commentAlphabetLo = 0x20
	commentAlphabetHi = 0x7e
)

// Recognizer is the minimized DFA this package exposes, stamped with a
// random build id that every Build call generates afresh. SaveDFA stores
// the id with the DFA and LoadDFA returns it; the id is not derived from
// the pattern file, so two builds of the same file get different ids.
type Recognizer struct {
	DFA     *automaton.DFA
	BuildID uuid.UUID
}

// Accept implements the recognizer contract: consume str in full and
// report Reject or Accept(tag).
func (r *Recognizer) Accept(str string) automaton.AcceptResult {
	return r.DFA.Accept(str)
}

// Build assembles a Recognizer from a parsed pattern file: one tagged NFA
// per keyword and per symbol, one each for identifier (tag "id"), number
// (tag "num"), and comment (tag "comment"), unioned into a single master
// NFA, subset-constructed, and minimized.
func Build(p *patternfile.Pattern) (*Recognizer, error) {
	b := automaton.NewBuilder()
	var members []automaton.NFA

	for _, kw := range p.Keywords {
		members = append(members, literalNFA(b, kw, kw))
	}
	for _, sym := range p.Symbols {
		members = append(members, literalNFA(b, sym, sym))
	}

	if p.Identifier != "" {
		n, err := regexNFA(b, p.Identifier, "id", p.Letters, p.Digits)
		if err != nil {
			return nil, err
		}
		members = append(members, n)
	}
	if p.Number != "" {
		n, err := regexNFA(b, p.Number, "num", p.Letters, p.Digits)
		if err != nil {
			return nil, err
		}
		members = append(members, n)
	}

	if commentNFA, ok := buildCommentNFA(b, p); ok {
		members = append(members, commentNFA)
	}

	if len(members) == 0 {
		return nil, ferrors.PatternParse("pattern file declares no keywords, symbols, identifier, number, or comment")
	}

	union := b.UnionAll(members)
	dfa := union.ToDFA().Minimize()

	return &Recognizer{DFA: dfa, BuildID: uuid.New()}, nil
}

func literalNFA(b *automaton.Builder, literal, tag string) automaton.NFA {
	runes := []rune(literal)
	n := b.Literal(runes[0])
	for _, r := range runes[1:] {
		n = b.Concat(n, b.Literal(r))
	}
	n.SetAcceptTag(tag)
	return n
}

// regexNFA parses pattern and builds its NFA, first expanding the pattern
// file's "l" and "d" wildcard literals -- regex strings using l for any
// letter and d for any digit -- into a union over the declared
// letters/digits character sets.
func regexNFA(b *automaton.Builder, pattern, tag, letters, digits string) (automaton.NFA, error) {
	ast, err := regexast.Parse(pattern)
	if err != nil {
		return automaton.NFA{}, err
	}
	ast = expandWildcards(ast, letters, digits)
	n := b.FromRegex(ast)
	n.SetAcceptTag(tag)
	return n, nil
}

// expandWildcards replaces every literal 'l' node with a union over
// letters and every literal 'd' node with a union over digits,
// recursively, leaving every other node shape untouched.
func expandWildcards(n *regexast.Node, letters, digits string) *regexast.Node {
	switch n.Kind {
	case regexast.KindLiteral:
		switch n.Literal {
		case 'l':
			return unionOfRunes(letters)
		case 'd':
			return unionOfRunes(digits)
		default:
			return n
		}
	case regexast.KindUnion:
		return regexast.Union(expandWildcards(n.Left, letters, digits), expandWildcards(n.Right, letters, digits))
	case regexast.KindConcat:
		return regexast.Concat(expandWildcards(n.Left, letters, digits), expandWildcards(n.Right, letters, digits))
	case regexast.KindStar:
		return regexast.Star(expandWildcards(n.Left, letters, digits))
	case regexast.KindPlus:
		return regexast.Plus(expandWildcards(n.Left, letters, digits))
	case regexast.KindQues:
		return regexast.Ques(expandWildcards(n.Left, letters, digits))
	default:
		return n
	}
}

func unionOfRunes(chars string) *regexast.Node {
	runes := []rune(chars)
	n := regexast.Literal(runes[0])
	for _, r := range runes[1:] {
		n = regexast.Union(n, regexast.Literal(r))
	}
	return n
}

// buildCommentNFA constructs the comment recognizer from either the
// paired lcomment/rcomment delimiters or the single comment field (whose
// first and last rune are taken as the left and right delimiters, e.g.
// "{...}"), matching left + (anything but either delimiter)* + right.
func buildCommentNFA(b *automaton.Builder, p *patternfile.Pattern) (automaton.NFA, bool) {
	var left, right rune
	switch {
	case p.LComment != "" && p.RComment != "":
		left = []rune(p.LComment)[0]
		right = []rune(p.RComment)[0]
	case p.Comment != "":
		runes := []rune(p.Comment)
		left = runes[0]
		right = runes[len(runes)-1]
	default:
		return automaton.NFA{}, false
	}

	var body []automaton.NFA
	for c := rune(commentAlphabetLo); c <= commentAlphabetHi; c++ {
		if c == left || c == right {
			continue
		}
		body = append(body, b.Literal(c))
	}
	bodyAny := b.UnionAll(body)

	n := b.Concat(b.Concat(b.Literal(left), b.Star(bodyAny)), b.Literal(right))
	n.SetAcceptTag("comment")
	return n, true
}
