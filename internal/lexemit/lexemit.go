// Package lexemit generates the emitted-lexer source file named as an
// external collaborator: a complete, self-contained Go program that
// hosts a minimized DFA as a table of per-state dispatch functions and a
// main that reads input.txt, splits it into candidate lexemes, classifies
// each one against the table, and prints the result.
package lexemit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/tinylangtools/tinytool/internal/automaton"
)

// Generate renders dfa and symbols (the declared symbol literals; every
// rune of every entry becomes a split point) into a complete, compilable Go source
// file implementing the emitted-lexer contract.
//
// The splitting this emits is deliberately not a longest-match scanner:
// an input like "x:=1" is split into "x", ":", "=", "1" rather than "x",
// ":=", "1", because each declared symbol character is treated as its own
// split point regardless of whether a longer symbol starting there is
// also declared.
func Generate(dfa *automaton.DFA, symbols []string) string {
	var b strings.Builder

	b.WriteString(header())
	b.WriteString("\n")
	writeStateFuncs(&b, dfa)
	writeDispatchTable(&b, dfa)
	writeMain(&b, symbols)

	return b.String()
}

func header() string {
	doc := rosed.Edit(
		"Command lexer is a generated, self-contained recognizer. It reads " +
			"input.txt, splits it into candidate lexemes, classifies each " +
			"one against the embedded DFA, and prints one line per lexeme.",
	).Wrap(76).String()

	var b strings.Builder
	b.WriteString("/*\n")
	b.WriteString(doc)
	b.WriteString("\n*/\n")
	b.WriteString("package main\n\n")
	b.WriteString("import (\n\t\"bufio\"\n\t\"fmt\"\n\t\"os\"\n\t\"strings\"\n)\n")
	return b.String()
}

func sortedStateIDs(dfa *automaton.DFA) []int {
	ids := make([]int, 0, len(dfa.States))
	for id := range dfa.States {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// writeStateFuncs emits one state<N> function per DFA state, mirroring
// the original's per-state std::map<char,int> dispatch table, per-state
// here as a Go map literal.
func writeStateFuncs(b *strings.Builder, dfa *automaton.DFA) {
	for _, id := range sortedStateIDs(dfa) {
		st := dfa.States[id]

		syms := make([]rune, 0, len(st.Trans))
		for sym := range st.Trans {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

		fmt.Fprintf(b, "func state%d(c rune) int {\n", id)
		b.WriteString("\ttransitions := map[rune]int{\n")
		for _, sym := range syms {
			fmt.Fprintf(b, "\t\t%q: %d,\n", sym, st.Trans[sym])
		}
		b.WriteString("\t}\n")
		b.WriteString("\tif next, ok := transitions[c]; ok {\n\t\treturn next\n\t}\n")
		b.WriteString("\treturn -1\n}\n\n")
	}
}

func writeDispatchTable(b *strings.Builder, dfa *automaton.DFA) {
	b.WriteString("var stateHandlers = map[int]func(rune) int{\n")
	for _, id := range sortedStateIDs(dfa) {
		fmt.Fprintf(b, "\t%d: state%d,\n", id, id)
	}
	b.WriteString("}\n\n")

	b.WriteString("var acceptTags = map[int]string{\n")
	for _, id := range sortedStateIDs(dfa) {
		st := dfa.States[id]
		if st.Accept {
			fmt.Fprintf(b, "\t%d: %q,\n", id, st.AcceptTag)
		}
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "const startState = %d\n\n", dfa.Start)

	b.WriteString(`func classify(lexeme string) (tag string, accepted bool) {
	state := startState
	for _, c := range lexeme {
		handler, ok := stateHandlers[state]
		if !ok {
			return "", false
		}
		state = handler(c)
		if state == -1 {
			return "", false
		}
	}
	tag, ok := acceptTags[state]
	return tag, ok
}

`)
}

// writeMain emits the splitting-and-printing main: input.txt is split on
// whitespace and every declared symbol character, one rune at a time for
// symbols; each candidate lexeme is classified and printed as
// "Token: <tag>", "Token: <tag> -> <lexeme>" for id/num, or
// "Invalid token: <lexeme>".
func writeMain(b *strings.Builder, symbols []string) {
	splitRunes := map[rune]bool{}
	for _, s := range symbols {
		for _, r := range s {
			splitRunes[r] = true
		}
	}
	sorted := make([]rune, 0, len(splitRunes))
	for r := range splitRunes {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	b.WriteString("var splitChars = map[rune]bool{\n")
	for _, r := range sorted {
		fmt.Fprintf(b, "\t%q: true,\n", r)
	}
	b.WriteString("}\n\n")

	b.WriteString(`func splitLine(line string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, c := range line {
		switch {
		case c == ' ' || c == '\t':
			flush()
		case splitChars[c]:
			flush()
			out = append(out, string(c))
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return out
}

func main() {
	f, err := os.Open("input.txt")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, lexeme := range splitLine(scanner.Text()) {
			tag, ok := classify(lexeme)
			if !ok {
				fmt.Printf("Invalid token: %s\n", lexeme)
				continue
			}
			if tag == "id" || tag == "num" {
				fmt.Printf("Token: %s -> %s\n", tag, lexeme)
			} else {
				fmt.Printf("Token: %s\n", tag)
			}
		}
	}
}
`)
}
