/*
Parsegen builds an SLR(1) parser from a grammar file and a terminal
vocabulary, drives it over a token stream, and prints the resulting
concrete syntax tree and its three-address pseudocode lowering.

It drives LR(0) item-set construction, SLR(1) conflict analysis, the
shift/reduce parser driver, and concrete-syntax-tree lowering.

Usage:

	parsegen [flags]

The flags are:

	-g, --grammar FILE
		The grammar file to build the parser from. Defaults to
		"grammar.txt".

	-t, --terminals LIST
		Comma-separated terminal vocabulary (in addition to "identifier",
		"number", and the end-marker, which are always included).

	-s, --start SYMBOL
		The grammar's start symbol. Defaults to the left-hand side of the
		grammar file's first rule.

	-i, --input FILE
		Token-stream file in the "Token: <kind>" / "Token: <kind> ->
		<lexeme>" format. Defaults to reading from stdin.

	--save FILE
		If set, write the built ACTION/GOTO table to FILE in rezi's binary
		format instead of parsing any input.

	--table
		Print the built ACTION/GOTO table before parsing (or instead of
		parsing, if --save is also given).
*/
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tinylangtools/tinytool/internal/cstlower"
	"github.com/tinylangtools/tinytool/internal/ferrors"
	"github.com/tinylangtools/tinytool/internal/grammarfile"
	"github.com/tinylangtools/tinytool/internal/parse"
)

const (
	exitSuccess = iota
	exitError
)

var (
	grammarFile  = pflag.StringP("grammar", "g", "grammar.txt", "Grammar file to build the parser from")
	terminalList = pflag.StringP("terminals", "t", "", "Comma-separated terminal vocabulary")
	startSymbol  = pflag.StringP("start", "s", "", "Grammar start symbol")
	inputFile    = pflag.StringP("input", "i", "", "Token-stream file (defaults to stdin)")
	saveFile     = pflag.String("save", "", "If set, save the built ACTION/GOTO table to this file instead of parsing input")
	showTable    = pflag.Bool("table", false, "Print the built ACTION/GOTO table")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	var terminals []string
	if *terminalList != "" {
		terminals = strings.Split(*terminalList, ",")
	}
	terminals = append(terminals, "identifier", "number")

	gf, err := os.Open(*grammarFile)
	if err != nil {
		log.Printf("ERROR %s", ferrors.IO(err, "opening grammar file %q", *grammarFile))
		return exitError
	}
	defer gf.Close()

	g, err := grammarfile.Load(gf, terminals, *startSymbol)
	if err != nil {
		log.Printf("ERROR %s", err)
		return exitError
	}

	automaton, err := parse.BuildAutomaton(g.Augmented())
	if err != nil {
		log.Printf("ERROR %s", err)
		return exitError
	}
	if err := parse.BuildSLR1(automaton); err != nil {
		log.Printf("ERROR %s", err)
		return exitError
	}

	if *showTable {
		fmt.Print(automaton.String())
	}

	if *saveFile != "" {
		data, err := parse.SaveTable(automaton)
		if err != nil {
			log.Printf("ERROR %s", err)
			return exitError
		}
		if err := os.WriteFile(*saveFile, data, 0644); err != nil {
			log.Printf("ERROR %s", ferrors.IO(err, "writing %q", *saveFile))
			return exitError
		}
		return exitSuccess
	}

	in := os.Stdin
	if *inputFile != "" {
		var err error
		in, err = os.Open(*inputFile)
		if err != nil {
			log.Printf("ERROR %s", ferrors.IO(err, "opening input file %q", *inputFile))
			return exitError
		}
		defer in.Close()
	}

	tokens, err := readTokenStream(in)
	if err != nil {
		log.Printf("ERROR %s", err)
		return exitError
	}

	tree, err := parse.Parse(automaton, tokens)
	if err != nil {
		log.Printf("ERROR %s", err)
		return exitError
	}

	fmt.Print(tree.String())
	fmt.Println()
	for _, line := range cstlower.Lower(tree) {
		fmt.Println(line)
	}

	return exitSuccess
}

// readTokenStream parses a newline-separated stream of "Token: <kind>"
// or "Token: <kind> -> <lexeme>" lines, skipping blank lines and
// "Token: comment" lines.
func readTokenStream(r *os.File) ([]parse.Token, error) {
	scanner := bufio.NewScanner(bufio.NewReader(r))
	var tokens []parse.Token

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "Token:") {
			return nil, ferrors.InvalidInput("malformed token-stream line: %q", line)
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, "Token:"))

		if rest == "comment" {
			continue
		}

		if kind, lexeme, ok := strings.Cut(rest, "->"); ok {
			tokens = append(tokens, parse.Token{Kind: strings.TrimSpace(kind), Lexeme: strings.TrimSpace(lexeme)})
		} else {
			tokens = append(tokens, parse.Token{Kind: rest})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ferrors.IO(err, "reading token stream")
	}
	return tokens, nil
}
