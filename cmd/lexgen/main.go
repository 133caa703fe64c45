/*
Lexgen builds a lexical recognizer from a pattern file and classifies
candidate lexemes read from a token-candidate file, one per line.

It builds a minimized DFA from the pattern file's keyword, symbol,
identifier, number, and comment declarations, and this command drives
that DFA over already-split candidate lexemes -- it does not itself
tokenize raw source text. The recognizer's contract is that the caller
feeds it already-split candidate lexemes.

Usage:

	lexgen [flags]

The flags are:

	-p, --pattern FILE
		The pattern file to build the recognizer from. Defaults to
		"pattern.txt".

	-i, --input FILE
		A file of candidate lexemes, one per line. Defaults to reading
		from stdin.

	-s, --save FILE
		If set, write the built recognizer's DFA to FILE in rezi's binary
		format instead of classifying any input.
*/
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
	"github.com/tinylangtools/tinytool/internal/ferrors"
	"github.com/tinylangtools/tinytool/internal/lexgen"
	"github.com/tinylangtools/tinytool/internal/patternfile"
)

const (
	exitSuccess = iota
	exitError
)

var (
	patternFile = pflag.StringP("pattern", "p", "pattern.txt", "Pattern file describing the lexical vocabulary")
	inputFile   = pflag.StringP("input", "i", "", "File of candidate lexemes, one per line (defaults to stdin)")
	saveFile    = pflag.StringP("save", "s", "", "If set, save the built DFA to this file instead of classifying input")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	f, err := os.Open(*patternFile)
	if err != nil {
		log.Printf("ERROR %s", ferrors.IO(err, "opening pattern file %q", *patternFile))
		return exitError
	}
	defer f.Close()

	pattern, err := patternfile.Parse(f)
	if err != nil {
		log.Printf("ERROR %s", err)
		return exitError
	}

	recognizer, err := lexgen.Build(pattern)
	if err != nil {
		log.Printf("ERROR %s", err)
		return exitError
	}

	if *saveFile != "" {
		data, err := lexgen.SaveDFA(recognizer)
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

	scanner := bufio.NewScanner(in)
	failed := false
	for scanner.Scan() {
		lexeme := scanner.Text()
		result := recognizer.Accept(lexeme)
		if !result.Accepted {
			fmt.Printf("Invalid token: %s\n", lexeme)
			failed = true
			continue
		}
		if result.Tag == "id" || result.Tag == "num" {
			fmt.Printf("Token: %s -> %s\n", result.Tag, lexeme)
		} else {
			fmt.Printf("Token: %s\n", result.Tag)
		}
	}

	if failed {
		return exitError
	}
	return exitSuccess
}
