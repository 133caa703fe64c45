/*
Replgen starts an interactive session that reads candidate lexemes from
the terminal using GNU Readline-style editing and classifies each one
against a pattern file's recognizer.

Usage:

	replgen [flags]

The flags are:

	-p, --pattern FILE
		The pattern file to build the recognizer from. Defaults to
		"pattern.txt".
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"
	"github.com/tinylangtools/tinytool/internal/lexgen"
	"github.com/tinylangtools/tinytool/internal/patternfile"
)

var patternFile = pflag.StringP("pattern", "p", "pattern.txt", "Pattern file describing the lexical vocabulary")

func main() {
	pflag.Parse()

	f, err := os.Open(*patternFile)
	if err != nil {
		log.Fatalf("FATAL could not open pattern file: %s", err)
	}
	pattern, err := patternfile.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("FATAL %s", err)
	}

	recognizer, err := lexgen.Build(pattern)
	if err != nil {
		log.Fatalf("FATAL %s", err)
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "lexeme> "})
	if err != nil {
		log.Fatalf("FATAL could not create readline config: %s", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return
			}
			log.Printf("ERROR %s", err)
			return
		}

		if line == "" {
			continue
		}

		result := recognizer.Accept(line)
		if !result.Accepted {
			fmt.Printf("Invalid token: %s\n", line)
			continue
		}
		if result.Tag == "id" || result.Tag == "num" {
			fmt.Printf("Token: %s -> %s\n", result.Tag, line)
		} else {
			fmt.Printf("Token: %s\n", result.Tag)
		}
	}
}
