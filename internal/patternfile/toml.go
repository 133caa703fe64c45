package patternfile

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tinylangtools/tinytool/internal/ferrors"
)

// tomlDoc mirrors Pattern's fields in TOML's native shape: the rules
// block is an array of lines rather than one key:value-delimited blob,
// since TOML has no "read until EOF" construct.
type tomlDoc struct {
	Keywords   []string `toml:"keywords"`
	Symbols    []string `toml:"symbols"`
	LComment   string   `toml:"lcomment"`
	RComment   string   `toml:"rcomment"`
	Comment    string   `toml:"comment"`
	Identifier string   `toml:"identifier"`
	Number     string   `toml:"number"`
	Letters    string   `toml:"letters"`
	Digits     string   `toml:"digits"`
	Start      string   `toml:"start"`
	Rules      []string `toml:"rules"`
}

// LoadTOML parses an alternate, TOML-encoded rendering of a pattern file
// ( external pattern-file interface, re-expressed in a
// structured format rather than the line-oriented one Parse consumes).
func LoadTOML(data []byte) (*Pattern, error) {
	var doc tomlDoc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, ferrors.PatternParse("decoding TOML pattern file: %s", err.Error())
	}

	p := &Pattern{
		Keywords:   doc.Keywords,
		Symbols:    doc.Symbols,
		LComment:   doc.LComment,
		RComment:   doc.RComment,
		Comment:    doc.Comment,
		Identifier: doc.Identifier,
		Number:     doc.Number,
		Letters:    doc.Letters,
		Digits:     doc.Digits,
		Start:      doc.Start,
		Rules:      strings.Join(doc.Rules, "\n"),
	}
	if p.Letters == "" {
		p.Letters = defaultLetters
	}
	if p.Digits == "" {
		p.Digits = defaultDigits
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
