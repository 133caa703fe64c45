package patternfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const samplePattern = `
keywords: if then else end repeat until read write
symbols: + - * / % < <> <= >= > = { } ; :=
comment: {...}
identifier: l(l|d)*
number: d+(.d+)?(e(+|-)?d+)?
start: program
rules:
program -> stmtSeq
stmtSeq -> stmt
`

func Test_Parse(t *testing.T) {
	p, err := Parse(strings.NewReader(samplePattern))
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, []string{"if", "then", "else", "end", "repeat", "until", "read", "write"}, p.Keywords)
	assert.Equal(t, []string{"+", "-", "*", "/", "%", "<", "<>", "<=", ">=", ">", "=", "{", "}", ";", ":="}, p.Symbols)
	assert.Equal(t, "{...}", p.Comment)
	assert.Equal(t, "l(l|d)*", p.Identifier)
	assert.Equal(t, "program", p.Start)
	assert.Equal(t, defaultLetters, p.Letters)
	assert.Equal(t, defaultDigits, p.Digits)
	assert.Contains(t, p.Rules, "program -> stmtSeq")
}

func Test_Parse_unrecognizedKey(t *testing.T) {
	_, err := Parse(strings.NewReader("bogus: value\n"))
	assert.Error(t, err)
}

func Test_Validate_rejectsBothCommentForms(t *testing.T) {
	p := &Pattern{Comment: "{...}", LComment: "{", RComment: "}", Letters: defaultLetters, Digits: defaultDigits}
	assert.Error(t, p.Validate())
}

func Test_Validate_rejectsUnpairedCommentDelimiter(t *testing.T) {
	p := &Pattern{LComment: "{", Letters: defaultLetters, Digits: defaultDigits}
	assert.Error(t, p.Validate())
}

func Test_LoadTOML(t *testing.T) {
	doc := `
keywords = ["if", "then"]
symbols = ["+", "-"]
identifier = "l(l|d)*"
number = "d+"
start = "program"
rules = ["program -> stmt"]
`
	p, err := LoadTOML([]byte(doc))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{"if", "then"}, p.Keywords)
	assert.Equal(t, "program -> stmt", p.Rules)
	assert.Equal(t, defaultDigits, p.Digits)
}

func Test_LoadMarkdown(t *testing.T) {
	md := "# A pattern\n\nSome prose.\n\n```patternfile\nkeywords: if then\nidentifier: l(l|d)*\nnumber: d+\nstart: program\n```\n"
	p, err := LoadMarkdown([]byte(md))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{"if", "then"}, p.Keywords)
	assert.Equal(t, "program", p.Start)
}
