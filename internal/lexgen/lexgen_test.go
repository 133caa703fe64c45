package lexgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinylangtools/tinytool/internal/patternfile"
)

// samplePattern is a TINY-like lexer pattern set: keywords, symbols, and
// identifier/number/comment regexes.
const samplePattern = `
keywords: if then else end repeat until read write
symbols: + - * / % < <> <= >= > = { } ; :=
comment: {x}
identifier: l(l|d)*
number: d+(.d+)?(e(+|-)?d+)?
`

func buildSampleRecognizer(t *testing.T) *Recognizer {
	t.Helper()
	p, err := patternfile.Parse(strings.NewReader(samplePattern))
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	r, err := Build(p)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return r
}

func Test_Build_scenario1(t *testing.T) {
	r := buildSampleRecognizer(t)

	tests := []struct {
		input      string
		wantAccept bool
		wantTag    string
	}{
		{"if", true, "if"},
		{"1234.5e-6", true, "num"},
		{"1234a", false, ""},
		{"{abc}", true, "comment"},
		{"{abc", false, ""},
		{"{{abc}", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := r.Accept(tc.input)
			assert.Equal(t, tc.wantAccept, got.Accepted)
			if tc.wantAccept {
				assert.Equal(t, tc.wantTag, got.Tag)
			}
		})
	}
}

func Test_Build_keywordBeatsIdentifier(t *testing.T) {
	r := buildSampleRecognizer(t)
	got := r.Accept("if")
	assert.True(t, got.Accepted)
	assert.Equal(t, "if", got.Tag, "a keyword's literal tag must win over the identifier regex matching the same text")
}

func Test_SaveDFA_LoadDFA_roundTrip(t *testing.T) {
	r := buildSampleRecognizer(t)

	data, err := SaveDFA(r)
	if !assert.NoError(t, err) {
		return
	}

	dfa, buildID, err := LoadDFA(data)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, r.BuildID.String(), buildID)

	for _, input := range []string{"if", "1234.5e-6", "{abc}"} {
		want := r.Accept(input)
		got := dfa.Accept(input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func Test_Build_noVocabulary(t *testing.T) {
	_, err := Build(&patternfile.Pattern{})
	assert.Error(t, err)
}
