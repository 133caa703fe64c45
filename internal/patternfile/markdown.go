package patternfile

import (
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	mkast "github.com/gomarkdown/markdown/ast"
	mkparser "github.com/gomarkdown/markdown/parser"
)

// patternBlockLang is the fenced-code-block language tag this package
// recognizes as an embedded pattern file.
const patternBlockLang = "patternfile"

type patternBlockScanner bool

func (s patternBlockScanner) RenderNode(w io.Writer, node mkast.Node, entering bool) mkast.WalkStatus {
	if !entering {
		return mkast.GoToNext
	}
	block, ok := node.(*mkast.CodeBlock)
	if !ok || block == nil {
		return mkast.GoToNext
	}
	if strings.ToLower(strings.TrimSpace(string(block.Info))) == patternBlockLang {
		w.Write(block.Literal)
	}
	return mkast.GoToNext
}

func (s patternBlockScanner) RenderHeader(w io.Writer, ast mkast.Node) {}
func (s patternBlockScanner) RenderFooter(w io.Writer, ast mkast.Node) {}

// extractFromMarkdown pulls the concatenated contents of every
// ```patternfile fenced code block out of a markdown document.
func extractFromMarkdown(mdText []byte) []byte {
	doc := markdown.Parse(mdText, mkparser.New())
	var scanner patternBlockScanner
	return markdown.Render(doc, scanner)
}

// LoadMarkdown parses a pattern file embedded as one or more
// ```patternfile fenced code blocks inside a markdown document -- a
// documentation-friendly alternative to a bare pattern file.
func LoadMarkdown(mdText []byte) (*Pattern, error) {
	return Parse(strings.NewReader(string(extractFromMarkdown(mdText))))
}
