package handler

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var codeFormatter = html.New(html.WithClasses(false), html.TabWidth(4))

// highlight renders script as inline-styled HTML for the debug view.
func highlight(script string) (template.HTML, error) {
	lexer := lexers.Get("mermaid")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, script)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise script: %w", err)
	}

	var buf bytes.Buffer
	if err := codeFormatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("failed to format script: %w", err)
	}
	return template.HTML(buf.String()), nil
}
