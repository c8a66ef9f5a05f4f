package render

import (
	"context"
	"html/template"
)

// Raw shows the escaped script. It never fails and ends every chain.
type Raw struct{}

func (Raw) Name() string { return "raw" }

func (Raw) Render(_ context.Context, script string) (template.HTML, error) {
	return template.HTML(`<pre class="diagram diagram-raw">` + template.HTMLEscapeString(script) + `</pre>`), nil
}
