package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/bytedance/sonic"
	"github.com/kdduha/uml-generator/internal/config"
)

//go:embed templates/*.html
var templates embed.FS

var (
	documentTmpl = template.Must(template.ParseFS(templates, "templates/embedded.html"))
	frameTmpl    = template.Must(template.New("frame").Parse(
		`<iframe class="diagram diagram-embedded" title="UML diagram" sandbox="allow-scripts allow-popups" ` +
			`width="100%" height="{{.Height}}" style="border:0" srcdoc="{{.Doc}}"></iframe>`))
)

const (
	autoHideMS = 3000

	// Each document lives in its own iframe, so one element id is enough.
	elementID = "diagram"
)

// Embedded renders in the browser with mermaid.js, inside a sandboxed iframe.
type Embedded struct {
	cfg     config.MermaidConfig
	machine Machine
}

func NewEmbedded(cfg config.MermaidConfig) *Embedded {
	return &Embedded{cfg: cfg, machine: NewMachine()}
}

func (e *Embedded) Name() string { return "embedded" }

type documentData struct {
	ID         string
	Script     string
	CDN        string
	Theme      string
	EditorURL  string
	TimeoutMS  int64
	AutoHideMS int
	Machine    template.JS
}

func (e *Embedded) Render(_ context.Context, script string) (template.HTML, error) {
	doc, err := e.Document(script)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = frameTmpl.Execute(&buf, struct {
		Height int
		Doc    string
	}{Height: e.cfg.MaxHeight, Doc: doc})
	if err != nil {
		return "", fmt.Errorf("failed to execute frame template: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Document returns the standalone HTML page that renders script.
func (e *Embedded) Document(script string) (string, error) {
	machine, err := sonic.Marshal(e.machine)
	if err != nil {
		return "", fmt.Errorf("failed to encode phase machine: %w", err)
	}

	var buf bytes.Buffer
	err = documentTmpl.Execute(&buf, documentData{
		ID:         elementID,
		Script:     script,
		CDN:        e.cfg.CDN,
		Theme:      e.cfg.Theme,
		EditorURL:  e.cfg.EditorURL,
		TimeoutMS:  e.cfg.RenderTimeout.Milliseconds(),
		AutoHideMS: autoHideMS,
		Machine:    template.JS(machine),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute document template: %w", err)
	}
	return buf.String(), nil
}
