package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kdduha/uml-generator/internal/config"
	"github.com/kdduha/uml-generator/internal/logging"
	"github.com/kdduha/uml-generator/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const script = "classDiagram\n    class User {\n        +name : String\n    }"

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type failing struct{ name string }

func (f failing) Name() string { return f.name }

func (f failing) Render(context.Context, string) (template.HTML, error) {
	return "", errors.New("mermaid.js failed to load")
}

func testConfig() config.MermaidConfig {
	return config.MermaidConfig{
		CDN:           "https://cdnjs.cloudflare.com/ajax/libs/mermaid/10.9.1/mermaid.min.js",
		Theme:         "default",
		EditorURL:     "https://mermaid.live",
		CLI:           "mmdc-not-installed-here",
		RenderTimeout: 10 * time.Second,
		MaxHeight:     700,
	}
}

func imageServer(t *testing.T, status int, contentType string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/img/"+script, r.URL.Path)
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(pngBytes)
	}))
}

func TestMachine(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, PhaseLoading, m.Initial)

	p := m.Initial
	for _, e := range []Event{EventLoaded, EventInitialized, EventRendered} {
		p = m.Next(p, e)
	}
	assert.Equal(t, PhaseSucceeded, p)

	for _, p := range []Phase{PhaseLoading, PhaseInitializing, PhaseRendering} {
		assert.Equal(t, PhaseFailed, m.Next(p, EventTimeout), p)
		assert.Equal(t, PhaseFailed, m.Next(p, EventError), p)
	}

	assert.Equal(t, PhaseSucceeded, m.Next(PhaseSucceeded, EventTimeout), "timeout after success is ignored")
	assert.Equal(t, PhaseFailed, m.Next(PhaseFailed, EventRendered))
	assert.Equal(t, PhaseLoading, m.Next(PhaseLoading, EventRendered))
	assert.True(t, PhaseFailed.Terminal())
	assert.False(t, PhaseRendering.Terminal())
}

func TestEmbeddedDocument(t *testing.T) {
	e := NewEmbedded(testConfig())

	doc, err := e.Document(script + "\n%% </script><b>x</b>")
	require.NoError(t, err)

	assert.Contains(t, doc, `src="https://cdnjs.cloudflare.com/ajax/libs/mermaid/10.9.1/mermaid.min.js"`)
	assert.Contains(t, doc, `"initial":"loading"`)
	assert.Contains(t, doc, `id="diagram"`)
	assert.Contains(t, doc, "10000")
	assert.Contains(t, doc, `href="https://mermaid.live"`)
	assert.Contains(t, doc, "class User {")
	assert.NotContains(t, doc, "</script><b>")
}

func TestEmbeddedRenderWrapsInSandboxedFrame(t *testing.T) {
	out, err := NewEmbedded(testConfig()).Render(context.Background(), script)
	require.NoError(t, err)

	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<iframe"))
	assert.Contains(t, html, `sandbox="allow-scripts allow-popups"`)
	assert.Contains(t, html, `height="700"`)
	assert.Contains(t, html, `srcdoc="&lt;!DOCTYPE html&gt;`)
}

func TestNativeUnavailable(t *testing.T) {
	_, err := NewNative("mmdc-not-installed-here", "default").Render(context.Background(), script)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestImage(t *testing.T) {
	srv := imageServer(t, http.StatusOK, "image/png")
	defer srv.Close()

	out, err := NewImage(srv.Client(), srv.URL+"/img/").Render(context.Background(), script)
	require.NoError(t, err)
	assert.Contains(t, string(out), `src="data:image/png;base64,`+base64.StdEncoding.EncodeToString(pngBytes)+`"`)
}

func TestImageErrors(t *testing.T) {
	bad := imageServer(t, http.StatusInternalServerError, "image/png")
	defer bad.Close()
	_, err := NewImage(bad.Client(), bad.URL+"/img").Render(context.Background(), script)
	assert.ErrorContains(t, err, "bad status 500")

	html := imageServer(t, http.StatusOK, "text/html")
	defer html.Close()
	_, err = NewImage(html.Client(), html.URL+"/img").Render(context.Background(), script)
	assert.ErrorContains(t, err, "not an image")
}

func TestImageTooLarge(t *testing.T) {
	srv := imageServer(t, http.StatusOK, "image/png")
	defer srv.Close()

	img := NewImage(srv.Client(), srv.URL+"/img")
	img.maxBytes = int64(len(pngBytes)) - 1
	_, err := img.Render(context.Background(), script)
	assert.ErrorContains(t, err, "image larger than 7 bytes")

	img.maxBytes = int64(len(pngBytes))
	out, err := img.Render(context.Background(), script)
	require.NoError(t, err)
	assert.Contains(t, string(out), base64.StdEncoding.EncodeToString(pngBytes))

	img.maxBytes = 4
	res := New(logging.Discard(), Step{Strategy: img, Level: LevelWarning}).Render(context.Background(), script)
	assert.Equal(t, "raw", res.Strategy)
	assert.Equal(t, "All rendering methods failed: image larger than 4 bytes", res.Message)
}

func TestRendererFallsBackToImage(t *testing.T) {
	srv := imageServer(t, http.StatusOK, "image/png")
	defer srv.Close()

	before := testutil.ToFloat64(metrics.RenderCount("native", "unavailable"))

	r := New(logging.Discard(),
		Step{Strategy: NewNative("mmdc-not-installed-here", "default"), Level: LevelSuccess},
		Step{Strategy: failing{name: "embedded"}, Level: LevelInfo},
		Step{Strategy: NewImage(srv.Client(), srv.URL+"/img"), Level: LevelWarning, Message: "Using image fallback"},
	)
	res := r.Render(context.Background(), script)

	assert.Equal(t, "image", res.Strategy)
	assert.Equal(t, LevelWarning, res.Level)
	assert.Equal(t, "Using image fallback", res.Message)
	assert.Contains(t, string(res.HTML), "data:image/png;base64,")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RenderCount("native", "unavailable")))
}

func TestRendererFallsBackToRaw(t *testing.T) {
	srv := imageServer(t, http.StatusBadGateway, "text/plain")
	defer srv.Close()

	r := New(logging.Discard(),
		Step{Strategy: NewNative("mmdc-not-installed-here", "default"), Level: LevelSuccess},
		Step{Strategy: failing{name: "embedded"}, Level: LevelInfo},
		Step{Strategy: NewImage(srv.Client(), srv.URL+"/img"), Level: LevelWarning},
	)
	res := r.Render(context.Background(), script)

	assert.Equal(t, "raw", res.Strategy)
	assert.Equal(t, LevelError, res.Level)
	assert.Equal(t, "All rendering methods failed: image service bad status 502", res.Message)
	assert.Equal(t, template.HTML(`<pre class="diagram diagram-raw">`+template.HTMLEscapeString(script)+`</pre>`), res.HTML)
}

func TestRendererTagsLogsWithID(t *testing.T) {
	var buf bytes.Buffer
	r := New(logging.New(&buf, true), Step{Strategy: failing{name: "embedded"}, Level: LevelInfo})

	res := r.Render(context.Background(), script)
	require.NotEmpty(t, res.ID)
	logs := buf.String()
	assert.Contains(t, logs, "render_id="+res.ID)
	assert.Contains(t, logs, "renderer failed")
	assert.Contains(t, logs, "all renderers failed")

	other := r.Render(context.Background(), script)
	assert.NotEqual(t, res.ID, other.ID)
}

func TestRendererEmptyChain(t *testing.T) {
	res := New(logging.Discard()).Render(context.Background(), "<b>")
	assert.Equal(t, LevelError, res.Level)
	assert.Contains(t, string(res.HTML), "&lt;b&gt;")
}

func TestNewDefaultUsesEmbeddedWithoutCLI(t *testing.T) {
	res := NewDefault(logging.Discard(), testConfig(), nil).Render(context.Background(), script)
	assert.Equal(t, "embedded", res.Strategy)
	assert.Equal(t, LevelInfo, res.Level)
	assert.Equal(t, "Rendered with HTML component", res.Message)
}
