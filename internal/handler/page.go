package handler

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kdduha/uml-generator/internal/mermaid"
	"github.com/kdduha/uml-generator/internal/models"
	"github.com/kdduha/uml-generator/internal/render"
	"github.com/kdduha/uml-generator/internal/samples"
	"github.com/kdduha/uml-generator/internal/service"
	"github.com/kdduha/uml-generator/internal/session"
)

//go:embed templates/*.html
var templates embed.FS

var pageTmpl = template.Must(template.ParseFS(templates, "templates/index.html"))

const (
	actionGenerate = "generate"
	actionSample   = "sample"
	actionTest     = "test"
	actionSettings = "settings"
	actionRender   = "render"

	noSample = "None"

	validMessage = "Valid Mermaid syntax"
	testMessage  = "Test diagram loaded"

	levelError   = "error"
	levelWarning = "warning"
	levelSuccess = "success"

	diagramFile     = "diagram.mmd"
	contentTypeText = "text/plain; charset=utf-8"
)

// PageHandler serves the interactive page. Every POST saves the session
// state and redirects back to GET /.
type PageHandler struct {
	logger    *log.Logger
	generator generateService
	renderer  renderService
	store     *session.Store
	creds     Credentials
}

func NewPageHandler(logger *log.Logger, generator generateService, renderer renderService, store *session.Store, creds Credentials) *PageHandler {
	return &PageHandler{
		logger:    logger,
		generator: generator,
		renderer:  renderer,
		store:     store,
		creds:     creds,
	}
}

type pageData struct {
	State        session.State
	Flash        *session.Flash
	Strategies   []service.Strategy
	Descriptions []models.Sample
	Diagrams     []models.Sample
	Result       *render.Result
	Highlighted  template.HTML
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := h.store.Load(ctx)
	if st.Strategy == "" {
		st.Strategy = string(h.generator.DefaultStrategy())
	}

	data := pageData{
		State:        st,
		Strategies:   service.Strategies,
		Descriptions: samples.Descriptions,
		Diagrams:     samples.Diagrams,
	}
	if f, ok := h.store.PopFlash(ctx); ok {
		data.Flash = &f
	}

	if st.HasDiagram() {
		res := h.renderer.Render(ctx, st.MermaidCode)
		data.Result = &res
		if st.Debug {
			code, err := highlight(st.MermaidCode)
			if err != nil {
				h.logger.Warn("highlight failed", "err", err)
				code = template.HTML("<pre>" + template.HTMLEscapeString(st.MermaidCode) + "</pre>")
			}
			data.Highlighted = code
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		h.logger.Error("failed to execute page template", "err", err)
	}
}

func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("invalid form: %s", err), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	st := h.store.Load(ctx)

	var flash *session.Flash
	switch action := r.PostFormValue("action"); action {
	case actionGenerate:
		flash = h.generate(ctx, &st, r.PostFormValue("description"), r.PostFormValue("sample"))
	case actionSample:
		if text, ok := samples.Description(r.PostFormValue("sample")); ok {
			st.Description = text
		}
	case actionTest:
		code, ok := samples.Diagram(r.PostFormValue("diagram"))
		if !ok {
			code, _ = samples.Diagram(samples.TestDiagram)
		}
		st.MermaidCode = code
		st.ValidationMessage = testMessage
	case actionRender:
		flash = renderCustom(&st, r.PostFormValue("mermaid_code"))
	case actionSettings:
		flash = applySettings(&st, r)
	default:
		http.Error(w, fmt.Sprintf("unknown action %q", action), http.StatusBadRequest)
		return
	}

	h.store.Save(ctx, st)
	if flash != nil {
		h.store.AddFlash(ctx, *flash)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) generate(ctx context.Context, st *session.State, description, sample string) *session.Flash {
	if sample != "" && sample != noSample {
		if text, ok := samples.Description(sample); ok {
			description = text
		}
	}
	st.Description = description
	if strings.TrimSpace(description) == "" {
		return &session.Flash{Level: levelWarning, Message: "Please enter a description"}
	}

	strategy := h.generator.DefaultStrategy()
	if st.Strategy != "" {
		if s, err := service.ParseStrategy(st.Strategy); err == nil {
			strategy = s
		}
	}

	var token string
	switch strategy {
	case service.HuggingFace:
		token = st.HuggingFaceToken
	case service.Groq:
		token = st.GroqToken
	}

	resp, err := h.generator.Generate(ctx, &models.GenerateRequest{
		Description: description,
		Strategy:    string(strategy),
		Token:       h.creds.Token(strategy, token),
	})
	if resp == nil {
		h.logger.Error("generation error", "err", err)
		return &session.Flash{Level: levelError, Message: fmt.Sprintf("Generation failed: %s", err)}
	}

	st.MermaidCode = resp.MermaidCode
	if err != nil {
		h.logger.Error("generation error", "err", err)
		st.ValidationMessage = resp.ValidationMessage
		return &session.Flash{Level: levelError, Message: fmt.Sprintf("Generation failed: %s", err)}
	}
	if !resp.Valid {
		st.ValidationMessage = resp.ValidationMessage
		return &session.Flash{Level: levelError, Message: fmt.Sprintf("Invalid Mermaid syntax: %s", resp.ValidationMessage)}
	}
	st.ValidationMessage = validMessage
	return nil
}

// renderCustom stores pasted code as the current diagram. Invalid code is
// still stored so the renderer fallbacks can show it.
func renderCustom(st *session.State, code string) *session.Flash {
	code = strings.TrimSpace(code)
	if code == "" {
		return &session.Flash{Level: levelWarning, Message: "Please enter Mermaid code"}
	}
	st.MermaidCode = code
	ok, reason := mermaid.IsValid(code)
	st.ValidationMessage = reason
	if !ok {
		return &session.Flash{Level: levelError, Message: fmt.Sprintf("Invalid Mermaid syntax: %s", reason)}
	}
	return nil
}

// applySettings copies the sidebar form into st. Empty token fields keep
// the stored token.
func applySettings(st *session.State, r *http.Request) *session.Flash {
	var flash *session.Flash
	if name := r.PostFormValue("strategy"); name != "" {
		s, err := service.ParseStrategy(name)
		if err != nil {
			flash = &session.Flash{Level: levelError, Message: fmt.Sprintf("Unknown provider %q", name)}
		} else {
			st.Strategy = string(s)
		}
	}
	if token := strings.TrimSpace(r.PostFormValue("huggingface_token")); token != "" {
		st.HuggingFaceToken = token
	}
	if token := strings.TrimSpace(r.PostFormValue("groq_token")); token != "" {
		st.GroqToken = token
	}
	st.Debug = r.PostFormValue("debug") == "on"

	if flash == nil {
		flash = &session.Flash{Level: levelSuccess, Message: "Settings saved"}
	}
	return flash
}

// Download serves the stored script as a .mmd attachment.
func (h *PageHandler) Download(w http.ResponseWriter, r *http.Request) {
	st := h.store.Load(r.Context())
	if !st.HasDiagram() {
		http.Error(w, "no diagram generated yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", diagramFile))
	_, _ = w.Write([]byte(st.MermaidCode))
}

func (h *PageHandler) Raw(w http.ResponseWriter, r *http.Request) {
	st := h.store.Load(r.Context())
	if !st.HasDiagram() {
		http.Error(w, "no diagram generated yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentTypeText)
	_, _ = w.Write([]byte(st.MermaidCode))
}
