package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/uml-generator/internal/mermaid"
	"github.com/kdduha/uml-generator/internal/models"
	"github.com/kdduha/uml-generator/internal/render"
	"github.com/kdduha/uml-generator/internal/samples"
	"github.com/kdduha/uml-generator/internal/service"
)

type generateService interface {
	Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error)
	DefaultStrategy() service.Strategy
}

type renderService interface {
	Render(ctx context.Context, script string) render.Result
}

type APIHandler struct {
	generator generateService
	renderer  renderService
	creds     Credentials
}

func NewAPIHandler(generator generateService, renderer renderService, creds Credentials) *APIHandler {
	return &APIHandler{
		generator: generator,
		renderer:  renderer,
		creds:     creds,
	}
}

// Generate godoc
// @Summary Generate class diagram
// @Description Translate a natural-language description into a Mermaid class diagram. A failed remote call still returns 200 with the placeholder diagram and the error field set.
// @Tags diagram
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Generate request"
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/generate [post]
func (h *APIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %s", err), http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("request validation failed: %s", err), http.StatusBadRequest)
		return
	}

	strategy := h.generator.DefaultStrategy()
	if req.Strategy != "" {
		s, err := service.ParseStrategy(req.Strategy)
		if err != nil {
			http.Error(w, fmt.Sprintf("request validation failed: %s", err), http.StatusBadRequest)
			return
		}
		strategy = s
	}
	req.Token = h.creds.Token(strategy, req.Token)

	resp, err := h.generator.Generate(r.Context(), &req)
	if errors.Is(err, service.ErrUnknownStrategy) {
		http.Error(w, fmt.Sprintf("request validation failed: %s", err), http.StatusBadRequest)
		return
	}
	if resp == nil {
		http.Error(w, fmt.Sprintf("service error: %s", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp)
}

// Validate godoc
// @Summary Validate diagram script
// @Tags diagram
// @Accept json
// @Produce json
// @Param request body models.ScriptRequest true "Script"
// @Success 200 {object} models.ValidateResponse
// @Failure 400 {object} map[string]string
// @Router /api/validate [post]
func (h *APIHandler) Validate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScript(w, r)
	if !ok {
		return
	}

	valid, message := mermaid.IsValid(req.MermaidCode)
	writeJSON(w, &models.ValidateResponse{Valid: valid, Message: message})
}

// Clean godoc
// @Summary Normalise diagram script
// @Description Strip semicolons, split merged braces and re-indent. Falls back to the placeholder diagram when the result is invalid.
// @Tags diagram
// @Accept json
// @Produce json
// @Param request body models.ScriptRequest true "Script"
// @Success 200 {object} models.CleanResponse
// @Failure 400 {object} map[string]string
// @Router /api/clean [post]
func (h *APIHandler) Clean(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScript(w, r)
	if !ok {
		return
	}

	cleaned := mermaid.Clean(req.MermaidCode)
	valid, message := mermaid.IsValid(cleaned)
	writeJSON(w, &models.CleanResponse{MermaidCode: cleaned, Valid: valid, Message: message})
}

// Render godoc
// @Summary Render diagram script
// @Description Run the rendering chain (mermaid-cli, embedded mermaid.js, image service, raw text) and return the first output that works.
// @Tags diagram
// @Accept json
// @Produce json
// @Param request body models.ScriptRequest true "Script"
// @Success 200 {object} models.RenderResponse
// @Failure 400 {object} map[string]string
// @Router /api/render [post]
func (h *APIHandler) Render(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScript(w, r)
	if !ok {
		return
	}

	res := h.renderer.Render(r.Context(), req.MermaidCode)
	writeJSON(w, &models.RenderResponse{
		ID:       res.ID,
		HTML:     string(res.HTML),
		Strategy: res.Strategy,
		Level:    string(res.Level),
		Message:  res.Message,
	})
}

// Samples godoc
// @Summary List samples
// @Tags diagram
// @Produce json
// @Success 200 {object} models.SamplesResponse
// @Router /api/samples [get]
func (h *APIHandler) Samples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, &models.SamplesResponse{
		Descriptions: samples.Descriptions,
		Diagrams:     samples.Diagrams,
	})
}

func decodeScript(w http.ResponseWriter, r *http.Request) (*models.ScriptRequest, bool) {
	var req models.ScriptRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %s", err), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
