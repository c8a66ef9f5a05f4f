// Package render turns a Mermaid script into displayable HTML by walking an
// ordered chain of strategies until one succeeds.
package render

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/kdduha/uml-generator/internal/config"
	"github.com/kdduha/uml-generator/internal/metrics"
)

// ErrUnavailable reports that a strategy is not installed on this host.
var ErrUnavailable = errors.New("renderer unavailable")

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Strategy interface {
	Name() string
	Render(ctx context.Context, script string) (template.HTML, error)
}

// Step is one link of the chain: a strategy plus the status it reports on success.
type Step struct {
	Strategy Strategy
	Level    Level
	Message  string
}

// Result is what one Render call produced. ID tags the call's log lines.
type Result struct {
	ID       string
	HTML     template.HTML
	Strategy string
	Level    Level
	Message  string
}

type Renderer struct {
	logger *log.Logger
	steps  []Step
	raw    Raw
}

func New(logger *log.Logger, steps ...Step) *Renderer {
	return &Renderer{
		logger: logger,
		steps:  append([]Step(nil), steps...),
	}
}

// NewDefault builds the native, embedded and image chain from config.
func NewDefault(logger *log.Logger, cfg config.MermaidConfig, client *http.Client) *Renderer {
	return New(logger,
		Step{Strategy: NewNative(cfg.CLI, cfg.Theme), Level: LevelSuccess, Message: "Rendered with mermaid-cli"},
		Step{Strategy: NewEmbedded(cfg), Level: LevelInfo, Message: "Rendered with HTML component"},
		Step{Strategy: NewImage(client, cfg.ImageURL), Level: LevelWarning, Message: "Using image fallback"},
	)
}

// Render always returns displayable output. When every step fails the
// escaped script is returned with an error level.
func (r *Renderer) Render(ctx context.Context, script string) Result {
	id := uuid.NewString()
	logger := r.logger.With("render_id", id)

	lastErr := errors.New("no renderers configured")
	for _, step := range r.steps {
		name := step.Strategy.Name()
		out, err := step.Strategy.Render(ctx, script)
		if err == nil {
			metrics.RenderTotal(name, "ok")
			logger.Debug("diagram rendered", "strategy", name)
			return Result{ID: id, HTML: out, Strategy: name, Level: step.Level, Message: step.Message}
		}

		lastErr = err
		if errors.Is(err, ErrUnavailable) {
			metrics.RenderTotal(name, "unavailable")
			logger.Debug("renderer unavailable", "strategy", name, "err", err)
			continue
		}
		metrics.RenderTotal(name, "error")
		logger.Warn("renderer failed", "strategy", name, "err", err)
	}

	out, _ := r.raw.Render(ctx, script)
	metrics.RenderTotal(r.raw.Name(), "ok")
	logger.Warn("all renderers failed, showing raw script", "err", lastErr)
	return Result{
		ID:       id,
		HTML:     out,
		Strategy: r.raw.Name(),
		Level:    LevelError,
		Message:  fmt.Sprintf("All rendering methods failed: %s", lastErr),
	}
}
