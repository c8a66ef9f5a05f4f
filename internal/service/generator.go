package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kdduha/uml-generator/internal/mermaid"
	"github.com/kdduha/uml-generator/internal/metrics"
	"github.com/kdduha/uml-generator/internal/models"
)

// Provider translates a description into a diagram script.
type Provider interface {
	Generate(ctx context.Context, description string, opts Options) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Generator dispatches generation requests to the provider registered for a
// strategy. The registry is fixed at construction.
type Generator struct {
	logger          *log.Logger
	providers       map[Strategy]Provider
	defaultStrategy Strategy
	cache           Cache
}

func NewGenerator(logger *log.Logger, defaultStrategy Strategy, providers map[Strategy]Provider) *Generator {
	registry := make(map[Strategy]Provider, len(providers))
	for s, p := range providers {
		registry[s] = p
	}
	return &Generator{
		logger:          logger,
		providers:       registry,
		defaultStrategy: defaultStrategy,
	}
}

func (g *Generator) SetCacheClient(cache Cache) {
	g.cache = cache
}

func (g *Generator) DefaultStrategy() Strategy {
	return g.defaultStrategy
}

// Generate produces a diagram for req. On failure it returns both the error
// and a response carrying the placeholder script, so callers can show a
// diagram and the reason side by side.
func (g *Generator) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	strategy := g.defaultStrategy
	if req.Strategy != "" {
		s, err := ParseStrategy(req.Strategy)
		if err != nil {
			return failedResponse(Strategy(req.Strategy), err), err
		}
		strategy = s
	}

	provider, ok := g.providers[strategy]
	if !ok {
		err := fmt.Errorf("%w: %q is not configured", ErrUnknownStrategy, strategy)
		return failedResponse(strategy, err), err
	}

	useCache := g.cache != nil && strategy.Remote()
	if useCache {
		cached, found, err := g.cache.Get(ctx, getCacheKey(strategy, req))
		if err != nil {
			g.logger.Warnf("cache get error: %v", err)
		}
		if found {
			g.logger.Debug("served from cache", "strategy", strategy)
			metrics.GenerationTotal(string(strategy), "cached")
			resp := newResponse(strategy, cached)
			resp.Cached = true
			return resp, nil
		}
	}

	start := time.Now()
	g.logger.Debug("start generation", "strategy", strategy, "chars", len(req.Description))

	script, err := provider.Generate(ctx, req.Description, Options{
		Token:      req.Token,
		Generation: req.Generation,
	})
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrTransport, strategy, err)
		g.logger.Error("generation failed", "strategy", strategy, "err", err)
		metrics.GenerationTotal(string(strategy), "error")
		metrics.GenerationDuration(string(strategy), "error", time.Since(start))
		return failedResponse(strategy, err), err
	}

	metrics.GenerationTotal(string(strategy), "ok")
	metrics.GenerationDuration(string(strategy), "ok", time.Since(start))
	g.logger.Debug("finish generation", "strategy", strategy, "elapsed", time.Since(start).Round(time.Millisecond))

	if useCache {
		if err := g.cache.Set(ctx, getCacheKey(strategy, req), script); err != nil {
			g.logger.Warnf("failed to set cache: %v", err)
		}
	}
	return newResponse(strategy, script), nil
}

func newResponse(strategy Strategy, script string) *models.GenerateResponse {
	valid, message := mermaid.IsValid(script)
	return &models.GenerateResponse{
		MermaidCode:       script,
		Strategy:          string(strategy),
		Valid:             valid,
		ValidationMessage: message,
	}
}

func failedResponse(strategy Strategy, err error) *models.GenerateResponse {
	resp := newResponse(strategy, mermaid.Placeholder)
	resp.Error = err.Error()
	return resp
}

func getCacheKey(strategy Strategy, req *models.GenerateRequest) string {
	data := []string{
		string(strategy),
		strings.TrimSpace(req.Description),
	}

	if req.Generation != nil && req.Generation.Temperature != nil {
		data = append(data, fmt.Sprintf("%f", *req.Generation.Temperature))
	}

	if req.Generation != nil && req.Generation.MaxTokens != nil {
		data = append(data, fmt.Sprintf("%d", *req.Generation.MaxTokens))
	}

	hash := sha256.Sum256([]byte(strings.Join(data, "-")))
	return hex.EncodeToString(hash[:])
}
