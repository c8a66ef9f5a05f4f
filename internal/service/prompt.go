package service

import (
	"fmt"
	"strings"

	"github.com/kdduha/uml-generator/internal/models"
)

// Options carries the per-call inputs of a provider. Providers never keep
// credentials between calls.
type Options struct {
	Token      string
	Generation *models.GenerationParams
}

func (o Options) temperature() float64 {
	if o.Generation != nil && o.Generation.Temperature != nil {
		return *o.Generation.Temperature
	}
	return defaultTemperature
}

func (o Options) maxTokens(fallback int) int {
	if o.Generation != nil && o.Generation.MaxTokens != nil {
		return *o.Generation.MaxTokens
	}
	return fallback
}

func getUserPrompt(description string) string {
	return fmt.Sprintf(userPromptTemplate, strings.TrimSpace(description))
}
