package models

import (
	"fmt"
	"strings"
)

// GenerateRequest represents request for generate endpoint
type GenerateRequest struct {
	Description string `json:"description" validate:"required" example:"Create a User class with name, email attributes and login(), logout() methods"`
	Strategy    string `json:"strategy" example:"offline"`
	// Token is the credential for remote strategies. Falls back to the server default when empty.
	Token string `json:"token,omitempty"`

	// Optional generation parameters
	Generation *GenerationParams `json:"generation"`
}

func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description is empty")
	}
	if g := r.Generation; g != nil {
		if g.Temperature != nil && (*g.Temperature < 0 || *g.Temperature > 2) {
			return fmt.Errorf("temperature must be within [0, 2]")
		}
		if g.MaxTokens != nil && *g.MaxTokens <= 0 {
			return fmt.Errorf("max_tokens must be positive")
		}
	}
	return nil
}

// GenerationParams holds optional OpenAI-like generation parameters
type GenerationParams struct {
	Temperature *float64 `json:"temperature" example:"0.7" default:"0.7"`
	MaxTokens   *int     `json:"max_tokens" example:"512" default:"512"`
}

type GenerateResponse struct {
	MermaidCode       string `json:"mermaid_code"`
	Strategy          string `json:"strategy"`
	Valid             bool   `json:"valid"`
	ValidationMessage string `json:"validation_message"`
	// Error is set when generation failed and the placeholder diagram was substituted.
	Error  string `json:"error,omitempty"`
	Cached bool   `json:"cached"`
}

// ScriptRequest carries a diagram script for the validate, clean and render endpoints.
type ScriptRequest struct {
	MermaidCode string `json:"mermaid_code" example:"classDiagram\n    class User {\n    }"`
}

type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

type CleanResponse struct {
	MermaidCode string `json:"mermaid_code"`
	Valid       bool   `json:"valid"`
	Message     string `json:"message"`
}

type RenderResponse struct {
	ID       string `json:"id"`
	HTML     string `json:"html"`
	Strategy string `json:"strategy"`
	Level    string `json:"level"`
	Message  string `json:"message"`
}

type Sample struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type SamplesResponse struct {
	Descriptions []Sample `json:"descriptions"`
	Diagrams     []Sample `json:"diagrams"`
}
