package handler

import (
	"github.com/kdduha/uml-generator/internal/config"
	"github.com/kdduha/uml-generator/internal/service"
)

// Credentials are the server-wide provider tokens used when a visitor has
// not supplied their own.
type Credentials struct {
	HuggingFace string
	Groq        string
}

func NewCredentials(cfg *config.Config) Credentials {
	return Credentials{
		HuggingFace: cfg.HuggingFace.Token,
		Groq:        cfg.Groq.APIKey,
	}
}

// Token returns override when set, else the server default for strategy.
func (c Credentials) Token(strategy service.Strategy, override string) string {
	if override != "" {
		return override
	}
	switch strategy {
	case service.HuggingFace:
		return c.HuggingFace
	case service.Groq:
		return c.Groq
	default:
		return ""
	}
}
