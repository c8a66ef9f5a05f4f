package service

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy names one text-to-diagram translator.
type Strategy string

const (
	Offline     Strategy = "offline"
	HuggingFace Strategy = "huggingface"
	Groq        Strategy = "groq"
)

// Strategies lists every strategy in the order the UI offers them.
var Strategies = []Strategy{Offline, HuggingFace, Groq}

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrTransport       = errors.New("transport error")
)

// ParseStrategy maps a user-supplied name onto a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Strategies {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) Remote() bool {
	return s != Offline
}

const (
	systemPromptUML = "You are a UML diagram generator. Return only valid Mermaid class diagram code wrapped in ```mermaid``` tags."

	userPromptTemplate = "Generate a Mermaid class diagram from this description: %s"

	defaultTemperature = 0.7

	huggingFaceMaxNewTokens = 500
	groqMaxTokens           = 1000
)
