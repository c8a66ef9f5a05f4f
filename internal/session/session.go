// Package session keeps each visitor's application state in an scs session.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// Session keys, fixed so the stored diagram survives handler changes.
const (
	KeyMermaidCode       = "mermaid_code"
	KeyValidationMessage = "validation_message"
	KeyDescription       = "description"
	KeyStrategy          = "strategy"
	KeyHuggingFaceToken  = "huggingface_token"
	KeyGroqToken         = "groq_token"
	KeyDebug             = "debug"

	keyFlashLevel   = "flash_level"
	keyFlashMessage = "flash_message"
)

// State is what the shell knows about one visitor between interactions.
// Handlers load it, act on the copy and save it back.
type State struct {
	MermaidCode       string
	ValidationMessage string
	Description       string
	Strategy          string
	HuggingFaceToken  string
	GroqToken         string
	Debug             bool
}

func (s State) HasDiagram() bool {
	return s.MermaidCode != ""
}

// Flash is a one-shot message shown on the next page view.
type Flash struct {
	Level   string
	Message string
}

type Store struct {
	manager *scs.SessionManager
	debug   bool
}

// NewStore builds an in-memory session store. debug is the default for
// visitors who never touched the debug toggle.
func NewStore(lifetime time.Duration, cookieName string, debug bool) *Store {
	m := scs.New()
	m.Lifetime = lifetime
	m.Cookie.Name = cookieName
	m.Cookie.HttpOnly = true
	m.Cookie.SameSite = http.SameSiteLaxMode
	return &Store{manager: m, debug: debug}
}

// Middleware loads and saves the session around each request.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return s.manager.LoadAndSave(next)
}

func (s *Store) Load(ctx context.Context) State {
	m := s.manager
	st := State{
		MermaidCode:       m.GetString(ctx, KeyMermaidCode),
		ValidationMessage: m.GetString(ctx, KeyValidationMessage),
		Description:       m.GetString(ctx, KeyDescription),
		Strategy:          m.GetString(ctx, KeyStrategy),
		HuggingFaceToken:  m.GetString(ctx, KeyHuggingFaceToken),
		GroqToken:         m.GetString(ctx, KeyGroqToken),
		Debug:             s.debug,
	}
	if m.Exists(ctx, KeyDebug) {
		st.Debug = m.GetBool(ctx, KeyDebug)
	}
	return st
}

func (s *Store) Save(ctx context.Context, st State) {
	m := s.manager
	m.Put(ctx, KeyMermaidCode, st.MermaidCode)
	m.Put(ctx, KeyValidationMessage, st.ValidationMessage)
	m.Put(ctx, KeyDescription, st.Description)
	m.Put(ctx, KeyStrategy, st.Strategy)
	m.Put(ctx, KeyHuggingFaceToken, st.HuggingFaceToken)
	m.Put(ctx, KeyGroqToken, st.GroqToken)
	m.Put(ctx, KeyDebug, st.Debug)
}

func (s *Store) AddFlash(ctx context.Context, f Flash) {
	s.manager.Put(ctx, keyFlashLevel, f.Level)
	s.manager.Put(ctx, keyFlashMessage, f.Message)
}

// PopFlash returns and clears the pending flash, if any.
func (s *Store) PopFlash(ctx context.Context) (Flash, bool) {
	msg := s.manager.PopString(ctx, keyFlashMessage)
	level := s.manager.PopString(ctx, keyFlashLevel)
	if msg == "" {
		return Flash{}, false
	}
	return Flash{Level: level, Message: msg}, true
}
