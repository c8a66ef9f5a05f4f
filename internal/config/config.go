package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	HuggingFace HuggingFaceConfig
	Groq        GroqConfig
	Mermaid     MermaidConfig
	RedisConfig RedisConfig
	Session     SessionConfig

	DefaultProvider string `env:"DEFAULT_PROVIDER" envDefault:"offline"`
	Debug           bool   `env:"ENABLE_DEBUG" envDefault:"true"`
	CacheEnable     bool   `env:"CACHE_ENABLE"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
}

type HuggingFaceConfig struct {
	Token   string `env:"HUGGINGFACE_TOKEN"`
	BaseURL string `env:"HUGGINGFACE_API_URL" envDefault:"https://api-inference.huggingface.co/models"`
	Model   string `env:"HUGGINGFACE_MODEL" envDefault:"HuggingFaceH4/zephyr-7b-beta"`
}

// GroqConfig points at Groq's OpenAI-compatible endpoint.
type GroqConfig struct {
	APIKey  string `env:"GROQ_API_KEY"`
	BaseURL string `env:"GROQ_API_URL" envDefault:"https://api.groq.com/openai/v1"`
	Model   string `env:"GROQ_MODEL" envDefault:"llama3-8b-8192"`
}

type MermaidConfig struct {
	CDN           string        `env:"MERMAID_CDN" envDefault:"https://cdnjs.cloudflare.com/ajax/libs/mermaid/10.9.1/mermaid.min.js"`
	Theme         string        `env:"MERMAID_THEME" envDefault:"default"`
	ImageURL      string        `env:"MERMAID_IMAGE_URL" envDefault:"https://mermaid.ink/img"`
	EditorURL     string        `env:"MERMAID_EDITOR_URL" envDefault:"https://mermaid.live"`
	CLI           string        `env:"MERMAID_CLI" envDefault:"mmdc"`
	RenderTimeout time.Duration `env:"RENDER_TIMEOUT" envDefault:"10s"`
	MaxHeight     int           `env:"MAX_DIAGRAM_HEIGHT" envDefault:"700"`
}

type SessionConfig struct {
	Lifetime   time.Duration `env:"SESSION_LIFETIME" envDefault:"24h"`
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"uml_session"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
