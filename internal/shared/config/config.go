package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config holds application configuration.
type Config struct {
	Env  string `env:"ENV"  env-default:"development"`
	Port string `env:"PORT" env-default:"5000"`

	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" env-default:"resume-optimizer"`
	JWTTTL    time.Duration `env:"JWT_TTL"    env-default:"168h"`

	ClientURL        string   `env:"CLIENT_URL"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://localhost:3000"`

	LLMProvider    string        `env:"LLM_PROVIDER"    env-default:"openai"`
	LLMModel       string        `env:"LLM_MODEL"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT"     env-default:"60s"`
	LLMTemperature float32       `env:"LLM_TEMPERATURE" env-default:"0.2"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`

	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" env-default:"resume_events"`
}

// Load reads configuration from the environment, after a best-effort load of
// local .env files. Variables already present in the environment win.
func Load() (Config, error) {
	_ = godotenv.Load(".env", "cmd/.env")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that must be present for the configured environment.
func (c Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required in production"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs with production guarantees.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// AllowedOrigins returns the CORS allow-list including CLIENT_URL.
func (c Config) AllowedOrigins() []string {
	out := make([]string, 0, len(c.CORSAllowOrigins)+1)
	seen := make(map[string]struct{})
	for _, o := range append([]string{c.ClientURL}, c.CORSAllowOrigins...) {
		trimmed := strings.TrimSpace(o)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func (c *Config) normalize() {
	c.Env = NormalizeEnv(c.Env)
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	if c.LLMModel == "" {
		switch c.LLMProvider {
		case "gemini":
			c.LLMModel = "gemini-2.5-flash"
		default:
			c.LLMModel = "gpt-3.5-turbo"
		}
	}
}

// NormalizeEnv maps the accepted ENV spellings onto the canonical names.
func NormalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return EnvProduction
	case "staging":
		return EnvStaging
	default:
		return EnvDevelopment
	}
}
