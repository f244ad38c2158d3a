// Package config loads the demo's configuration from an optional YAML file,
// an optional .env file, and the environment. Environment variables always
// win so tokens never need to live in files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults matching the hosted GitHub Models demo setup.
const (
	DefaultBaseURL = "https://models.github.ai/inference"
	DefaultModel   = "openai/gpt-4.1"
	DefaultTimeout = 60 * time.Second
)

// ChatConfig configures the chat backend.
type ChatConfig struct {
	Token   string        `yaml:"token"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"-"`
}

// UnmarshalYAML accepts the timeout as a duration string ("30s", "2m").
func (c *ChatConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Token   string `yaml:"token"`
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
		Timeout string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Token = raw.Token
	c.BaseURL = raw.BaseURL
	c.Model = raw.Model
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid chat timeout %q: %w", raw.Timeout, err)
		}
		c.Timeout = d
	}

	return nil
}

// QuotesConfig configures the quote-lookup collaborator.
type QuotesConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// AgentConfig describes one pipeline participant.
type AgentConfig struct {
	Name         string `yaml:"name"`
	Instructions string `yaml:"instructions"`
}

// Config is the full demo configuration.
type Config struct {
	Chat   ChatConfig    `yaml:"chat"`
	Quotes QuotesConfig  `yaml:"quotes"`
	Agents []AgentConfig `yaml:"agents"`
}

func defaults() Config {
	return Config{
		Chat: ChatConfig{
			BaseURL: DefaultBaseURL,
			Model:   DefaultModel,
			Timeout: DefaultTimeout,
		},
	}
}

// Load builds a Config from defaults, an optional YAML file (path may be
// empty), a .env file when present, and environment overrides, in that
// order of increasing precedence.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// .env is a developer convenience; absence is not an error.
	_ = godotenv.Load()

	applyEnv(&cfg)

	if cfg.Chat.BaseURL == "" {
		cfg.Chat.BaseURL = DefaultBaseURL
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = DefaultModel
	}
	if cfg.Chat.Timeout <= 0 {
		cfg.Chat.Timeout = DefaultTimeout
	}

	if cfg.Chat.Token == "" {
		return Config{}, fmt.Errorf("chat token is required (set GITHUB_TOKEN)")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Chat.Token = v
	}
	if v := os.Getenv("CHAT_BASE_URL"); v != "" {
		cfg.Chat.BaseURL = v
	}
	if v := os.Getenv("CHAT_MODEL"); v != "" {
		cfg.Chat.Model = v
	}
	if v := os.Getenv("CHAT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Chat.Timeout = d
		}
	}
	if v := os.Getenv("QUOTES_BASE_URL"); v != "" {
		cfg.Quotes.BaseURL = v
	}
	if v := os.Getenv("QUOTES_API_TOKEN"); v != "" {
		cfg.Quotes.Token = v
	}
}
