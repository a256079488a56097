// Package config loads application settings from .airesume.yaml files
// using Viper, with environment variable fallbacks for credentials.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/one-front/airesume/pkg/models"
	"github.com/spf13/viper"
)

// validProviders is the set of allowed default_provider values.
var validProviders = map[string]bool{
	"openrouter": true,
	"openai":     true,
	"ollama":     true,
}

// Loader defines the interface for loading and validating application
// configuration from an .airesume.yaml file.
type Loader interface {
	Load() (*models.AppConfig, error)
	Validate(cfg *models.AppConfig) error
}

// viperLoader implements Loader using Viper for reading YAML
// configuration files.
type viperLoader struct {
	// basePath is the directory where .airesume.yaml resides.
	basePath string
	// getenv is injectable for tests.
	getenv func(string) string
}

// Option configures a Loader.
type Option func(*viperLoader)

// WithGetenv overrides environment variable lookup, mainly for tests.
func WithGetenv(getenv func(string) string) Option {
	return func(l *viperLoader) {
		l.getenv = getenv
	}
}

// NewLoader creates a Loader that reads .airesume.yaml relative to basePath.
func NewLoader(basePath string, opts ...Option) Loader {
	l := &viperLoader{basePath: basePath}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// defaultConfig returns an AppConfig populated with sensible defaults.
func defaultConfig() *models.AppConfig {
	return &models.AppConfig{
		DefaultProvider: "openrouter",
		OpenRouter: models.ProviderConfig{
			Model: "deepseek/deepseek-chat-v3-0324:free",
		},
		OpenAI: models.ProviderConfig{
			Model: "gpt-4o-mini",
		},
		Ollama: models.ProviderConfig{
			BaseURL: "http://localhost:11434",
			Model:   "llama3.2",
		},
		DataPath: "data",
		UserID:   "anonymous",
	}
}

// Load reads the .airesume.yaml file from the base path using Viper.
// If the file does not exist, defaults are returned. Credentials left
// empty in the file fall back to environment variables.
func (l *viperLoader) Load() (*models.AppConfig, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName(".airesume")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("default_provider", cfg.DefaultProvider)
	v.SetDefault("openrouter.model", cfg.OpenRouter.Model)
	v.SetDefault("openai.model", cfg.OpenAI.Model)
	v.SetDefault("ollama.base_url", cfg.Ollama.BaseURL)
	v.SetDefault("ollama.model", cfg.Ollama.Model)
	v.SetDefault("data_path", cfg.DataPath)
	v.SetDefault("user_id", cfg.UserID)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .airesume.yaml: %w", err)
		}
		// No config file found, continue with defaults.
	}

	cfg.DefaultProvider = v.GetString("default_provider")
	cfg.OpenRouter.APIKey = v.GetString("openrouter.api_key")
	cfg.OpenRouter.Model = v.GetString("openrouter.model")
	cfg.OpenAI.APIKey = v.GetString("openai.api_key")
	cfg.OpenAI.Model = v.GetString("openai.model")
	cfg.Ollama.BaseURL = v.GetString("ollama.base_url")
	cfg.Ollama.Model = v.GetString("ollama.model")
	cfg.ResumeGistURL = v.GetString("resume_gist_url")
	cfg.GitHubToken = v.GetString("github_token")
	cfg.SlackWebhookURL = v.GetString("slack_webhook_url")
	cfg.DataPath = v.GetString("data_path")
	cfg.UserID = v.GetString("user_id")

	l.applyEnvFallbacks(cfg)

	return cfg, nil
}

// applyEnvFallbacks fills empty credential fields from the environment.
// File values always win over environment variables.
func (l *viperLoader) applyEnvFallbacks(cfg *models.AppConfig) {
	getenv := l.getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if cfg.OpenRouter.APIKey == "" {
		cfg.OpenRouter.APIKey = getenv("OPENROUTER_API_KEY")
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = getenv("OPENAI_API_KEY")
	}
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = getenv("GITHUB_TOKEN")
	}
	if cfg.SlackWebhookURL == "" {
		cfg.SlackWebhookURL = getenv("SLACK_WEBHOOK_URL")
	}
	if cfg.ResumeGistURL == "" {
		cfg.ResumeGistURL = getenv("RESUME_GIST_URL")
	}
}

// Validate checks the provided configuration for invalid values and
// returns a clear error message identifying the problem.
func (l *viperLoader) Validate(cfg *models.AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.DefaultProvider != "" && !validProviders[cfg.DefaultProvider] {
		errs = append(errs, fmt.Sprintf(
			"default_provider %q is invalid, must be one of: openrouter, openai, ollama",
			cfg.DefaultProvider,
		))
	}

	if cfg.OpenRouter.APIKey != "" && !strings.HasPrefix(cfg.OpenRouter.APIKey, "sk-or-") {
		errs = append(errs, "openrouter.api_key must start with sk-or-")
	}

	if cfg.Ollama.BaseURL != "" && !strings.HasPrefix(cfg.Ollama.BaseURL, "http") {
		errs = append(errs, fmt.Sprintf(
			"ollama.base_url %q is invalid, must be an http(s) URL",
			cfg.Ollama.BaseURL,
		))
	}

	if cfg.DataPath == "" {
		errs = append(errs, "data_path must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
