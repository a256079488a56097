package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/one-front/airesume/pkg/models"
)

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".airesume.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
}

func noEnv(string) string { return "" }

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader(t.TempDir(), WithGetenv(noEnv))

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DefaultProvider != "openrouter" {
		t.Errorf("DefaultProvider = %q, want openrouter", cfg.DefaultProvider)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("Ollama.BaseURL = %q", cfg.Ollama.BaseURL)
	}
	if cfg.DataPath != "data" {
		t.Errorf("DataPath = %q, want data", cfg.DataPath)
	}
	if cfg.UserID != "anonymous" {
		t.Errorf("UserID = %q, want anonymous", cfg.UserID)
	}
	if cfg.OpenRouter.APIKey != "" {
		t.Errorf("OpenRouter.APIKey = %q, want empty", cfg.OpenRouter.APIKey)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
default_provider: ollama
openrouter:
  api_key: sk-or-v1-filekey
ollama:
  base_url: http://ollama.internal:11434
  model: mistral
resume_gist_url: https://gist.githubusercontent.com/me/abc/raw/resume.json
data_path: /var/lib/airesume
user_id: jane
`)

	cfg, err := NewLoader(dir, WithGetenv(noEnv)).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DefaultProvider != "ollama" {
		t.Errorf("DefaultProvider = %q", cfg.DefaultProvider)
	}
	if cfg.OpenRouter.APIKey != "sk-or-v1-filekey" {
		t.Errorf("OpenRouter.APIKey = %q", cfg.OpenRouter.APIKey)
	}
	if cfg.Ollama.Model != "mistral" {
		t.Errorf("Ollama.Model = %q", cfg.Ollama.Model)
	}
	if cfg.ResumeGistURL != "https://gist.githubusercontent.com/me/abc/raw/resume.json" {
		t.Errorf("ResumeGistURL = %q", cfg.ResumeGistURL)
	}
	if cfg.DataPath != "/var/lib/airesume" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
	if cfg.UserID != "jane" {
		t.Errorf("UserID = %q", cfg.UserID)
	}
	// Unset keys keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	env := map[string]string{
		"OPENROUTER_API_KEY": "sk-or-v1-envkey",
		"OPENAI_API_KEY":     "sk-envopenai",
		"GITHUB_TOKEN":       "ghp_envtoken",
		"SLACK_WEBHOOK_URL":  "https://hooks.slack.com/services/T/B/x",
	}
	loader := NewLoader(t.TempDir(), WithGetenv(func(key string) string { return env[key] }))

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OpenRouter.APIKey != "sk-or-v1-envkey" {
		t.Errorf("OpenRouter.APIKey = %q", cfg.OpenRouter.APIKey)
	}
	if cfg.OpenAI.APIKey != "sk-envopenai" {
		t.Errorf("OpenAI.APIKey = %q", cfg.OpenAI.APIKey)
	}
	if cfg.GitHubToken != "ghp_envtoken" {
		t.Errorf("GitHubToken = %q", cfg.GitHubToken)
	}
	if cfg.SlackWebhookURL != "https://hooks.slack.com/services/T/B/x" {
		t.Errorf("SlackWebhookURL = %q", cfg.SlackWebhookURL)
	}
}

func TestLoadFileWinsOverEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
openrouter:
  api_key: sk-or-v1-filekey
`)
	loader := NewLoader(dir, WithGetenv(func(key string) string {
		if key == "OPENROUTER_API_KEY" {
			return "sk-or-v1-envkey"
		}
		return ""
	}))

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenRouter.APIKey != "sk-or-v1-filekey" {
		t.Errorf("OpenRouter.APIKey = %q, want file value", cfg.OpenRouter.APIKey)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "default_provider: [unclosed")

	if _, err := NewLoader(dir, WithGetenv(noEnv)).Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestValidate(t *testing.T) {
	loader := NewLoader(t.TempDir())

	tests := []struct {
		name    string
		mutate  func(cfg *models.AppConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *models.AppConfig) {},
		},
		{
			name: "valid openrouter key",
			mutate: func(cfg *models.AppConfig) {
				cfg.OpenRouter.APIKey = "sk-or-v1-abc"
			},
		},
		{
			name: "unknown provider",
			mutate: func(cfg *models.AppConfig) {
				cfg.DefaultProvider = "anthropic"
			},
			wantErr: "default_provider",
		},
		{
			name: "bad openrouter key prefix",
			mutate: func(cfg *models.AppConfig) {
				cfg.OpenRouter.APIKey = "sk-proj-abc"
			},
			wantErr: "sk-or-",
		},
		{
			name: "bad ollama url",
			mutate: func(cfg *models.AppConfig) {
				cfg.Ollama.BaseURL = "localhost:11434"
			},
			wantErr: "ollama.base_url",
		},
		{
			name: "empty data path",
			mutate: func(cfg *models.AppConfig) {
				cfg.DataPath = ""
			},
			wantErr: "data_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := loader.Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNilConfig(t *testing.T) {
	if err := NewLoader(t.TempDir()).Validate(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
