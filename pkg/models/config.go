package models

// ProviderConfig holds credentials and endpoints for a single LLM provider.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Model   string `yaml:"model,omitempty" mapstructure:"model"`
}

// AppConfig holds application settings read from .airesume.yaml via Viper.
// Credentials fall back to environment variables when unset in the file.
type AppConfig struct {
	DefaultProvider string         `yaml:"default_provider" mapstructure:"default_provider"`
	OpenRouter      ProviderConfig `yaml:"openrouter" mapstructure:"openrouter"`
	OpenAI          ProviderConfig `yaml:"openai" mapstructure:"openai"`
	Ollama          ProviderConfig `yaml:"ollama" mapstructure:"ollama"`
	ResumeGistURL   string         `yaml:"resume_gist_url" mapstructure:"resume_gist_url"`
	GitHubToken     string         `yaml:"github_token,omitempty" mapstructure:"github_token"`
	SlackWebhookURL string         `yaml:"slack_webhook_url,omitempty" mapstructure:"slack_webhook_url"`
	DataPath        string         `yaml:"data_path" mapstructure:"data_path"`
	UserID          string         `yaml:"user_id" mapstructure:"user_id"`
}
