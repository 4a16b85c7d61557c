package config

import "time"

// Supported language model providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Worker   WorkerConfig   `mapstructure:"worker" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// LLMConfig contains the language model client settings.
// Only the API key of the selected provider is required, and only while the
// worker is enabled.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider" validate:"required,oneof=gemini anthropic"`
	GeminiAPIKey    string        `mapstructure:"gemini_api_key"`
	AnthropicAPIKey string        `mapstructure:"anthropic_api_key"`
	ModelName       string        `mapstructure:"model_name" validate:"required"`
	Temperature     float32       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens       int           `mapstructure:"max_tokens" validate:"gt=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// WorkerConfig contains the example generation worker settings.
type WorkerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
}
