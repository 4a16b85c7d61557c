package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	envPrefix = "WORDBANK"

	// configPathEnv names an explicit config file, bypassing the search path.
	configPathEnv = "WORDBANK_CONFIG"
)

// keys without defaults still need binding so that Unmarshal sees their env values.
var envOnlyKeys = []string{
	"database.url",
	"llm.gemini_api_key",
	"llm.anthropic_api_key",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv(configPathEnv))
}

// LoadFrom is Load with an explicit config file. An empty path searches
// for config.yaml in the working directory, which may be absent.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a configuration against its struct tags and requires the
// selected provider's API key when the worker is enabled.
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(validateProviderKey, Config{})

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func validateProviderKey(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if !cfg.Worker.Enabled {
		return
	}

	switch cfg.LLM.Provider {
	case ProviderGemini:
		if cfg.LLM.GeminiAPIKey == "" {
			sl.ReportError(cfg.LLM.GeminiAPIKey, "LLM.GeminiAPIKey", "GeminiAPIKey", "required_with_worker", "")
		}
	case ProviderAnthropic:
		if cfg.LLM.AnthropicAPIKey == "" {
			sl.ReportError(cfg.LLM.AnthropicAPIKey, "LLM.AnthropicAPIKey", "AnthropicAPIKey", "required_with_worker", "")
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 256)
	v.SetDefault("llm.request_timeout", 30*time.Second)

	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.poll_interval", time.Second)
}
