package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TASKHELPER_DATABASE_URL for database.url.
const EnvPrefix = "TASKHELPER"

// Defaults applied before any file or environment source.
const (
	DefaultServerPort      = 8000
	DefaultFrontendPort    = 5000
	DefaultDatabaseURL     = "sqlite://tasks.db"
	DefaultProvider        = "openai"
	DefaultProviderBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel           = "qwen/qwen3-coder:free"
	DefaultMaxAttempts     = 3
)

// legacyEnv maps config keys to unprefixed environment variables that are
// still honoured for compatibility with existing deployments.
var legacyEnv = map[string]string{
	"llm.api_token": "OPENROUTER_TOKEN",
	"llm.model":     "DEFAULT_MODEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)

	v.SetDefault("llm.provider", DefaultProvider)
	v.SetDefault("llm.base_url", DefaultProviderBaseURL)
	v.SetDefault("llm.api_token", "")
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.max_attempts", DefaultMaxAttempts)
	v.SetDefault("llm.retry_backoff_ms", 500)
	v.SetDefault("llm.request_timeout_seconds", 60)
	v.SetDefault("llm.referer", "http://localhost:8000")
	v.SetDefault("llm.app_title", "AI Task Helper")

	v.SetDefault("auth.admin_secret", "")
	v.SetDefault("auth.admin_token_lifetime_minutes", 15)

	v.SetDefault("frontend.port", DefaultFrontendPort)
	v.SetDefault("frontend.backend_url", "http://localhost:8000")
	v.SetDefault("frontend.static_dir", "web/static")
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. When configPath is empty
// a config.yaml in the working directory is used if present.
// The result is validated before it is returned.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		// The prefixed name is listed first so it wins when both are set.
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
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

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
