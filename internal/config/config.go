package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Frontend FrontendConfig `mapstructure:"frontend" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSAllowedOrigins lists origins for cross-site requests; "*" allows all.
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout is the grace period for in-flight requests on shutdown.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
// URLs with the sqlite:// scheme select the embedded SQLite store;
// anything else is treated as a PostgreSQL connection string.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// LLMConfig contains the language model integration settings. Provider,
// BaseURL, APIToken and Model seed the runtime ProviderHolder; the rest are
// fixed for the life of the process.
type LLMConfig struct {
	Provider              string `mapstructure:"provider"                validate:"required,oneof=openai gemini"`
	BaseURL               string `mapstructure:"base_url"                validate:"required,url"`
	APIToken              string `mapstructure:"api_token"`
	Model                 string `mapstructure:"model"                   validate:"required"`
	MaxAttempts           int    `mapstructure:"max_attempts"            validate:"gte=1,lte=10"`
	RetryBackoffMS        int    `mapstructure:"retry_backoff_ms"        validate:"gte=0"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gt=0"`
	Referer               string `mapstructure:"referer"`
	AppTitle              string `mapstructure:"app_title"`
}

// RetryBackoff is the base delay between classification attempts.
func (c LLMConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// RequestTimeout bounds a single provider HTTP call.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ProviderSettings returns the initial provider settings described by this config.
func (c LLMConfig) ProviderSettings() ProviderSettings {
	return ProviderSettings{
		Provider: c.Provider,
		BaseURL:  c.BaseURL,
		APIToken: c.APIToken,
		Model:    c.Model,
	}
}

// AuthConfig guards the runtime configuration endpoints. An empty
// AdminSecret leaves them open.
type AuthConfig struct {
	AdminSecret               string `mapstructure:"admin_secret"                 validate:"omitempty,min=32"`
	AdminTokenLifetimeMinutes int    `mapstructure:"admin_token_lifetime_minutes" validate:"gt=0"`
}

// AdminTokenLifetime is how long minted admin tokens stay valid.
func (c AuthConfig) AdminTokenLifetime() time.Duration {
	return time.Duration(c.AdminTokenLifetimeMinutes) * time.Minute
}

// FrontendConfig contains settings for the frontend proxy binary.
type FrontendConfig struct {
	Port       int    `mapstructure:"port"        validate:"required,gt=0,lt=65536"`
	BackendURL string `mapstructure:"backend_url" validate:"required,url"`
	StaticDir  string `mapstructure:"static_dir"`
}
