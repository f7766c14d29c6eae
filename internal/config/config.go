package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of in-flight requests.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains the catalog database settings. An empty URL
// disables category lookups.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// Supported backend providers.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"
)

// BackendConfig describes one generation backend. A backend without an
// API key is left unconfigured and its capability is disabled.
type BackendConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=openai deepseek gemini"`
	APIKey   string `mapstructure:"api_key"`
	// Model defaults to the provider's standard model when empty.
	Model string `mapstructure:"model"`
	// BaseURL overrides the provider endpoint (OpenAI-compatible providers only).
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// Text serves title and freeform generation.
	Text BackendConfig `mapstructure:"text"`
	// Vision serves image generation and must be multimodal.
	Vision BackendConfig `mapstructure:"vision"`

	// MaxRetries is the number of extra attempts after a transport failure.
	MaxRetries        int `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1"`
	// RequestTimeoutSeconds bounds a single backend call.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}
