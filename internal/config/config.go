package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// BaseURL is the externally visible root under which generated audio
	// locators are built, e.g. "http://localhost:8080".
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// AudioDir is the local directory served under /static/audio.
	// It is created at startup if missing.
	AudioDir string `mapstructure:"audio_dir" validate:"required"`
}

// GenerationConfig contains settings for the generation service.
type GenerationConfig struct {
	// ModelWarmupSeconds is how long the simulated model load takes at
	// startup before the service accepts submissions.
	ModelWarmupSeconds int `mapstructure:"model_warmup_seconds" validate:"gte=0,lte=300"`
}
