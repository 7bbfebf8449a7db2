package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Content   ContentConfig   `mapstructure:"content" validate:"required"`
	Translate TranslateConfig `mapstructure:"translate" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown before in-flight
	// requests are abandoned.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0,lte=120"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// ContentConfig locates the vocabulary and sentence corpus files on
// disk. Each file holds every language, keyed by language name.
type ContentConfig struct {
	VocabularyPath string `mapstructure:"vocabulary_path" validate:"required"`
	SentencesPath  string `mapstructure:"sentences_path" validate:"required"`
}

// TranslateConfig controls the translation pipeline.
type TranslateConfig struct {
	// Policy selects between local, remote and hybrid resolution.
	Policy string `mapstructure:"policy" validate:"required,oneof=local remote hybrid"`
	// Endpoint overrides the remote provider URL; empty uses the default.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
	// TimeoutSeconds bounds each remote provider call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0,lte=60"`
	// CacheSize bounds the remote translation memoization cache.
	CacheSize int `mapstructure:"cache_size" validate:"required,gt=0"`
}
