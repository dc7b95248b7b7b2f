package config

import "time"

type Config struct {
	Server    ServerConfig    `json:"server"`
	Upload    UploadConfig    `json:"upload"`
	Optimizer OptimizerConfig `json:"optimizer"`
	Ledger    LedgerConfig    `json:"ledger"`
	Archive   ArchiveConfig   `json:"archive"`
	Logging   LoggingConfig   `json:"logging"`
}

type ServerConfig struct {
	Port         int           `json:"port" env:"SERVER_PORT" default:"9000"`
	ReadTimeout  time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"120s"`
	WriteTimeout time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"120s"`
	IdleTimeout  time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"120s"`
}

type UploadConfig struct {
	// Body limits are passed to echo's BodyLimit middleware verbatim.
	OptimizeBodyLimit string `json:"optimize_body_limit" env:"UPLOAD_OPTIMIZE_BODY_LIMIT" default:"30M"`
	ArchiveBodyLimit  string `json:"archive_body_limit" env:"UPLOAD_ARCHIVE_BODY_LIMIT" default:"100M"`
	MaxBatchFiles     int    `json:"max_batch_files" env:"UPLOAD_MAX_BATCH_FILES" default:"10"`
}

type OptimizerConfig struct {
	DefaultQuality int `json:"default_quality" env:"OPTIMIZER_DEFAULT_QUALITY" default:"85"`
}

type LedgerConfig struct {
	Enabled  bool `json:"enabled" env:"LEDGER_ENABLED" default:"true"`
	Capacity int  `json:"capacity" env:"LEDGER_CAPACITY" default:"1000"`
}

type ArchiveConfig struct {
	IncludeReadme bool `json:"include_readme" env:"ARCHIVE_INCLUDE_README" default:"false"`
}

type LoggingConfig struct {
	Level  string `json:"level" env:"LOG_LEVEL" default:"info"`
	Format string `json:"format" env:"LOG_FORMAT" default:"json"`
}

// NewConfig creates a new configuration by loading from environment variables
// with fallback to default values
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}
