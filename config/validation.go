package config

import (
	"fmt"
	"regexp"
	"strings"

	"imgpress/domain"
)

// bodyLimitPattern matches echo's BodyLimit size notation, e.g. "30M", "2G".
var bodyLimitPattern = regexp.MustCompile(`^[0-9]+[KMG]?B?$`)

// validateConfig validates the loaded configuration values
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateUploadConfig(&config.Upload); err != nil {
		return fmt.Errorf("upload config validation failed: %w", err)
	}

	if err := validateOptimizerConfig(&config.Optimizer); err != nil {
		return fmt.Errorf("optimizer config validation failed: %w", err)
	}

	if err := validateLedgerConfig(&config.Ledger); err != nil {
		return fmt.Errorf("ledger config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.ReadTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got ReadTimeout: %v", config.ReadTimeout)
	}

	if config.WriteTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got WriteTimeout: %v", config.WriteTimeout)
	}

	if config.IdleTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got IdleTimeout: %v", config.IdleTimeout)
	}

	return nil
}

func validateUploadConfig(config *UploadConfig) error {
	if !bodyLimitPattern.MatchString(strings.ToUpper(config.OptimizeBodyLimit)) {
		return fmt.Errorf("optimize body limit must be a size like 30M, got %q", config.OptimizeBodyLimit)
	}

	if !bodyLimitPattern.MatchString(strings.ToUpper(config.ArchiveBodyLimit)) {
		return fmt.Errorf("archive body limit must be a size like 100M, got %q", config.ArchiveBodyLimit)
	}

	if config.MaxBatchFiles < 1 {
		return fmt.Errorf("max batch files must be at least 1, got %d", config.MaxBatchFiles)
	}

	return nil
}

func validateOptimizerConfig(config *OptimizerConfig) error {
	if config.DefaultQuality < domain.MinQuality || config.DefaultQuality > domain.MaxQuality {
		return fmt.Errorf("default quality must be between %d and %d, got %d",
			domain.MinQuality, domain.MaxQuality, config.DefaultQuality)
	}

	return nil
}

func validateLedgerConfig(config *LedgerConfig) error {
	if config.Enabled && config.Capacity < 1 {
		return fmt.Errorf("ledger capacity must be at least 1, got %d", config.Capacity)
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	level := strings.ToLower(config.Level)

	valid := false
	for _, validLevel := range validLevels {
		if level == validLevel {
			valid = true
			break
		}
	}

	if !valid {
		return fmt.Errorf("log level must be one of: %s, got %s",
			strings.Join(validLevels, ", "), config.Level)
	}

	validFormats := []string{"json", "text"}
	format := strings.ToLower(config.Format)

	valid = false
	for _, validFormat := range validFormats {
		if format == validFormat {
			valid = true
			break
		}
	}

	if !valid {
		return fmt.Errorf("log format must be one of: %s, got %s",
			strings.Join(validFormats, ", "), config.Format)
	}

	return nil
}
