package logger

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration.
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// fileConfig mirrors Config with optional booleans so that a key missing
// from the file keeps its default.
type fileConfig struct {
	Level          string `yaml:"level"`
	ConsoleEnabled *bool  `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    *bool  `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig returns console-only text logging at INFO.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/cavegen.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig reads the logging section of the YAML file at configPath and
// applies environment overrides. A missing file yields the defaults; a file
// that cannot be parsed yields the defaults and an error.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	var loadErr error
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			var wrapper struct {
				Logging fileConfig `yaml:"logging"`
			}
			if err := yaml.Unmarshal(data, &wrapper); err != nil {
				loadErr = fmt.Errorf("parse logging config %s: %w", configPath, err)
			} else {
				merge(&config, wrapper.Logging)
			}
		case !os.IsNotExist(err):
			loadErr = fmt.Errorf("read logging config %s: %w", configPath, err)
		}
	}

	applyEnv(&config)
	return config, loadErr
}

func merge(config *Config, f fileConfig) {
	if f.Level != "" {
		config.Level = f.Level
	}
	if f.ConsoleEnabled != nil {
		config.ConsoleEnabled = *f.ConsoleEnabled
	}
	if f.ConsoleFormat != "" {
		config.ConsoleFormat = f.ConsoleFormat
	}
	if f.FileEnabled != nil {
		config.FileEnabled = *f.FileEnabled
	}
	if f.FilePath != "" {
		config.FilePath = f.FilePath
	}
	if f.FileFormat != "" {
		config.FileFormat = f.FileFormat
	}
	if f.FileMaxSizeMB > 0 {
		config.FileMaxSizeMB = f.FileMaxSizeMB
	}
	if f.FileMaxBackups > 0 {
		config.FileMaxBackups = f.FileMaxBackups
	}
	if f.FileMaxAgeDays > 0 {
		config.FileMaxAgeDays = f.FileMaxAgeDays
	}
}

func applyEnv(config *Config) {
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Level = logLevel
	}
	if consoleFormat := os.Getenv("LOG_CONSOLE_FORMAT"); consoleFormat != "" {
		config.ConsoleFormat = consoleFormat
	}
	if fileEnabled := os.Getenv("LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			config.FileEnabled = enabled
		}
	}
	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		config.FilePath = filePath
	}
}
