package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vvka-141/sheetload/pkg/sheetload"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// LoggingConfig selects the log level, console format and optional JSON log file.
type LoggingConfig struct {
	Level  string `yaml:"Level"`
	Format string `yaml:"Format"`
	File   string `yaml:"File"`
}

// FileConfig mirrors sheetload.yaml. Keys absent from the file keep the
// values set by Default.
type FileConfig struct {
	ParserSettings sheetload.ParseSettings `yaml:"ParserSettings"`
	SqlSettings    sheetload.SQLSettings   `yaml:"SqlSettings"`
	StayOpen       bool                    `yaml:"StayOpen"`
	Timeout        string                  `yaml:"Timeout"`
	Logging        LoggingConfig           `yaml:"Logging"`
}

// Default returns the configuration used when no file is present.
func Default() *FileConfig {
	return &FileConfig{
		ParserSettings: sheetload.DefaultParseSettings(),
		SqlSettings:    sheetload.DefaultSQLSettings(),
		Timeout:        sheetload.DefaultTimeout.String(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path means
// sheetload.yaml in the working directory.
func Load(path string) (*FileConfig, error) {
	if path == "" {
		path = sheetload.DefaultConfigFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", path, err, sheetload.ErrInvalidConfig)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*FileConfig, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// TimeoutDuration parses Timeout. An empty value means sheetload.DefaultTimeout.
func (c *FileConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return sheetload.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid Timeout %q: %w", c.Timeout, sheetload.ErrInvalidConfig)
	}
	return d, nil
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
