// Package config loads and persists tool configuration from the
// .qirc directory, in JSON or YAML.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"qirc/internal/synth"
)

// Config represents the complete qirc configuration (v1 schema)
type Config struct {
	Version int `json:"version" yaml:"version" mapstructure:"version"`

	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis" mapstructure:"synthesis"`
	Store     StoreConfig     `json:"store" yaml:"store" mapstructure:"store"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// SynthesisConfig controls how Pauli exponentials are lowered
type SynthesisConfig struct {
	DefaultCXConfig string `json:"defaultCxConfig" yaml:"defaultCxConfig" mapstructure:"defaultCxConfig"`
}

// StoreConfig locates the architecture store
type StoreConfig struct {
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" yaml:"format" mapstructure:"format"`
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Synthesis: SynthesisConfig{
			DefaultCXConfig: string(synth.Tree),
		},
		Store: StoreConfig{
			Path: filepath.Join(".qirc", "architectures.db"),
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .qirc/config.{json,yaml} under
// root, falling back to defaults when no file exists.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("synthesis.defaultCxConfig", string(synth.Tree))
	v.SetDefault("store.path", filepath.Join(".qirc", "architectures.db"))
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(root, ".qirc"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to .qirc/config.json under root.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".qirc")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// SaveYAML writes the configuration to .qirc/config.yaml under root.
func (c *Config) SaveYAML(root string) error {
	dir := filepath.Join(root, ".qirc")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if !synth.CXConfig(c.Synthesis.DefaultCXConfig).Valid() {
		return &ConfigError{Field: "synthesis.defaultCxConfig", Message: "unknown CX configuration"}
	}
	if c.Store.Path == "" {
		return &ConfigError{Field: "store.path", Message: "store path must not be empty"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
