package tether

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls how a container is assembled.
type Config struct {
	// DisableDefaultStrategies skips installing the SINGLETON and TRANSIENT
	// lifecycle strategies.
	DisableDefaultStrategies bool `yaml:"disable_default_strategies"`

	// DisableDefaultTokenTypeCheckers skips installing the built-in token
	// kinds used when describing errors.
	DisableDefaultTokenTypeCheckers bool `yaml:"disable_default_token_type_checkers"`

	// DisableDefaultTokenNameStrategies skips installing the built-in token
	// naming strategies used when describing errors.
	DisableDefaultTokenNameStrategies bool `yaml:"disable_default_token_name_strategies"`

	// DisableBuildRequired allows Get before Build.
	DisableBuildRequired bool `yaml:"disable_build_required"`

	// ContainerToken registers the container under a string token instead
	// of its type.
	ContainerToken string `yaml:"container_token"`

	// Logging configures the container logger when none is supplied. An
	// empty level disables logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus collector.
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig configures container metrics.
type MetricsConfig struct {
	// Namespace prefixes metric names. Defaults to "tether".
	Namespace string `yaml:"namespace"`
}

// DefaultConfig returns the default container configuration.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Encoding: "console",
		},
		Metrics: MetricsConfig{
			Namespace: "tether",
		},
	}
}

// LoadConfig reads a YAML container configuration. Fields missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
