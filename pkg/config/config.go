// Package config provides configuration loading and validation for testidgen.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrEmptyOutputDir   = errors.New("output directory must not be empty")
)

// Config holds all configuration for an annotation run.
type Config struct {
	Output  string        `mapstructure:"output"`
	Scope   ScopeConfig   `mapstructure:"scope"`
	Naming  NamingConfig  `mapstructure:"naming"`
	Logging LoggingConfig `mapstructure:"logging"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// ScopeConfig selects which element categories are annotated.
type ScopeConfig struct {
	IncludeHTML   bool `mapstructure:"include_html"`
	HTMLOnly      bool `mapstructure:"html_only"`
	FrameworkOnly bool `mapstructure:"framework_only"`
}

// NamingConfig toggles the identifier naming signals.
type NamingConfig struct {
	Comments       bool `mapstructure:"comments"`
	Text           bool `mapstructure:"text"`
	ClassNames     bool `mapstructure:"class_names"`
	StyleProps     bool `mapstructure:"style_props"`
	PathContext    bool `mapstructure:"path_context"`
	ChildText      bool `mapstructure:"child_text"`
	RecursiveText  bool `mapstructure:"recursive_text"`
	PrioritizeText bool `mapstructure:"prioritize_text"`
	State          bool `mapstructure:"state"`
	DeepProps      bool `mapstructure:"deep_props"`
	LogicalGroups  bool `mapstructure:"logical_groups"`
	Roles          bool `mapstructure:"roles"`
	Conditionals   bool `mapstructure:"conditionals"`
	ReuseShapes    bool `mapstructure:"reuse_shapes"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BatchConfig holds directory-mode configuration.
type BatchConfig struct {
	Recursive bool `mapstructure:"recursive"`
}

// LoadConfig loads configuration from file, environment variables and
// defaults. With an empty configPath, .testidgen.yaml is looked up in the
// working directory and then in $HOME; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".testidgen")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix("TESTIDGEN")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	if used := viperCfg.ConfigFileUsed(); used != "" && readErr == nil {
		schemaErr := ValidateFile(used)
		if schemaErr != nil {
			return nil, schemaErr
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("output", DefaultOutputDir)

	// Scope defaults.
	viperCfg.SetDefault("scope.include_html", true)
	viperCfg.SetDefault("scope.html_only", false)
	viperCfg.SetDefault("scope.framework_only", false)

	// Naming defaults.
	viperCfg.SetDefault("naming.comments", true)
	viperCfg.SetDefault("naming.text", true)
	viperCfg.SetDefault("naming.class_names", true)
	viperCfg.SetDefault("naming.style_props", true)
	viperCfg.SetDefault("naming.path_context", true)
	viperCfg.SetDefault("naming.child_text", false)
	viperCfg.SetDefault("naming.recursive_text", false)
	viperCfg.SetDefault("naming.prioritize_text", true)
	viperCfg.SetDefault("naming.state", true)
	viperCfg.SetDefault("naming.deep_props", true)
	viperCfg.SetDefault("naming.logical_groups", true)
	viperCfg.SetDefault("naming.roles", true)
	viperCfg.SetDefault("naming.conditionals", true)
	viperCfg.SetDefault("naming.reuse_shapes", true)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("batch.recursive", false)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Output) == "" {
		return ErrEmptyOutputDir
	}

	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	return nil
}
