// Package config defines the data structures related to application
// configuration and includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mgerber/venue-forecast/pkg/constants"
)

// Configuration holds all runtime configuration for venue-forecast.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Store    StoreConfig    `yaml:"store,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Forecast ForecastConfig `yaml:"forecast,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// StoreConfig selects and parameterizes the scenario persistence backend.
type StoreConfig struct {
	Backend     string `yaml:"backend,omitempty"`     // file, postgres
	DataDir     string `yaml:"dataDir,omitempty"`     // file backend
	PostgresDSN string `yaml:"postgresDsn,omitempty"` // postgres backend; VENUE_FORECAST_POSTGRES_DSN overrides
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Address     string `yaml:"address,omitempty"`
	MaxBodySize int64  `yaml:"maxBodySize,omitempty"`
}

// ForecastConfig holds calculation context defaults.
type ForecastConfig struct {
	// CurrentWeek overrides the week derived from the system date when in
	// [1, 52]; zero means derive it from the clock.
	CurrentWeek int `yaml:"currentWeek,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the
// YAML-formatted configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("VENUE_FORECAST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

// LoadConfigurationFromReader loads YAML-formatted configuration from an
// arbitrary reader.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

// DefaultConfiguration returns the configuration used when no config file
// is present.
func DefaultConfiguration() *Configuration {
	conf := &Configuration{}
	conf.applyDefaults()
	return conf
}

func (c *Configuration) applyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = constants.StoreBackendFile
	}
	if c.Store.DataDir == "" {
		c.Store.DataDir = constants.DefaultDataDir
	}
	if dsn := os.Getenv("VENUE_FORECAST_POSTGRES_DSN"); dsn != "" {
		c.Store.PostgresDSN = dsn
	}
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Server.MaxBodySize <= 0 {
		c.Server.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch c.Store.Backend {
	case constants.StoreBackendFile, constants.StoreBackendPostgres:
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown store backend '%s'; falling back to '%s'",
			c.Store.Backend, constants.StoreBackendFile))
	}

	if c.Store.Backend == constants.StoreBackendPostgres && strings.TrimSpace(c.Store.PostgresDSN) == "" {
		warnings = append(warnings, "Store backend is 'postgres' but no DSN is configured")
	}

	if c.Forecast.CurrentWeek < 0 || c.Forecast.CurrentWeek > constants.WeeksPerYear {
		warnings = append(warnings, fmt.Sprintf("Forecast currentWeek %d is outside 1..%d and will be ignored",
			c.Forecast.CurrentWeek, constants.WeeksPerYear))
	}

	switch c.Output.Format {
	case "", constants.OutputFormatPretty, constants.OutputFormatCSV:
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown output format '%s'", c.Output.Format))
	}

	return warnings
}

// EffectiveCurrentWeek resolves the configured week override against the
// given fallback (normally the week derived from the system date).
func (c *Configuration) EffectiveCurrentWeek(fallback int) int {
	if c.Forecast.CurrentWeek >= 1 && c.Forecast.CurrentWeek <= constants.WeeksPerYear {
		return c.Forecast.CurrentWeek
	}
	return fallback
}
