// Package config defines the data structures related to configuration and
// includes functions for loading and resolving scenarios.
package config

import (
	"io"
	"strings"

	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/engine"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for event-viability.
type Configuration struct {
	Common      engine.Parameters `yaml:"common"`
	Scenarios   []Scenario        `yaml:"scenarios"`
	Concurrency int               `yaml:"concurrency,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, xlsx
	Path   string `yaml:"path,omitempty"`   // required for xlsx
}

// Scenario is one named variation of the common parameters. Overrides use the
// same keys as common and only need to name what changes.
type Scenario struct {
	Name      string         `yaml:"name"`
	Active    bool           `yaml:"active"`
	Mode      string         `yaml:"mode,omitempty"`
	Overrides map[string]any `yaml:"overrides,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("concurrency", constants.DefaultConcurrency)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, eris.Wrapf(err, "error reading config file %s", configPath)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, eris.Wrap(err, "error reading config")
	}
	return decode(v)
}

// decode starts from the reference parameters so that any stream the file
// leaves out keeps its default assumptions.
func decode(v *viper.Viper) (*Configuration, error) {
	configuration := Configuration{Common: engine.DefaultParameters()}
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, eris.Wrap(err, "unable to decode into struct")
	}
	if configuration.Concurrency < 1 {
		configuration.Concurrency = 1
	}
	return &configuration, nil
}
