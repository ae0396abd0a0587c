package cli

import (
	"fmt"

	"github.com/kbukum/fnkit/config"
	"github.com/kbukum/fnkit/observability"
)

const serviceName = "fnpipe"

// Config is the fnpipe configuration, read from fnpipe.yml and FNPIPE_*
// environment variables.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Definitions          DefinitionsConfig    `yaml:"definitions" mapstructure:"definitions"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// DefinitionsConfig lists where named definitions are looked up.
type DefinitionsConfig struct {
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	if len(c.Definitions.Dirs) == 0 {
		c.Definitions.Dirs = []string{"."}
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	return nil
}

func loadConfig(path string) (*Config, error) {
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	var cfg Config
	if err := config.Load(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
