package rclonerun

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk and environment configuration for a Runner. A YAML
// file supplies defaults and RCLONE_* environment variables override it,
// so a deployment can retarget the executable or its suppression policy
// without editing files.
type Config struct {
	// Path locates the rclone executable.
	Path string `yaml:"path" env:"RCLONE_PATH"`

	// Suppress lists error-kind identifiers downgraded to warnings on
	// every run. Comma-separated in the environment.
	Suppress []string `yaml:"suppress" env:"RCLONE_SUPPRESS" envSeparator:","`
}

// LoadConfig reads the YAML file at path, then applies environment
// overrides. A missing file is fine (environment only), as is an empty
// path.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// environment only
		case err != nil:
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		default:
			if err = yaml.Unmarshal(data, &c); err != nil {
				return nil, fmt.Errorf("parsing config %q: %w", path, err)
			}
		}
	}
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}
	return &c, nil
}

// Parameters converts the config into runner parameters, leaving the rest
// of the bag to Validate's defaults.
func (c *Config) Parameters() *Parameters {
	return &Parameters{Path: c.Path, Suppress: c.Suppress}
}
