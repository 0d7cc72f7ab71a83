// Package config handles configuration loading and writer profile
// definitions shared by the command line tools and the server.
package config

import (
	"fmt"
	"os"

	"github.com/geowrite/kml"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	// Default names the profile used when a request or invocation does not
	// select one.
	Default  string             `yaml:"default,omitempty" json:"default,omitempty"`
	Profiles map[string]Profile `yaml:"profiles" json:"profiles"`
}

// Profile is a named set of writer settings.
type Profile struct {
	Precision    *int     `yaml:"precision,omitempty" json:"precision,omitempty"`
	Z            *float64 `yaml:"z,omitempty" json:"z,omitempty"`
	LinePrefix   string   `yaml:"line_prefix,omitempty" json:"line_prefix,omitempty"`
	AltitudeMode string   `yaml:"altitude_mode,omitempty" json:"altitude_mode,omitempty"`
	MaxPerLine   int      `yaml:"max_coordinates_per_line,omitempty" json:"max_coordinates_per_line,omitempty"`
	Extrude      bool     `yaml:"extrude,omitempty" json:"extrude,omitempty"`
	Strict       bool     `yaml:"strict,omitempty" json:"strict,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Profile resolves a profile by name. An empty name selects the configured
// default profile, or built-in writer defaults when no default is named.
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		if c.Default == "" {
			return Profile{}, nil
		}
		name = c.Default
	}

	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown writer profile %q", name)
	}
	return p, nil
}

// Options converts the profile into writer options. Unset fields keep the
// writer's own defaults.
func (p Profile) Options() []kml.Option {
	var opts []kml.Option

	if p.LinePrefix != "" {
		opts = append(opts, kml.WithLinePrefix(p.LinePrefix))
	}
	if p.MaxPerLine != 0 {
		opts = append(opts, kml.WithMaxCoordinatesPerLine(p.MaxPerLine))
	}
	if p.Precision != nil {
		opts = append(opts, kml.WithPrecision(*p.Precision))
	}
	if p.Z != nil {
		opts = append(opts, kml.WithZ(*p.Z))
	}
	if p.Extrude {
		opts = append(opts, kml.WithExtrude(true))
	}
	if p.AltitudeMode != "" {
		opts = append(opts, kml.WithAltitudeMode(p.AltitudeMode))
	}
	if p.Strict {
		opts = append(opts, kml.WithStrictKinds())
	}

	return opts
}
