package dialect

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a parsed capability override file. It carries partial tables
// that are laid over the shipped defaults per dialect.
type Config struct {
	Dialects map[string]DialectConfig `yaml:"dialects"`
}

// DialectConfig is the override entry for one dialect.
type DialectConfig struct {
	Capabilities map[string]GateConfig `yaml:"capabilities"`
}

// GateConfig is one capability override. A listed capability is enabled
// unless Enabled is explicitly false; MinVersion optionally gates it.
type GateConfig struct {
	Enabled    *bool  `yaml:"enabled"`
	MinVersion string `yaml:"min-version"`
}

// LoadConfig parses a capability override document.
func LoadConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("dialect: parsing capability config: %w", err)
	}
	return &c, nil
}

// LoadConfigFile reads and parses a capability override file.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dialect: opening capability config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Table converts the overrides for one dialect into a capability table.
// Dialects absent from the config yield an empty table.
func (c *Config) Table(name string) (Table, error) {
	dc, ok := c.Dialects[name]
	if !ok {
		return Table{}, nil
	}
	t := make(Table, len(dc.Capabilities))
	for cap, gc := range dc.Capabilities {
		if _, ok := known[Capability(cap)]; !ok {
			return nil, fmt.Errorf("dialect: unknown capability %q in config for %q", cap, name)
		}
		g := Gate{Enabled: true}
		if gc.Enabled != nil {
			g.Enabled = *gc.Enabled
		}
		if gc.MinVersion != "" {
			v, err := ParseVersion(gc.MinVersion)
			if err != nil {
				return nil, fmt.Errorf("dialect: capability %q for %q: %w", cap, name, err)
			}
			g.MinVersion = &v
		}
		t[Capability(cap)] = g
	}
	return t, nil
}
