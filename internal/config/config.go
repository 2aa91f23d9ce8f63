package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Service is one declared service unit: which template renders it, the unit
// file name it converges to, and the variables fed into the template.
type Service struct {
	Template  string            `yaml:"template"`
	Unit      string            `yaml:"unit"`
	Variables map[string]string `yaml:"variables"`
	// When is an optional boolean expression; when it evaluates to false
	// the service is skipped for the run.
	When string `yaml:"when,omitempty"`
}

// Host is a remote target for agentless convergence over SSH.
type Host struct {
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	User     string `yaml:"user"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password,omitempty"`
	KeyPath  string `yaml:"key_path,omitempty"`
}

type Config struct {
	Vars     map[string]string `yaml:"vars,omitempty"`
	EnvFile  string            `yaml:"env_file,omitempty"`
	Hosts    []Host            `yaml:"hosts,omitempty"`
	Services []Service         `yaml:"services"`
}

// Load reads and parses the configuration document. Unknown fields are
// rejected so a typo in a key fails loudly instead of being ignored.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks the declaration set for fatal problems.
func (c *Config) Validate() error {
	for i, svc := range c.Services {
		if svc.Unit == "" {
			return fmt.Errorf("service #%d has an empty unit name", i+1)
		}
		if svc.Template == "" {
			return fmt.Errorf("service %s has an empty template name", svc.Unit)
		}
	}
	for _, h := range c.Hosts {
		if h.Name == "" || h.Address == "" {
			return fmt.Errorf("host entries need both a name and an address")
		}
	}
	return nil
}

// DuplicateUnits returns unit names declared more than once, in first-seen
// order. Duplicates are applied in declaration order with the later entry
// owning the state record; callers surface them as a warning.
func (c *Config) DuplicateUnits() []string {
	seen := make(map[string]int)
	var dups []string
	for _, svc := range c.Services {
		seen[svc.Unit]++
		if seen[svc.Unit] == 2 {
			dups = append(dups, svc.Unit)
		}
	}
	return dups
}

// FindHost looks up a remote target by name.
func (c *Config) FindHost(name string) (Host, error) {
	for _, h := range c.Hosts {
		if h.Name == name {
			return h, nil
		}
	}
	return Host{}, fmt.Errorf("host %s is not defined in the configuration", name)
}

// BaseVars builds the run-wide variable layer: entries from the env file (the
// flag value wins over the env_file key) overlaid by the global vars block.
// Per-service variables are merged on top later, see MergeVars.
func (c *Config) BaseVars(envFile string) (map[string]string, error) {
	base := make(map[string]string)

	path := envFile
	if path == "" {
		path = c.EnvFile
	}
	if path != "" {
		env, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("could not read env file %s: %w", path, err)
		}
		for k, v := range env {
			base[k] = v
		}
	}

	for k, v := range c.Vars {
		base[k] = v
	}
	return base, nil
}

// MergeVars overlays override onto base without mutating either map.
func MergeVars(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
