package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the point client configuration.
type Config struct {
	Uplink UplinkConfig `yaml:"uplink"`
	Client ClientConfig `yaml:"client"`
	Paths  PathsConfig  `yaml:"paths"`
}

// UplinkConfig identifies the uplink and the point's subscription.
type UplinkConfig struct {
	URL   string   `yaml:"url"`
	Auth  string   `yaml:"auth"`
	Areas []string `yaml:"areas"`
}

// ClientConfig holds HTTP transport settings.
type ClientConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// PathsConfig holds filesystem paths for downloaded files.
type PathsConfig struct {
	Downloads string `yaml:"downloads"`
}

// Timeout returns the configured HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Client.TimeoutSeconds) * time.Second
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{
		Client: ClientConfig{
			TimeoutSeconds: 30,
		},
		Paths: PathsConfig{
			Downloads: "./downloads",
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration back as YAML. The file is written
// 0600 since it may carry the point's auth string.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
