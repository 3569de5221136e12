package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML run configuration. Flags override whatever the
// file sets, so every field also has a flag counterpart.
type Config struct {
	Log          string   `yaml:"log"`
	JSON         string   `yaml:"json"`
	JSONL        string   `yaml:"jsonl"`
	DB           string   `yaml:"db"`
	Extensions   []string `yaml:"extensions"`
	PaletteUsage bool     `yaml:"palette_usage"`
	Debug        bool     `yaml:"debug"`
}

func defaults() Config {
	return Config{
		Extensions: []string{".schem", ".schematic", ".litematic"},
	}
}

// loadConfig layers the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Normalize canonicalizes the extension filters: trimmed, lowercased, with a
// leading dot.
func (c *Config) Normalize() {
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
}

func (c Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if ext == "" || ext == "." {
			return fmt.Errorf("invalid extension %q", ext)
		}
	}
	return nil
}
