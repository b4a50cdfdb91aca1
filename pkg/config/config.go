// File: pkg/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the artifact name written into the working directory.
const DefaultOutput = "PROJETO_ARQUIVAO.txt"

// Exclusions holds the base names skipped during collection.
type Exclusions struct {
	Dirs  []string `yaml:"dirs"`  // Directory names that are never descended into.
	Files []string `yaml:"files"` // File names that are never archived.
}

// Config holds the options for one archive run.
type Config struct {
	Output        string     `yaml:"output"`         // Destination path for the archive.
	IgnoreFile    string     `yaml:"ignore_file"`    // Optional gitignore-syntax pattern file.
	Tree          string     `yaml:"tree"`           // Optional destination for the tree listing.
	PhysicalLines bool       `yaml:"physical_lines"` // Index from physically written lines.
	Exclusions    Exclusions `yaml:"exclusions"`
}

// DefaultExclusions returns the build, dependency and VCS artifacts skipped by default.
func DefaultExclusions() Exclusions {
	return Exclusions{
		Dirs: []string{
			"node_modules",
			".next",
			".git",
			".vercel",
			".turbo",
			"__pycache__",
		},
		Files: []string{
			"package-lock.json",
			"yarn.lock",
			"pnpm-lock.yaml",
			".DS_Store",
		},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output:     DefaultOutput,
		Exclusions: DefaultExclusions(),
	}
}

// Load reads a YAML file on top of the defaults. Lists present in the file
// replace the default lists.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.expandEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) expandEnv() {
	c.Output = os.ExpandEnv(c.Output)
	c.IgnoreFile = os.ExpandEnv(c.IgnoreFile)
	c.Tree = os.ExpandEnv(c.Tree)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	for _, name := range c.Exclusions.Dirs {
		if err := validateName(name); err != nil {
			return fmt.Errorf("exclusions.dirs: %w", err)
		}
	}
	for _, name := range c.Exclusions.Files {
		if err := validateName(name); err != nil {
			return fmt.Errorf("exclusions.files: %w", err)
		}
	}
	return nil
}

// validateName rejects entries that can never match a base name.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty name")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q must be a base name, not a path", name)
	}
	return nil
}
