package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvGenerationTemplatesDir = "SUBMITEZ_GENERATION_TEMPLATES_DIR"
	EnvGenerationFlatten      = "SUBMITEZ_GENERATION_FLATTEN"
)

// GenerationConfig holds settings for ACORD form generation. Flatten
// locks the fields of generated forms read-only; the default leaves
// them editable.
type GenerationConfig struct {
	TemplatesDir string `toml:"templates_dir"`
	Flatten      bool   `toml:"flatten"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *GenerationConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *GenerationConfig) Merge(overlay *GenerationConfig) {
	if overlay.TemplatesDir != "" {
		c.TemplatesDir = overlay.TemplatesDir
	}
	if overlay.Flatten {
		c.Flatten = overlay.Flatten
	}
}

func (c *GenerationConfig) loadDefaults() {
	if c.TemplatesDir == "" {
		c.TemplatesDir = "templates/acord"
	}
}

func (c *GenerationConfig) loadEnv() {
	if v := os.Getenv(EnvGenerationTemplatesDir); v != "" {
		c.TemplatesDir = v
	}
	if v := os.Getenv(EnvGenerationFlatten); v != "" {
		if flatten, err := strconv.ParseBool(v); err == nil {
			c.Flatten = flatten
		}
	}
}

func (c *GenerationConfig) validate() error {
	if c.TemplatesDir == "" {
		return fmt.Errorf("templates_dir required")
	}
	return nil
}
