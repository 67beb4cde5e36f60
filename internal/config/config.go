// Package config loads and validates the .cosmofactory.json build configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
)

// FileName is the fixed name of the configuration file in the project root.
const FileName = ".cosmofactory.json"

// Config is the build configuration. It is read once per invocation and never
// mutated afterwards; the pipeline works on copies of Files.
type Config struct {
	Files         FileMap       `json:"files"`
	Tailwind      bool          `json:"tailwind"`
	Exclude       ExcludeConfig `json:"exclude"`
	Strict        bool          `json:"strict,omitempty"`
	AliasFallback AliasFallback `json:"aliasFallback,omitempty"`
}

// ExcludeConfig controls which files the source and output walks skip.
type ExcludeConfig struct {
	Extensions []string `json:"extensions"`
	Patterns   []string `json:"patterns,omitempty"`
}

// ErrConfigNotFound is wrapped by Load when the configuration file is missing.
var ErrConfigNotFound = errors.New("configuration file not found")

// Path returns the configuration file path for a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, FileName)
}

// Load reads, decodes and validates the configuration in projectDir.
// Environment files in the project directory are loaded first so that ${VAR}
// references in manifest paths can be expanded.
func Load(projectDir string) (*Config, error) {
	if err := loadEnvFiles(projectDir); err != nil {
		slog.Debug("No environment file loaded", logfields.Error(err))
	}

	cfgPath := Path(projectDir)
	data, err := os.ReadFile(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ferrors.WrapError(ErrConfigNotFound, ferrors.CategoryConfig,
			fmt.Sprintf("config file %s not found, run 'init' command to create it.", FileName)).
			Info().
			WithContext("path", cfgPath).
			Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read config file").
			Fatal().
			WithContext("path", cfgPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.expandEnv()
	slog.Debug("Configuration loaded", logfields.Path(cfgPath), logfields.Count(cfg.Files.Len()))
	return cfg, nil
}

// envReference matches a braced ${NAME} reference.
var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv expands ${NAME} references in manifest paths when NAME is set. Bare $
// characters and references to unset variables are kept literally.
func (c *Config) expandEnv() {
	expanded := make(FileMap, 0, len(c.Files))
	for _, e := range c.Files {
		expanded = expanded.Set(expandSetVars(e.Source), expandSetVars(e.Destination))
	}
	c.Files = expanded
}

func expandSetVars(s string) string {
	return envReference.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return ref
	})
}
