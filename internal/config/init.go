package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
)

// ErrInitDeclined is returned by Init when the user keeps the existing file.
var ErrInitDeclined = errors.New("existing configuration kept")

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question string) (bool, error)

// Default returns the configuration written by Init.
func Default() *Config {
	return &Config{
		Files: FileMap{
			{Source: "package.json", Destination: "./"},
			{Source: "plugin-tailwind.ts", Destination: "./"},
			{Source: "tailwind.config.ts", Destination: "./"},
		},
		Tailwind: true,
		Exclude: ExcludeConfig{
			Extensions: []string{".stories.tsx"},
		},
	}
}

// Init writes the default configuration into projectDir. When a configuration file
// already exists and force is false, confirm decides whether it is overwritten.
func Init(projectDir string, force bool, confirm ConfirmFunc) (string, error) {
	cfgPath := Path(projectDir)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		if confirm == nil {
			return cfgPath, ferrors.ConfigError(fmt.Sprintf("%s already exists (use --force to overwrite)", FileName)).Build()
		}
		ok, err := confirm(fmt.Sprintf("%s configuration file already exists, do you want to override it ?", FileName))
		if err != nil {
			return cfgPath, fmt.Errorf("read confirmation: %w", err)
		}
		if !ok {
			return cfgPath, ErrInitDeclined
		}
	}

	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return cfgPath, fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		return cfgPath, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithContext("path", cfgPath).
			Build()
	}
	return cfgPath, nil
}
