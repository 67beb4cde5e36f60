package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
)

// envFiles are tried in order; every existing one is loaded.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads KEY=VALUE files from the project directory. Variables already
// present in the process environment are never overwritten.
func loadEnvFiles(projectDir string) error {
	loaded := 0
	for _, name := range envFiles {
		p := filepath.Join(projectDir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("no .env file found in %s", projectDir)
	}
	return nil
}
