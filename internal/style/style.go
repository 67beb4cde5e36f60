// Package style runs the CSS toolchain that produces the distributed stylesheets.
package style

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/process"
)

// Output file names written into the distribution directory.
const (
	StylesFile    = "styles.css"
	MinStylesFile = "styles.min.css"
)

// ErrStyleBuildFailed is wrapped when the CSS toolchain exits unsuccessfully.
var ErrStyleBuildFailed = errors.New("style build failed")

// Builder produces stylesheets in a distribution directory.
type Builder interface {
	Build(ctx context.Context, distDir string) error
}

// Tailwind runs the Tailwind CLI twice: once for the plain stylesheet and once
// minified.
type Tailwind struct {
	// Runner starts the toolchain process. Defaults to process.Exec.
	Runner process.Runner
	// ProjectDir is the working directory of the toolchain.
	ProjectDir string
}

// NewTailwind returns a Tailwind builder for the project directory.
func NewTailwind(projectDir string) *Tailwind {
	return &Tailwind{Runner: process.Exec{}, ProjectDir: projectDir}
}

// Build implements Builder. The runs are sequential; the first failure stops.
func (t *Tailwind) Build(ctx context.Context, distDir string) error {
	runner := t.Runner
	if runner == nil {
		runner = process.Exec{}
	}
	invocations := [][]string{
		{"tailwindcss", "-o", filepath.Join(distDir, StylesFile), "build"},
		{"tailwindcss", "-o", filepath.Join(distDir, MinStylesFile), "build", "--minify"},
	}
	for _, args := range invocations {
		slog.Info("Building styles", logfields.Destination(args[2]))
		res, err := runner.Run(ctx, t.ProjectDir, "npx", args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStyleBuildFailed, err)
		}
		if res.ExitCode != 0 {
			if out := res.Output(); out != "" {
				return fmt.Errorf("%w: %s exited with status %d: %s", ErrStyleBuildFailed, args[2], res.ExitCode, out)
			}
			return fmt.Errorf("%w: %s exited with status %d", ErrStyleBuildFailed, args[2], res.ExitCode)
		}
	}
	return nil
}

// Noop builds nothing.
type Noop struct{}

// Build implements Builder.
func (Noop) Build(context.Context, string) error { return nil }
