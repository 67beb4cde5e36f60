// Package collect walks source and output trees for files selected by name suffix.
package collect

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
)

// Collector selects files below a root directory.
//
// A file is selected when its name ends with one of Include and none of Exclude.
// Patterns, when set, are doublestar globs matched against the slash-separated path
// relative to the root; matching files are skipped as well.
type Collector struct {
	Include  []string
	Exclude  []string
	Patterns []string
}

// New creates a Collector for the given suffix allow and deny lists.
func New(include, exclude []string) *Collector {
	return &Collector{Include: include, Exclude: exclude}
}

// WithPatterns adds glob exclusions and returns the collector.
func (c *Collector) WithPatterns(patterns []string) *Collector {
	c.Patterns = append(c.Patterns, patterns...)
	return c
}

// Collect is shorthand for New(include, exclude).Collect(root).
func Collect(root string, include, exclude []string) ([]string, error) {
	return New(include, exclude).Collect(root)
}

// Collect walks root depth-first and returns the selected files as root-joined paths.
// Any walk error aborts the collection; no partial result is returned.
func (c *Collector) Collect(root string) ([]string, error) {
	for _, p := range c.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() && !isFileLink(path, d) {
			return nil
		}
		name := d.Name()
		if !hasAnySuffix(name, c.Include) || hasAnySuffix(name, c.Exclude) {
			return nil
		}
		if len(c.Patterns) > 0 {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			if c.matchesPattern(filepath.ToSlash(rel)) {
				slog.Debug("Skipping file matched by exclude pattern", logfields.Path(path))
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect files in %s: %w", root, err)
	}
	return files, nil
}

func (c *Collector) matchesPattern(rel string) bool {
	for _, p := range c.Patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// isFileLink reports whether d is a symlink resolving to a regular file.
func isFileLink(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
