// Package manifest turns the configured source to destination mapping into copy
// operations against the distribution directory and executes them.
package manifest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"git.home.luguber.info/inful/cosmofactory/internal/config"
	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/paths"
)

// ErrSourceNotFound is wrapped when a manifest source does not exist.
var ErrSourceNotFound = errors.New("manifest source does not exist")

// CopyOperation is one resolved copy from Source to Destination.
type CopyOperation struct {
	Source      string
	Destination string
}

// srcPrefix matches the leading source-root segment of a discovered asset path.
var srcPrefix = regexp.MustCompile(`^(\./)?src/`)

// MergeAssets returns files with every discovered asset mapped to its path below
// the source root. assets are paths relative to the project directory, such as
// "src/components/button.css", which maps to "components/button.css".
func MergeAssets(files config.FileMap, assets []string) config.FileMap {
	out := files.Clone()
	for _, a := range assets {
		key := filepath.ToSlash(a)
		out = out.Set(key, srcPrefix.ReplaceAllString(key, ""))
	}
	return out
}

// Resolver computes copy operations for a project.
type Resolver struct {
	// ProjectDir is the directory manifest sources are relative to.
	ProjectDir string
	// DistDir is the distribution directory destinations are prefixed with.
	DistDir string
}

// Resolve checks every source and computes its copy target. All entries are
// resolved before anything is copied, so a missing source leaves the filesystem
// untouched.
func (r Resolver) Resolve(files config.FileMap) ([]CopyOperation, error) {
	ops := make([]CopyOperation, 0, files.Len())
	for _, entry := range files {
		src := r.sourcePath(entry.Source)
		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				err = fmt.Errorf("%w: %s", ErrSourceNotFound, entry.Source)
			}
			return nil, ferrors.WrapError(err, ferrors.CategoryBuild,
				fmt.Sprintf("Source %s does not exist", entry.Source)).
				Fatal().
				WithContext("source", entry.Source).
				Build()
		}

		destination := r.DistDir + "/" + entry.Destination
		target := paths.ToWriteDescriptor(destination).Target(filepath.Base(src))
		ops = append(ops, CopyOperation{Source: src, Destination: filepath.Clean(filepath.FromSlash(target))})
	}
	return ops, nil
}

func (r Resolver) sourcePath(source string) string {
	if filepath.IsAbs(source) || r.ProjectDir == "" {
		return filepath.FromSlash(source)
	}
	return filepath.Join(r.ProjectDir, filepath.FromSlash(source))
}

// Execute runs the operations in order. Directories are merged recursively and
// existing files overwritten; when two operations target the same path the last one
// wins.
func Execute(ops []CopyOperation) error {
	for _, op := range ops {
		if err := Copy(op.Source, op.Destination); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "copy failed").
				Fatal().
				WithContext("source", op.Source).
				WithContext("destination", op.Destination).
				Build()
		}
		slog.Debug("Copied manifest entry", logfields.Source(op.Source), logfields.Destination(op.Destination))
	}
	return nil
}
