package alias

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/cosmofactory/internal/collect"
	"git.home.luguber.info/inful/cosmofactory/internal/config"
	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/paths"
)

// emittedExtensions are the output files aliases are rewritten in.
var emittedExtensions = []string{".js"}

// RewriteFile rewrites one file below the output root in place. The file is only
// written when its content changed.
func (r *Rewriter) RewriteFile(file string) (bool, error) {
	depth, err := paths.Depth(r.root, file)
	if err != nil {
		return false, fmt.Errorf("depth of %s: %w", file, err)
	}
	info, err := os.Stat(file)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}
	content := string(data)
	rewritten := r.RewriteContent(content, depth)
	if rewritten == content {
		return false, nil
	}
	if err := os.WriteFile(file, []byte(rewritten), info.Mode().Perm()); err != nil {
		return false, err
	}
	slog.Debug("Rewrote aliases", logfields.Path(file))
	return true, nil
}

// RewriteTree rewrites every emitted file below the output root, skipping the
// configured exclusions, and returns how many files changed. Without rules no file
// is read.
func (r *Rewriter) RewriteTree(exclude config.ExcludeConfig) (int, error) {
	if len(r.rules) == 0 {
		return 0, nil
	}
	files, err := collect.New(emittedExtensions, exclude.Extensions).
		WithPatterns(exclude.Patterns).
		Collect(r.root)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, f := range files {
		ok, err := r.RewriteFile(f)
		if err != nil {
			return changed, fmt.Errorf("rewrite %s: %w", f, err)
		}
		if ok {
			changed++
		}
	}
	slog.Info("Aliases rewritten", logfields.Count(changed), slog.Int("scanned", len(files)))
	return changed, nil
}
