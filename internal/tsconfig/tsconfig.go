// Package tsconfig reads the compiler options of a project's tsconfig.json.
//
// Only the fields the build pipeline needs are interpreted; the complete
// compilerOptions object is kept verbatim for the compiler driver. "extends" is not
// followed.
package tsconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
)

// FileName is the fixed name of the compiler project file.
const FileName = "tsconfig.json"

// ErrOutDirMissing is returned when compilerOptions.outDir is not set.
var ErrOutDirMissing = errors.New("compilerOptions.outDir is required")

// CompilerOptions holds the compiler settings the pipeline reads.
type CompilerOptions struct {
	OutDir  string
	BaseURL string
	Paths   PathMap
	// Raw is the complete compilerOptions object as written.
	Raw map[string]json.RawMessage
}

// Load reads tsconfig.json from projectDir. Comments and trailing commas are allowed.
func Load(projectDir string) (*CompilerOptions, error) {
	p := filepath.Join(projectDir, FileName)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read "+FileName).
			Fatal().
			WithContext("path", p).
			Build()
	}
	opts, err := Parse(data)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid "+FileName).
			Fatal().
			WithContext("path", p).
			Build()
	}
	return opts, nil
}

// Parse decodes a tsconfig document.
func Parse(data []byte) (*CompilerOptions, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	var doc struct {
		CompilerOptions map[string]json.RawMessage `json:"compilerOptions"`
	}
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	raw := doc.CompilerOptions
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}

	opts := &CompilerOptions{Raw: raw}
	if err := decodeField(raw, "outDir", &opts.OutDir); err != nil {
		return nil, err
	}
	if opts.OutDir == "" {
		return nil, ErrOutDirMissing
	}
	if err := decodeField(raw, "baseUrl", &opts.BaseURL); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "paths", &opts.Paths); err != nil {
		return nil, err
	}
	return opts, nil
}

func decodeField(raw map[string]json.RawMessage, key string, dst any) error {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("compilerOptions.%s: %w", key, err)
	}
	return nil
}
