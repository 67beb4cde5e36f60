package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Fake is an in-process Compiler. It "emits" each source as a .js file in the
// output directory, mirroring the source layout below SourceRoot, and returns the
// configured diagnostics.
type Fake struct {
	// SourceRoot is the directory the emitted layout is relative to.
	SourceRoot string
	// Emit decides the output content for a source; nil copies the source verbatim.
	Emit func(src string, content []byte) []byte
	// Diagnostics are returned unchanged.
	Diagnostics []Diagnostic
	// SkipEmit suppresses output and sets EmitSkipped.
	SkipEmit bool
	// Err is returned from Compile when set.
	Err error

	Calls    int
	Requests []Request
}

// Compile implements Compiler.
func (f *Fake) Compile(_ context.Context, req Request) (*Result, error) {
	f.Calls++
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	res := &Result{EmitSkipped: f.SkipEmit, Diagnostics: f.Diagnostics}
	if f.SkipEmit {
		return res, nil
	}

	outDir := req.Options.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(req.ProjectDir, outDir)
	}
	for _, src := range req.Files {
		content, err := os.ReadFile(src)
		if err != nil {
			return nil, err
		}
		if f.Emit != nil {
			content = f.Emit(src, content)
		}
		rel, err := filepath.Rel(f.SourceRoot, src)
		if err != nil {
			return nil, err
		}
		ext := filepath.Ext(rel)
		out := filepath.Join(outDir, strings.TrimSuffix(rel, ext)+".js")
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(out, content, 0o644); err != nil {
			return nil, err
		}
	}
	return res, nil
}
