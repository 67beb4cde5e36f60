package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/process"
	"git.home.luguber.info/inful/cosmofactory/internal/tsconfig"
	"git.home.luguber.info/inful/cosmofactory/internal/workspace"
)

const generatedProjectFile = "tsconfig.build.json"

// tsc exit statuses that still produced output.
const (
	exitSuccess          = 0
	exitOutputsGenerated = 2
)

// TSC runs the project's TypeScript compiler through npx.
type TSC struct {
	// Runner starts the compiler process. Defaults to process.Exec.
	Runner process.Runner
	// WorkspaceDir is where the generated project file is written. Defaults to the
	// system temp directory.
	WorkspaceDir string
}

// NewTSC returns a compiler using the real process runner.
func NewTSC() *TSC {
	return &TSC{Runner: process.Exec{}}
}

// generatedProject is the scratch tsconfig handed to the compiler. It inherits the
// project's options and restricts the inputs to the collected files.
type generatedProject struct {
	Extends string   `json:"extends"`
	Files   []string `json:"files"`
	Include []string `json:"include"`
}

// Compile implements Compiler.
func (t *TSC) Compile(ctx context.Context, req Request) (*Result, error) {
	projectDir, err := filepath.Abs(req.ProjectDir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(projectDir, f)
		}
		files = append(files, filepath.ToSlash(f))
	}

	ws := workspace.NewManager(t.WorkspaceDir)
	if err := ws.Create(); err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to remove compiler workspace", logfields.Error(err))
		}
	}()

	doc, err := json.MarshalIndent(generatedProject{
		Extends: filepath.ToSlash(filepath.Join(projectDir, tsconfig.FileName)),
		Files:   files,
		Include: []string{},
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	projectFile, err := ws.WriteFile(generatedProjectFile, doc)
	if err != nil {
		return nil, err
	}

	runner := t.Runner
	if runner == nil {
		runner = process.Exec{}
	}
	slog.Info("Compiling sources", logfields.Count(len(files)), logfields.Path(projectDir))
	res, err := runner.Run(ctx, projectDir, "npx", "tsc", "-p", projectFile, "--pretty", "false")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompilerUnavailable, err)
	}

	result := &Result{
		EmitSkipped: res.ExitCode != exitSuccess && res.ExitCode != exitOutputsGenerated,
		Diagnostics: ParseOutput(string(res.Stdout) + "\n" + string(res.Stderr)),
	}
	slog.Debug("Compiler finished",
		slog.Int("exit_code", res.ExitCode),
		logfields.Count(len(result.Diagnostics)),
		slog.Bool("emit_skipped", result.EmitSkipped))
	return result, nil
}
