// Package compiler drives the TypeScript compiler and turns its output into
// diagnostics the build prints.
//
// The pipeline only depends on the Compiler interface; TSC is the production
// implementation and runs the project-local compiler through npx.
package compiler

import (
	"context"

	"git.home.luguber.info/inful/cosmofactory/internal/tsconfig"
)

// Compiler compiles a set of source files.
//
// Compile returns an error only when the compiler could not be run. A compilation
// with errors is a successful call whose Result carries diagnostics.
type Compiler interface {
	Compile(ctx context.Context, req Request) (*Result, error)
}

// Request is one full compilation.
type Request struct {
	// Files are the collected source files.
	Files []string
	// Options are the project's compiler options.
	Options *tsconfig.CompilerOptions
	// ProjectDir is the directory holding tsconfig.json.
	ProjectDir string
}

// Result is the outcome of a compilation.
type Result struct {
	// EmitSkipped is set when the compiler produced no output.
	EmitSkipped bool
	// Diagnostics are the pre-emit and emit diagnostics in reported order.
	Diagnostics []Diagnostic
}

// Failed reports whether the compilation produced diagnostics or skipped emit.
func (r *Result) Failed() bool {
	return r != nil && (r.EmitSkipped || len(r.Diagnostics) > 0)
}

// ErrorCount returns the number of error diagnostics.
func (r *Result) ErrorCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Diagnostics {
		if d.Category == CategoryError {
			n++
		}
	}
	return n
}
