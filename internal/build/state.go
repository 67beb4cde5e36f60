package build

import (
	"git.home.luguber.info/inful/cosmofactory/internal/compiler"
	"git.home.luguber.info/inful/cosmofactory/internal/config"
	"git.home.luguber.info/inful/cosmofactory/internal/console"
	"git.home.luguber.info/inful/cosmofactory/internal/manifest"
	"git.home.luguber.info/inful/cosmofactory/internal/metrics"
	"git.home.luguber.info/inful/cosmofactory/internal/style"
	"git.home.luguber.info/inful/cosmofactory/internal/tsconfig"
)

// BuildState carries inputs, collaborators and intermediate results across stages.
type BuildState struct {
	Config     *config.Config
	ProjectDir string
	Strict     bool

	Compiler compiler.Compiler
	Styles   style.Builder
	Console  *console.Printer
	Recorder metrics.Recorder

	// Set by load_compiler_options.
	Options *tsconfig.CompilerOptions
	SrcDir  string
	DistDir string

	// Set by collect_sources.
	Sources []string
	Assets  []string

	// Set by later stages.
	Compilation *compiler.Result
	Copies      []manifest.CopyOperation

	Report *Report
}
