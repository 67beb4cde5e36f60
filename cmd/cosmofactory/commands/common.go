package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cosmofactory/internal/build"
)

// LogLevelEnv overrides the log level chosen by --verbose.
const LogLevelEnv = "COSMOFACTORY_LOG_LEVEL"

// Global carries process-wide state shared by subcommands.
type Global struct {
	Context context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	// NewService builds the pipeline service; nil uses build.NewService.
	NewService func() *build.Service
}

// NewGlobal returns the state used by the real binary.
func NewGlobal(ctx context.Context) *Global {
	return &Global{Context: ctx, Stdin: os.Stdin, Stdout: os.Stdout}
}

func (g *Global) service() *build.Service {
	if g.NewService != nil {
		return g.NewService()
	}
	return build.NewService()
}

func (g *Global) ctx() context.Context {
	if g.Context != nil {
		return g.Context
	}
	return context.Background()
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Dir     string           `short:"C" name:"dir" help:"Project directory containing .cosmofactory.json" default:"." type:"existingdir"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Compile src/ into dist/, copy manifest files and rewrite path aliases"`
	Init  InitCmd  `cmd:"" help:"Create a default .cosmofactory.json in the project directory"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.logLevel()})))
	return nil
}

func (c *CLI) logLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if raw := strings.TrimSpace(os.Getenv(LogLevelEnv)); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err == nil {
			return level
		}
	}
	return slog.LevelInfo
}
