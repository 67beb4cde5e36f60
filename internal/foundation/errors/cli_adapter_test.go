package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation error", err: ValidationError("bad shape").Build(), expected: 2},
		{name: "config error", err: ConfigError("bad config").Build(), expected: 7},
		{name: "informational config error", err: ConfigError("no config").Info().Build(), expected: 0},
		{name: "build error", err: BuildError("copy failed").Build(), expected: 11},
		{name: "compiler error", err: CompilerError("tsc missing").Build(), expected: 11},
		{name: "internal error", err: InternalError("bug").Build(), expected: 10},
		{name: "unclassified error", err: errors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var stderr bytes.Buffer
	var code = -1
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	adapter.stderr = &stderr
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("config file .cosmofactory.json not found").Info().Build())

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stderr.String(), "config file .cosmofactory.json not found") {
		t.Errorf("expected message on stderr, got %q", stderr.String())
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)
	err := WrapError(errors.New("no such file"), CategoryBuild, "source README.md does not exist").Fatal().Build()

	if got := quiet.FormatError(err); got != "Error: source README.md does not exist: no such file" {
		t.Errorf("unexpected quiet format %q", got)
	}
	if got := verbose.FormatError(err); got != err.Error() {
		t.Errorf("unexpected verbose format %q", got)
	}
	if got := quiet.FormatError(errors.New("x")); got != "Error: x" {
		t.Errorf("unexpected unclassified format %q", got)
	}
}
