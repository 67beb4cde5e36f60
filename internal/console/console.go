// Package console prints the user-facing build output on stdout.
//
// Log records go to stderr through slog; this package is for the lines a user is
// meant to read: compiler diagnostics, the compilation outcome and the build summary.
// Colors are used only when the destination is a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes plain or colored lines to a writer.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	problem *color.Color
	success *color.Color
	failure *color.Color
	notice  *color.Color
}

// New returns a printer for w. Color is enabled when w is a terminal and
// NO_COLOR is not set.
func New(w io.Writer) *Printer {
	return NewWithColor(w, isTerminal(w))
}

// NewWithColor returns a printer with color explicitly enabled or disabled.
func NewWithColor(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:       w,
		problem: color.New(color.FgYellow),
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		notice:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.problem, p.success, p.failure, p.notice} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Stdout returns a printer for os.Stdout.
func Stdout() *Printer { return New(os.Stdout) }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Problem prints a diagnostic line.
func (p *Printer) Problem(line string) { p.println(p.problem, line) }

// Success prints a positive outcome line.
func (p *Printer) Success(line string) { p.println(p.success, line) }

// Failure prints a negative outcome line.
func (p *Printer) Failure(line string) { p.println(p.failure, line) }

// Notice prints an informational line.
func (p *Printer) Notice(line string) { p.println(p.notice, line) }

// Plain prints a line without decoration.
func (p *Printer) Plain(line string) { p.println(nil, line) }

func (p *Printer) println(c *color.Color, line string) {
	if p == nil || p.w == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if c != nil {
		line = c.Sprint(line)
	}
	_, _ = fmt.Fprintln(p.w, line)
}
