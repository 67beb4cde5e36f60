package compiler

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Category is the severity the compiler assigned to a diagnostic.
type Category string

const (
	CategoryError   Category = "error"
	CategoryWarning Category = "warning"
	CategoryMessage Category = "message"
)

// Diagnostic is one compiler message. Line and Column are 1-based; zero means the
// position is unknown.
type Diagnostic struct {
	File     string   `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int      `json:"column,omitempty" yaml:"column,omitempty"`
	Category Category `json:"category" yaml:"category"`
	Code     int      `json:"code,omitempty" yaml:"code,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// HasPosition reports whether file and position are known.
func (d Diagnostic) HasPosition() bool {
	return d.File != "" && d.Line > 0 && d.Column > 0
}

// Format renders the diagnostic as "file (line,col): message", or the bare message
// when no position is known.
func Format(d Diagnostic) string {
	if d.HasPosition() {
		return fmt.Sprintf("%s (%d,%d): %s", d.File, d.Line, d.Column, d.Message)
	}
	return d.Message
}

const (
	successLine = "The compilation was successful."
	failureLine = "The compilation was unsuccessful."
)

// Summary returns the outcome line for a compilation.
func Summary(emitSkipped bool) string {
	if emitSkipped {
		return failureLine
	}
	return successLine
}

// Printer receives compilation output lines.
type Printer interface {
	Problem(line string)
	Success(line string)
	Failure(line string)
}

// Print writes every diagnostic followed by exactly one outcome line.
func Print(p Printer, diags []Diagnostic, emitSkipped bool) {
	for _, d := range diags {
		p.Problem(Format(d))
	}
	if emitSkipped {
		p.Failure(Summary(true))
		return
	}
	p.Success(Summary(false))
}

var (
	positionedLine = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): (error|warning|message) TS(\d+): (.*)$`)
	globalLine     = regexp.MustCompile(`^(error|warning|message) TS(\d+): (.*)$`)
)

// ParseOutput parses compiler output produced with --pretty false. Indented lines
// continue the previous diagnostic; any other unrecognized line becomes a bare
// diagnostic.
func ParseOutput(output string) []Diagnostic {
	var diags []Diagnostic
	sc := bufio.NewScanner(strings.NewReader(output))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := positionedLine.FindStringSubmatch(line); m != nil {
			diags = append(diags, Diagnostic{
				File:     m[1],
				Line:     atoi(m[2]),
				Column:   atoi(m[3]),
				Category: Category(m[4]),
				Code:     atoi(m[5]),
				Message:  m[6],
			})
			continue
		}
		if m := globalLine.FindStringSubmatch(line); m != nil {
			diags = append(diags, Diagnostic{Category: Category(m[1]), Code: atoi(m[2]), Message: m[3]})
			continue
		}
		if len(diags) > 0 && (line[0] == ' ' || line[0] == '\t') {
			last := &diags[len(diags)-1]
			last.Message += "\n" + line
			continue
		}
		diags = append(diags, Diagnostic{Category: CategoryError, Message: strings.TrimSpace(line)})
	}
	return diags
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
