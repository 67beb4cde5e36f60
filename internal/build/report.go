package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/cosmofactory/internal/compiler"
	"git.home.luguber.info/inful/cosmofactory/internal/git"
	"git.home.luguber.info/inful/cosmofactory/internal/metrics"
)

// reportSchemaVersion is bumped on incompatible changes to the serialized report.
const reportSchemaVersion = 1

// Outcome is the final state of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageRecord is the result of one executed stage.
type StageRecord struct {
	Name       StageName           `json:"name" yaml:"name"`
	Result     metrics.ResultLabel `json:"result" yaml:"result"`
	DurationMS float64             `json:"duration_ms" yaml:"duration_ms"`
	Message    string              `json:"message,omitempty" yaml:"message,omitempty"`
}

// Issue is a warning or error recorded during the build.
type Issue struct {
	Stage   StageName      `json:"stage" yaml:"stage"`
	Kind    StageErrorKind `json:"kind" yaml:"kind"`
	Message string         `json:"message" yaml:"message"`
}

// Report captures what a build did and how it ended.
type Report struct {
	SchemaVersion int           `json:"schema_version" yaml:"schema_version"`
	ID            string        `json:"id" yaml:"id"`
	ProjectDir    string        `json:"project_dir" yaml:"project_dir"`
	Revision      *git.Revision `json:"revision,omitempty" yaml:"revision,omitempty"`
	Strict        bool          `json:"strict" yaml:"strict"`
	Start         time.Time     `json:"start" yaml:"start"`
	End           time.Time     `json:"end" yaml:"end"`
	Outcome       Outcome       `json:"outcome" yaml:"outcome"`

	Stages []StageRecord `json:"stages" yaml:"stages"`
	Issues []Issue       `json:"issues,omitempty" yaml:"issues,omitempty"`

	Sources        int                   `json:"sources" yaml:"sources"`
	EmitSkipped    bool                  `json:"emit_skipped" yaml:"emit_skipped"`
	Diagnostics    []compiler.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	FilesCopied    int                   `json:"files_copied" yaml:"files_copied"`
	FilesRewritten int                   `json:"files_rewritten" yaml:"files_rewritten"`
	StylesBuilt    bool                  `json:"styles_built" yaml:"styles_built"`

	// Errors holds fatal stage errors (at most one), Warnings the non-fatal ones.
	Errors   []error `json:"-" yaml:"-"`
	Warnings []error `json:"-" yaml:"-"`
}

func newReport(projectDir string, strict bool) *Report {
	return &Report{
		SchemaVersion: reportSchemaVersion,
		ID:            uuid.NewString(),
		ProjectDir:    projectDir,
		Strict:        strict,
		Start:         time.Now(),
	}
}

// recordStage appends the stage result and, for errors, the matching issue.
func (r *Report) recordStage(name StageName, result metrics.ResultLabel, d time.Duration, se *StageError) {
	rec := StageRecord{Name: name, Result: result, DurationMS: float64(d.Microseconds()) / 1000}
	if se != nil {
		rec.Message = se.Err.Error()
		r.Issues = append(r.Issues, Issue{Stage: name, Kind: se.Kind, Message: se.Err.Error()})
		if se.Kind == StageErrorWarning {
			r.Warnings = append(r.Warnings, se)
		} else {
			r.Errors = append(r.Errors, se)
		}
	}
	r.Stages = append(r.Stages, rec)
}

func (r *Report) finish() {
	r.End = time.Now()
	r.deriveOutcome()
}

// Duration returns the wall time of the build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

func (r *Report) deriveOutcome() {
	for _, e := range r.Errors {
		var se *StageError
		if errors.As(e, &se) && se.Kind == StageErrorCanceled {
			r.Outcome = OutcomeCanceled
			return
		}
	}
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("outcome=%s duration=%s sources=%d diagnostics=%d copied=%d rewritten=%d styles=%t warnings=%d errors=%d",
		r.Outcome, r.Duration().Truncate(time.Millisecond), r.Sources, len(r.Diagnostics),
		r.FilesCopied, r.FilesRewritten, r.StylesBuilt, len(r.Warnings), len(r.Errors))
}

// Persist writes the report to path, as YAML when the extension is .yaml or .yml and
// as JSON otherwise. The file is replaced atomically.
func (r *Report) Persist(path string) error {
	if r.End.IsZero() {
		r.finish()
	}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(r)
	default:
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure report directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report: %w", err)
	}
	return nil
}
