package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/cosmofactory/internal/compiler"
	"git.home.luguber.info/inful/cosmofactory/internal/config"
	"git.home.luguber.info/inful/cosmofactory/internal/console"
	"git.home.luguber.info/inful/cosmofactory/internal/filelock"
	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
	"git.home.luguber.info/inful/cosmofactory/internal/git"
	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/metrics"
	"git.home.luguber.info/inful/cosmofactory/internal/style"
)

// LockFileName is the lock file created in the project root while a build runs.
const LockFileName = ".cosmofactory.lock"

// Request contains the inputs of one build.
type Request struct {
	// ProjectDir is the project root holding the configuration files.
	ProjectDir string
	// Config is the loaded build configuration.
	Config *config.Config
	// Strict makes compiler diagnostics fail the build. The configuration's strict
	// field enables it as well.
	Strict bool
}

// Service executes builds with injectable collaborators.
type Service struct {
	compiler     compiler.Compiler
	styleFactory func(projectDir string) style.Builder
	recorder     metrics.Recorder
	console      *console.Printer
	stages       []StageDef
	locking      bool
}

// NewService creates a service that runs the real compiler and CSS toolchain.
func NewService() *Service {
	return &Service{
		compiler: compiler.NewTSC(),
		styleFactory: func(projectDir string) style.Builder {
			return style.NewTailwind(projectDir)
		},
		recorder: metrics.NoopRecorder{},
		console:  console.Stdout(),
		stages:   DefaultStages(),
		locking:  true,
	}
}

// WithCompiler replaces the compiler (for testing).
func (s *Service) WithCompiler(c compiler.Compiler) *Service {
	s.compiler = c
	return s
}

// WithStyleBuilder replaces the style builder (for testing).
func (s *Service) WithStyleBuilder(b style.Builder) *Service {
	s.styleFactory = func(string) style.Builder { return b }
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithConsole sets where user-facing output is printed.
func (s *Service) WithConsole(p *console.Printer) *Service {
	s.console = p
	return s
}

// WithStages replaces the pipeline stages.
func (s *Service) WithStages(stages []StageDef) *Service {
	s.stages = stages
	return s
}

// WithoutLock disables the project build lock.
func (s *Service) WithoutLock() *Service {
	s.locking = false
	return s
}

// Run executes the pipeline. The returned report is never nil; the error is the
// fatal stage error that stopped the build, if any.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	projectDir, err := filepath.Abs(req.ProjectDir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "invalid project directory").Fatal().Build()
	}
	strict := req.Strict || (req.Config != nil && req.Config.Strict)
	report := newReport(projectDir, strict)

	if req.Config == nil {
		report.Errors = append(report.Errors, errors.New("config required"))
		s.finish(report)
		return report, ferrors.ConfigError("config required").Fatal().Build()
	}

	if s.locking {
		lock := filelock.New(filepath.Join(projectDir, LockFileName))
		if err := lock.TryLock(); err != nil {
			if errors.Is(err, filelock.ErrLocked) {
				err = fmt.Errorf("%w: %w", ErrBuildLocked, err)
			}
			report.Errors = append(report.Errors, err)
			s.finish(report)
			return report, ferrors.WrapError(err, ferrors.CategoryBuild, "cannot acquire the project build lock").
				Fatal().
				WithContext("path", lock.Path()).
				Build()
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				slog.Warn("Failed to release build lock", logfields.Error(err))
			}
		}()
	}

	if rev, err := git.ReadRevision(projectDir); err != nil {
		slog.Debug("Project revision unavailable", logfields.Error(err))
	} else {
		report.Revision = rev
	}

	bs := &BuildState{
		Config:     req.Config,
		ProjectDir: projectDir,
		Strict:     strict,
		Compiler:   s.compiler,
		Styles:     s.styleFactory(projectDir),
		Console:    s.console,
		Recorder:   s.recorder,
		Report:     report,
	}

	slog.Info("Build started", logfields.BuildID(report.ID), logfields.Path(projectDir), slog.Bool("strict", strict))
	runErr := RunStages(ctx, bs, s.stages)
	s.finish(report)
	slog.Info("Build finished",
		logfields.BuildID(report.ID),
		logfields.Outcome(string(report.Outcome)),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))
	return report, runErr
}

func (s *Service) finish(report *Report) {
	report.finish()
	s.recorder.ObserveBuildDuration(report.Duration())
	s.recorder.IncBuildOutcome(outcomeLabel(report.Outcome))
}

func outcomeLabel(o Outcome) metrics.BuildOutcomeLabel {
	switch o {
	case OutcomeSuccess:
		return metrics.BuildOutcomeSuccess
	case OutcomeWarning:
		return metrics.BuildOutcomeWarning
	case OutcomeCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}
