package build

import (
	"context"
	"errors"
	"fmt"
)

// StageName identifies a pipeline stage in logs, reports and metrics.
type StageName string

const (
	StageLoadCompilerOptions StageName = "load_compiler_options"
	StagePrepareOutput       StageName = "prepare_output"
	StageCollectSources      StageName = "collect_sources"
	StageCompile             StageName = "compile"
	StageCopyFiles           StageName = "copy_files"
	StageRewriteAliases      StageName = "rewrite_aliases"
	StageBuildStyles         StageName = "build_styles"
)

// StageFunc is a discrete unit of work in the build.
type StageFunc func(ctx context.Context, bs *BuildState) error

// StageDef pairs a stage name with its implementation.
type StageDef struct {
	Name StageName
	Fn   StageFunc
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// asStageError classifies err for stage. Unknown errors are fatal; context errors
// are cancellations.
func asStageError(stage StageName, err error) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newCanceledStageError(stage, err)
	}
	return newFatalStageError(stage, err)
}
