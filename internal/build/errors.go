package build

import "errors"

// Sentinel errors classifying pipeline failures. They are wrapped with context at
// the call site.
var (
	ErrCompilationFailed = errors.New("compilation failed")
	ErrBuildLocked       = errors.New("build already running")
)

// errStageSkipped is returned by a stage that had nothing to do.
var errStageSkipped = errors.New("stage skipped")
