package compiler

import "errors"

// ErrCompilerUnavailable is wrapped when the compiler process cannot be started.
var ErrCompilerUnavailable = errors.New("compiler unavailable")
