package collect

import "errors"

// ErrInvalidPattern is returned when an exclude glob cannot be parsed.
var ErrInvalidPattern = errors.New("invalid exclude pattern")
