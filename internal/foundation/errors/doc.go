// Package errors provides the classified error primitives used across cosmofactory.
//
// A ClassifiedError carries a category (config, validation, build, ...), a severity
// and free-form context. The CLI adapter turns them into exit codes and user-facing
// messages.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryFileSystem, "manifest source missing").
//		Fatal().
//		WithContext("source", src).
//		WithCause(os.ErrNotExist).
//		Build()
package errors
