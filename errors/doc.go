// Package errors provides structured error types for structlayout.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the layout it belongs to and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseProbe, errors.KindMismatch).
//		Path("PackedRecord", "field_c").
//		Layout("packed").
//		Detail("stored 0x%x, read 0x%x", want, got).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseProbe, path, 65536, 4, 65536)
//	err := errors.Mismatch(errors.PhaseProbe, path, 0xa1a2, 0)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
