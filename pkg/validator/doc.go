// Package validator decides whether a text is short enough to be accepted.
//
// The whole decision is ValidateLength: a text passes when its UTF-8 encoding
// is shorter than Threshold (10) bytes. This is the same count a host sees when
// it copies the raw string into a WebAssembly module's linear memory.
// Multibyte characters count more than once: "ééééé" is ten bytes and fails.
//
// ValidateLength is pure and allocation-free, and may be called from any
// number of goroutines.
//
// # Rules
//
// For callers that report failures as errors, ShortText wraps the predicate in
// a Rule. Rules are evaluated with Apply, which collects failures into a
// ValidationErrors value:
//
//	err := validator.Apply(
//	    validator.ShortText("name", name),
//	    validator.ShortText("code", code),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // ...
//	    }
//	}
//
// ValidationErrors matches ErrValidationFailed with errors.Is, and also
// ErrInvalidLength when any failure came from ShortText.
package validator
