package validator

import "fmt"

// Threshold is the exclusive upper bound, in bytes, accepted by ValidateLength.
const Threshold = 10

const shortTextKey = "validation.short_text"

// ValidateLength reports whether text is shorter than Threshold.
//
// Length is measured in bytes of the UTF-8 encoding, not in runes or
// grapheme clusters, so "héllo" counts as 6.
func ValidateLength(text string) bool {
	return len(text) < Threshold
}

// ShortText returns a rule that passes when value satisfies ValidateLength.
func ShortText(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return ValidateLength(value)
		},
		Error: shortTextError(field),
	}
}

// ShortTextResult returns a ShortText-equivalent rule whose outcome was
// already decided elsewhere, such as by a WebAssembly guest. The rule reports
// ok as is and never re-measures the text.
func ShortTextResult(field string, ok bool) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: shortTextError(field),
	}
}

func shortTextError(field string) ValidationError {
	return ValidationError{
		Field:          field,
		Message:        fmt.Sprintf("must be shorter than %d bytes", Threshold),
		TranslationKey: shortTextKey,
		TranslationValues: map[string]any{
			"field": field,
			"max":   Threshold,
		},
	}
}
