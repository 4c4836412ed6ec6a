package validator_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lengthcheck/pkg/validator"
)

// Length is counted in UTF-8 bytes throughout these tests.
func TestValidateLength(t *testing.T) {
	t.Parallel()

	t.Run("boundaries", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name  string
			input string
			want  bool
		}{
			{"empty text", "", true},
			{"nine bytes", "123456789", true},
			{"ten bytes", "1234567890", false},
			{"eleven bytes", "12345678901", false},
			{"long sentence", "this is definitely too long", false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				assert.Equal(t, tt.want, validator.ValidateLength(tt.input))
			})
		}
	})

	t.Run("matches byte length for every prefix", func(t *testing.T) {
		t.Parallel()
		s := strings.Repeat("x", 3*validator.Threshold)
		for i := 0; i <= len(s); i++ {
			assert.Equal(t, i < validator.Threshold, validator.ValidateLength(s[:i]), "length %d", i)
		}
	})

	t.Run("counts multibyte characters by bytes", func(t *testing.T) {
		t.Parallel()
		// 5 runes, 10 bytes
		assert.False(t, validator.ValidateLength("ééééé"))
		// 3 runes, 9 bytes
		assert.True(t, validator.ValidateLength("日本語"))
		// 4 runes, 12 bytes
		assert.False(t, validator.ValidateLength("日本語だ"))
		// a single emoji is 4 bytes
		assert.True(t, validator.ValidateLength("👍👍"))
		assert.False(t, validator.ValidateLength("👍👍👍"))
	})

	t.Run("invalid UTF-8 is still measured in bytes", func(t *testing.T) {
		t.Parallel()
		assert.True(t, validator.ValidateLength("\xff\xfe\xfd"))
		assert.False(t, validator.ValidateLength(strings.Repeat("\xff", 10)))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"", "123456789", "1234567890"} {
			first := validator.ValidateLength(in)
			for i := 0; i < 100; i++ {
				assert.Equal(t, first, validator.ValidateLength(in))
			}
		}
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()
		inputs := []string{"", "short", "123456789", "1234567890", "this is definitely too long"}
		var wg sync.WaitGroup
		for g := 0; g < 16; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _, in := range inputs {
					assert.Equal(t, len(in) < 10, validator.ValidateLength(in))
				}
			}()
		}
		wg.Wait()
	})
}

func TestShortText(t *testing.T) {
	t.Parallel()

	t.Run("passes for short text", func(t *testing.T) {
		t.Parallel()
		rule := validator.ShortText("code", "abc")
		assert.True(t, rule.Check())
		assert.Equal(t, "code", rule.Error.Field)
		assert.Equal(t, "must be shorter than 10 bytes", rule.Error.Message)
		assert.Equal(t, "validation.short_text", rule.Error.TranslationKey)
		expectedValues := map[string]any{
			"field": "code",
			"max":   10,
		}
		assert.Equal(t, expectedValues, rule.Error.TranslationValues)
	})

	t.Run("passes for empty text", func(t *testing.T) {
		t.Parallel()
		rule := validator.ShortText("code", "")
		assert.True(t, rule.Check())
	})

	t.Run("fails at the threshold", func(t *testing.T) {
		t.Parallel()
		rule := validator.ShortText("code", "1234567890")
		assert.False(t, rule.Check())
	})
}

func TestShortTextResult(t *testing.T) {
	t.Parallel()

	t.Run("reports the given outcome", func(t *testing.T) {
		t.Parallel()
		assert.True(t, validator.ShortTextResult("arg1", true).Check())
		assert.False(t, validator.ShortTextResult("arg1", false).Check())
	})

	t.Run("carries the same error as ShortText", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			validator.ShortText("arg1", "1234567890").Error,
			validator.ShortTextResult("arg1", false).Error)
	})

	t.Run("does not re-measure the text", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.ShortTextResult("arg1", false))
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrInvalidLength)
		assert.Equal(t, []string{"arg1"}, validator.ExtractValidationErrors(err).Fields())
	})
}
