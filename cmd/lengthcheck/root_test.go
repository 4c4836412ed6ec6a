package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lengthcheck/internal/wasmtest"
	"github.com/dmitrymomot/lengthcheck/pkg/validator"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckNative(t *testing.T) {
	t.Run("all arguments pass", func(t *testing.T) {
		out, _, err := execute(t, "check", "--native", "", "123456789")
		require.NoError(t, err)
		assert.Equal(t, "\"\"\ttrue\n\"123456789\"\ttrue\n", out)
	})

	t.Run("failing arguments are reported", func(t *testing.T) {
		out, _, err := execute(t, "check", "--native",
			"1234567890", "ok", "this is definitely too long")
		require.Error(t, err)
		assert.Equal(t,
			"\"1234567890\"\tfalse\n\"ok\"\ttrue\n\"this is definitely too long\"\tfalse\n",
			out)

		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"arg1", "arg3"}, verrs.Fields())
		assert.ErrorIs(t, err, validator.ErrInvalidLength)
	})

	t.Run("multibyte text is measured in bytes", func(t *testing.T) {
		out, _, err := execute(t, "check", "--native", "ééééé")
		assert.Error(t, err)
		assert.Equal(t, "\"ééééé\"\tfalse\n", out)
	})
}

func writeModule(t *testing.T, wasm []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "validate_length.wasm")
	require.NoError(t, os.WriteFile(path, wasm, 0o600))
	return path
}

func TestCheckModule(t *testing.T) {
	t.Run("all arguments pass through the module", func(t *testing.T) {
		path := writeModule(t, wasmtest.Guest())
		out, _, err := execute(t, "check", "--module", path, "", "123456789")
		require.NoError(t, err)
		assert.Equal(t, "\"\"\ttrue\n\"123456789\"\ttrue\n", out)
	})

	t.Run("module result decides the exit", func(t *testing.T) {
		path := writeModule(t, wasmtest.Guest())
		out, _, err := execute(t, "check", "--module", path, "", "1234567890")
		require.Error(t, err)
		assert.Equal(t, "\"\"\ttrue\n\"1234567890\"\tfalse\n", out)

		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"arg2"}, verrs.Fields())
		assert.ErrorIs(t, err, validator.ErrInvalidLength)
	})

	t.Run("boundary failure stops the run", func(t *testing.T) {
		path := writeModule(t, wasmtest.Module{AllocPtr: 1024, Trap: true}.Bytes())
		out, _, err := execute(t, "check", "--module", path, "abc")
		require.Error(t, err)
		assert.False(t, validator.IsValidationError(err))
		assert.Contains(t, err.Error(), "check argument 1")
		assert.Empty(t, out)
	})

	t.Run("missing module file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent.wasm")
		_, _, err := execute(t, "check", "--module", path, "abc")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid module file", func(t *testing.T) {
		path := writeModule(t, []byte("not wasm"))
		_, stderr, err := execute(t, "check", "--module", path, "abc")
		assert.Error(t, err)
		assert.Contains(t, stderr, "wasm module rejected")
	})
}

func TestCheckRequiresArguments(t *testing.T) {
	_, _, err := execute(t, "check", "--native")
	assert.Error(t, err)
}
