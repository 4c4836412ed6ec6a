package wasmhost

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/lengthcheck/pkg/logger"
)

// Option configures a Module.
type Option func(*options)

type options struct {
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func defaultOptions() *options {
	return &options{log: logger.Discard()}
}

// WithLogger sets the logger used for lifecycle and failure records.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithStdout routes the guest's standard output to w.
func WithStdout(w io.Writer) Option {
	return func(o *options) { o.stdout = w }
}

// WithStderr routes the guest's standard error to w.
func WithStderr(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}
