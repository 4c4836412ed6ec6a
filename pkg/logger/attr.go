package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Export records a WebAssembly export name under the key "export".
func Export(name string) slog.Attr {
	return slog.String("export", name)
}

// Bytes records a payload size under the key "bytes".
func Bytes(n int) slog.Attr {
	return slog.Int("bytes", n)
}
