// Package logger is a thin options layer over log/slog.
//
// New builds a *slog.Logger whose output format, level, destination and
// static attributes are set through Option values. WithEnvironment applies
// the usual development, staging and production presets. Helpers in attr.go
// keep attribute keys consistent across packages.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "lengthcheck"),
//	    logger.WithOutput(os.Stderr),
//	)
//	log.Info("module loaded", logger.Component("wasmhost"))
package logger
