// Package logging provides structured logging configuration for especies.
//
// This package wraps log/slog to provide consistent logging across all
// especies components. It supports configurable log levels, output formats
// and an optional log file.
//
// # Usage
//
//	logger, closeFn, err := logging.Open(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	    File:   "especies.log",
//	})
//	defer closeFn()
//
//	logger.Info("species list rendered", "count", 12)
//	logger.Error("failed to load species list", "error", err)
//
// # Integration
//
// Components accept a *slog.Logger through an option. If no logger is
// provided they use logging.Nop().
package logging
