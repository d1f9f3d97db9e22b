// Package logging provides structured logging configuration for configurator.
//
// It wraps log/slog so the engine, the file loader and the CLI log the same
// way. Library components accept a *slog.Logger through an option and fall
// back to Nop() when none is given; only the CLI builds a real logger.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	engine := template.New(template.WithLogger(logger))
//
// Text output is meant for terminals and JSON output for log collectors.
// Tee fans records out to several handlers; Open uses it to mirror CLI
// logs into a file.
package logging
