// Package logging provides structured logging for the NoLongerEvil frontend.
//
// It wraps Go's standard log/slog package to provide consistent, structured
// logging across the application.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("listening", "port", 8082)
//	logger.Error("seed failed", "error", err)
//
// Never log secrets: the MQTT password flows through config and must not
// appear in log output.
package logging
