// Package logging provides structured logging for the texsnip extension.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// correct call-site attribution and nested log groups for tracing external
// tool invocations after the fact.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Call-site file/line reported from the caller of the wrapper,
//     not from the wrapper itself
//   - Nested log groups with indented messages
//   - Bounded cycle buffer for deferred display of recent messages
//   - Log rotation with configurable size limits
//   - Log aggregation, filtering, and export utilities
//
// # Basic Usage
//
// Create a logger writing to a log directory:
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Debug("detected renderer", "path", pdflatex)
//	logger.Info("snippet compiled", "duration_ms", 150)
//
// # Nested Groups
//
// A group logs its header, indents everything logged until the group is
// closed, then logs the header again suffixed with the outcome:
//
//	end := logger.BeginInfo("compiling snippet")
//	logger.Info("running pdflatex")
//	end(err) // "compiling snippet done" or "compiling snippet failed"
//
// # Deferred Display
//
// The host application has no console, so messages destined for the user are
// collected in a bounded [CycleBuffer] and shown at the end of a run:
//
//	logger, buf := logging.NewBufferedLogger(100, "INFO")
//	// ... work ...
//	buf.Flush(os.Stderr)
//
// # Log Rotation
//
// For long-lived installs, use rotation to prevent unbounded growth:
//
//	cfg := logging.RotationConfig{MaxSizeMB: 10, MaxBackups: 3}
//	logger, err := logging.NewLoggerWithRotation("/path/to/logs", "INFO", cfg)
//
// Rotated files are named texsnip.log.1, texsnip.log.2, etc., where .1 is
// the most recent backup.
//
// # Testing
//
// Use [NopLogger] to discard all log output in tests.
package logging
