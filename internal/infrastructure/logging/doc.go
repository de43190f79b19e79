// Package logging provides structured logging built on uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Construction never fails the caller: the convenience constructors fall
// back to a no-op logger instead of returning an error at startup.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("engine started", zap.String("endpoint", url))
package logging
