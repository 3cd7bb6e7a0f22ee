// Package logging configures structured logging for vzview binaries.
//
// # Overview
//
// The package sets up log/slog with a JSON handler on stderr and attaches
// the module name and version to every record. The level comes from the
// LOG_LEVEL environment variable or an explicit flag.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: conversion details, with source location
//   - INFO: requests and lifecycle events (default)
//   - WARN/WARNING: recoverable problems such as a failed close
//   - ERROR: failures that abort a request or the process
//
// # Usage
//
// Setting the default logger:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("vzviewd", version)
//	    slog.Info("server starting", "port", cfg.Port)
//	}
//
// Setting an explicit level from a CLI flag:
//
//	logging.SetDefaultStructuredLoggerWithLevel("vzview", version, cmd.String("log-level"))
//
// Routing standard library log output, e.g. http.Server.ErrorLog:
//
//	srv.ErrorLog = logging.NewLogLogger(slog.LevelWarn, false)
//
// # Request-scoped loggers
//
// NewContext and FromContext carry a logger through a request so that
// converters log into the request's diagnostics recorder when debugging:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("converted series", "tuples", n)
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "request completed",
//	    "module": "vzviewd",
//	    "version": "v1.0.0",
//	    "path": "/v1/entity/abc"
//	}
package logging
