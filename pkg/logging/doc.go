// Package logging configures log/slog for the version checker binaries.
//
// vercheckd logs JSON to stderr with "module" and "version" attributes on
// every record:
//
//	logging.SetDefaultStructuredLogger("vercheckd", version)
//	slog.Info("starting server", "port", cfg.Port)
//
// vercheck logs human-readable text to stderr so results on stdout stay
// machine-readable:
//
//	logging.SetDefaultCLILogger(cmd.String("log-level"))
//
// The level comes from LOG_LEVEL (debug, info, warn or warning, error; case
// insensitive) and defaults to info. Debug records include the source
// location.
//
// NewLogLogger adapts the slog default to a *log.Logger for APIs such as
// http.Server.ErrorLog that still take one.
package logging
