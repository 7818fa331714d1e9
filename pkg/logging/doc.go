// Package logging builds the structured loggers used across rentdesk.
//
// It wraps log/slog so that the CLI, the API client and the update controllers
// share one configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//	logger.Debug("request sent", "method", "GET", "url", url)
//
// Components accept a *slog.Logger through an option and fall back to Nop()
// when none is given.
package logging
