// Package log provides the logging abstraction used by the sweep packages.
//
// Library code logs through the Logger interface so callers can plug in
// their own backend. A zerolog adapter and a no-op logger are provided:
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr))
//	quiet := log.NewNoopLogger()
//
// Secrets must never be passed as field values.
package log
