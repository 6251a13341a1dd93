// Package logging builds slog loggers for ticketflow.
//
// Two formats are supported: a human console format (timestamp, level label,
// message, key=value attributes) and JSON with stable key names. Loggers
// built from configuration tee output to a log file under the configured log
// directory in addition to stderr.
package logging
