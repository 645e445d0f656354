// Package logging provides slog-based logging for the skillet CLI.
//
// The default handler produces compact, colorized text when stderr is a
// terminal and plain text otherwise. A JSON handler is available via
// --log-format json, and MultiHandler duplicates records to a log file
// when --log-file is set. Verbosity flags map onto levels with
// LevelFromVerbosity; LevelTrace sits below Debug for payload dumps.
package logging
