// Package logtail reads the tail of the client log file for the logs
// command.
//
// Read uses a ring buffer so memory stays bounded by the number of lines
// requested, regardless of file size. A missing log file is not an error; it
// yields no lines. FilterLevel narrows slog text records by level.
package logtail
