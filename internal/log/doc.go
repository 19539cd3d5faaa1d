// Package log provides logging for scan runs, built on top of the
// standard slog package.
//
// Subscription bodies and the URLs that point at them can be huge: a
// single fetched body may run to tens of megabytes, and data URIs or
// base64 subscription links routinely exceed several kilobytes. The
// TruncateHandler caps every string attribute before it reaches the
// underlying handler, so a debug line about a fetched body never floods
// the terminal or a captured log file.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("fetched body", "url", url, "body", body)
//	slog.SetDefault(logger)
package log
