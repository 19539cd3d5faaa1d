package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name the specific field that
// is invalid.
//
// Design decision: package-level sentinel errors rather than fresh error
// instances in Validate(). Callers can use errors.Is() for programmatic
// handling while the messages stay human-readable. Plain errors.New()
// suffices because none of the messages need dynamic values.
var (
	// ErrNoInput is returned when no input file or directory is specified.
	ErrNoInput = errors.New("no input specified: provide a file or directory path")

	// ErrNoOutput is returned when a report output path is empty.
	ErrNoOutput = errors.New("invalid output path: report paths must be non-empty")

	// ErrInvalidIOWorkers is returned when the I/O worker cap is not positive.
	// Zero workers would mean no network stage could make progress.
	ErrInvalidIOWorkers = errors.New("invalid max I/O workers: must be positive")

	// ErrInvalidParseWorkers is returned when the parse worker cap is not positive.
	ErrInvalidParseWorkers = errors.New("invalid max parse workers: must be positive")
)
