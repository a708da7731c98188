package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no URL, --list or --html input is given.
	ErrNoTarget = errors.New("no target specified: provide a URL or use --list / --html")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidLogFormat is returned for a log format other than text,
	// json or pretty.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text, json or pretty")

	// ErrEmptyAddr is returned when the server listen address is empty.
	ErrEmptyAddr = errors.New("invalid listen address: must not be empty")
)
