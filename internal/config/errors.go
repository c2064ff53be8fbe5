package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with errors.Is.
var (
	// ErrEmptyRoot is returned when no site root directory is configured.
	ErrEmptyRoot = errors.New("no site directory specified: use --dir")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute
	// http(s) URL. Sitemap entries and canonical links are compared against it.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrInvalidThreshold is returned when a length or count threshold is negative.
	ErrInvalidThreshold = errors.New("invalid threshold: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyPageExtension is returned when the page-file extension is empty
	// or does not start with a dot.
	ErrEmptyPageExtension = errors.New("invalid page extension: must start with '.'")
)
