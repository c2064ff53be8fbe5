package model

import (
	"fmt"
	"strings"
)

// Severity represents the level of a check result.
//
// Only two severities reach the report as findings. Warnings are quality
// signals and never fail a run; errors are defects and always do.
type Severity int

const (
	// SeverityPass marks a check that found nothing to report.
	// Passes are only counted, never stored as findings.
	SeverityPass Severity = iota

	// SeverityWarning marks a quality signal such as thin content, a long
	// title or a page missing from the sitemap.
	SeverityWarning

	// SeverityError marks a generation defect such as a missing canonical
	// tag, a broken internal link or an unresolved template placeholder.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "PASS"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the severity as its lower-case name.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityPass, SeverityWarning, SeverityError:
		return []byte(strings.ToLower(s.String())), nil
	default:
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
}

// UnmarshalText decodes a severity name written by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "pass":
		*s = SeverityPass
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", string(text))
	}
	return nil
}
