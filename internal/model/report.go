package model

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Report accumulates the results of one validation run.
//
// Checks receive the report explicitly and append to it; nothing else holds
// a reference while a run is in progress. Findings keep discovery order and
// are never removed, re-ordered or re-classified.
type Report struct {
	// FilesChecked is the number of page files visited by the run,
	// including pages that failed to parse.
	FilesChecked int `json:"files_checked"`

	// Passes is the number of individual checks that passed.
	Passes int `json:"passes"`

	// Errors holds error-severity findings in discovery order.
	Errors []Finding `json:"errors"`

	// Warnings holds warning-severity findings in discovery order.
	Warnings []Finding `json:"warnings"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		Errors:   make([]Finding, 0),
		Warnings: make([]Finding, 0),
	}
}

// Pass records a passed check.
func (r *Report) Pass() {
	r.Passes++
}

// Error records an error-severity finding.
func (r *Report) Error(file, check, message string) {
	r.Errors = append(r.Errors, Finding{
		Severity: SeverityError,
		File:     file,
		Check:    check,
		Message:  message,
	})
}

// Errorf records an error-severity finding with a formatted message.
func (r *Report) Errorf(file, check, format string, args ...any) {
	r.Error(file, check, fmt.Sprintf(format, args...))
}

// Warn records a warning-severity finding.
func (r *Report) Warn(file, check, message string) {
	r.Warnings = append(r.Warnings, Finding{
		Severity: SeverityWarning,
		File:     file,
		Check:    check,
		Message:  message,
	})
}

// Warnf records a warning-severity finding with a formatted message.
func (r *Report) Warnf(file, check, format string, args ...any) {
	r.Warn(file, check, fmt.Sprintf(format, args...))
}

// ErrorCount returns the number of error findings.
func (r *Report) ErrorCount() int {
	return len(r.Errors)
}

// WarningCount returns the number of warning findings.
func (r *Report) WarningCount() int {
	return len(r.Warnings)
}

// Succeeded reports whether the run passed: zero errors, any number of warnings.
func (r *Report) Succeeded() bool {
	return len(r.Errors) == 0
}

// Findings returns all findings, errors first, each group in discovery order.
func (r *Report) Findings() []Finding {
	all := make([]Finding, 0, len(r.Errors)+len(r.Warnings))
	all = append(all, r.Errors...)
	return append(all, r.Warnings...)
}

// FindingsFor returns the findings whose subject is file.
func (r *Report) FindingsFor(file string) []Finding {
	var result []Finding
	for _, f := range r.Findings() {
		if f.File == file {
			result = append(result, f)
		}
	}
	return result
}

// Count returns how many findings of the given severity and check were
// recorded for file. An empty check matches every check.
func (r *Report) Count(file string, severity Severity, check string) int {
	n := 0
	for _, f := range r.FindingsFor(file) {
		if f.Severity == severity && (check == "" || f.Check == check) {
			n++
		}
	}
	return n
}

// Digest returns a SHA3-256 hex digest of the report's JSON encoding.
// Two runs over an unchanged tree produce the same digest.
func (r *Report) Digest() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
