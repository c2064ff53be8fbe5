// Package model defines the data structures shared by the sitecheck pipeline.
//
// This package contains the following main types:
//   - Severity: The pass / warning / error level of a finding
//   - Finding: A single record produced by a check
//   - Report: The append-only accumulator threaded through every check
//
// Reports carry no timestamps or other run-specific state, so validating an
// unchanged tree twice yields reports that compare equal and share a Digest.
package model
