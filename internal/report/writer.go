package report

import (
	"io"

	"github.com/nao1215/sitecheck/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// It is used to print the text report while saving another format to a file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// checkCount is the number of findings recorded by one check.
type checkCount struct {
	check string
	count int
}

// countByCheck returns the number of findings per check name, in order of
// first appearance.
func countByCheck(findings []model.Finding) []checkCount {
	var counts []checkCount
	index := make(map[string]int)
	for _, f := range findings {
		i, ok := index[f.Check]
		if !ok {
			i = len(counts)
			index[f.Check] = i
			counts = append(counts, checkCount{check: f.Check})
		}
		counts[i].count++
	}
	return counts
}
