package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nao1215/sitecheck/internal/model"
)

// ruleWidth is the width of the section rules.
const ruleWidth = 43

// SimpleWriter outputs human-readable text reports.
//
// The layout is a summary of counts followed by an ERRORS and a WARNINGS
// section, each finding on two lines, and a RESULT line. Sections without
// findings are left out.
type SimpleWriter struct {
	baseWriter

	// color enables ANSI styling when the output is a terminal.
	color bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor enables colored output. Colors are only emitted when the
// output is a terminal that supports them.
func WithColor(color bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.color = color
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// styles holds the text decorations used by the writer.
type styles struct {
	pass func(string) string
	fail func(string) string
	warn func(string) string
	bold func(string) string
}

// newStyles returns lipgloss styles bound to output, or no-op decorations
// when color is disabled.
func newStyles(output io.Writer, color bool) styles {
	if !color {
		plain := func(s string) string { return s }
		return styles{pass: plain, fail: plain, warn: plain, bold: plain}
	}

	r := lipgloss.NewRenderer(output)
	return styles{
		pass: render(r.NewStyle().Foreground(lipgloss.Color("2"))),
		fail: render(r.NewStyle().Foreground(lipgloss.Color("1"))),
		warn: render(r.NewStyle().Foreground(lipgloss.Color("3"))),
		bold: render(r.NewStyle().Bold(true)),
	}
}

func render(style lipgloss.Style) func(string) string {
	return func(s string) string {
		return style.Render(s)
	}
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	st := newStyles(w.output, w.color)
	var sb strings.Builder

	w.writeHeader(&sb, st)
	w.writeSummary(&sb, st, report)
	w.writeFindings(&sb, st.fail, "✗", "ERRORS", report.Errors)
	w.writeFindings(&sb, st.warn, "⚠", "WARNINGS", report.Warnings)
	w.writeResult(&sb, st, report)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, st styles) {
	sb.WriteString("\n")
	sb.WriteString(st.bold(strings.Repeat("=", ruleWidth)))
	sb.WriteString("\n")
	sb.WriteString(st.bold("  SEO Validation Report"))
	sb.WriteString("\n")
	sb.WriteString(st.bold(strings.Repeat("=", ruleWidth)))
	sb.WriteString("\n\n")
}

// writeSummary writes the run counters.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, st styles, report *model.Report) {
	fmt.Fprintf(sb, "  Files checked:  %d\n", report.FilesChecked)
	fmt.Fprintf(sb, "  %s       %d\n", st.pass("✓ Passed:"), report.Passes)
	fmt.Fprintf(sb, "  %s       %d\n", st.fail("✗ Errors:"), report.ErrorCount())
	fmt.Fprintf(sb, "  %s     %d\n", st.warn("⚠ Warnings:"), report.WarningCount())
	sb.WriteString("\n")
}

// writeFindings writes one severity section. Nothing is written when
// findings is empty.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, paint func(string) string, marker, title string, findings []model.Finding) {
	if len(findings) == 0 {
		return
	}

	sb.WriteString(paint(sectionRule(title)))
	sb.WriteString("\n")
	for _, f := range findings {
		fmt.Fprintf(sb, "  %s [%s] %s\n", paint(marker), f.Check, f.File)
		fmt.Fprintf(sb, "    %s\n", f.Message)
	}
	sb.WriteString("\n")
}

// writeResult writes the final verdict.
func (w *SimpleWriter) writeResult(sb *strings.Builder, st styles, report *model.Report) {
	sb.WriteString(st.bold(sectionRule("RESULT")))
	sb.WriteString("\n")
	if report.Succeeded() {
		sb.WriteString("  " + st.pass("✓ ALL CHECKS PASSED"))
	} else {
		sb.WriteString("  " + st.fail(fmt.Sprintf("✗ %d ERROR(S) FOUND", report.ErrorCount())))
	}
	sb.WriteString("\n\n")
}

// sectionRule returns a section heading padded with dashes.
func sectionRule(title string) string {
	head := "-- " + title + " "
	if pad := ruleWidth - len(head); pad > 0 {
		return head + strings.Repeat("-", pad)
	}
	return head
}
