package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/sitecheck/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs reports in Markdown format.
// The output is meant for CI job summaries and pull request comments.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFindings(md, "Errors", report.Errors)
	w.writeFindings(md, "Warnings", report.Warnings)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and counters.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("SEO Validation Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Files Checked", strconv.Itoa(report.FilesChecked)},
			{"Passed", strconv.Itoa(report.Passes)},
			{"Errors", strconv.Itoa(report.ErrorCount())},
			{"Warnings", strconv.Itoa(report.WarningCount())},
			{"Result", resultText(report)},
		},
	})
	md.PlainText("")
}

// resultText returns the verdict line.
func resultText(report *model.Report) string {
	if report.Succeeded() {
		return "✅ All checks passed"
	}
	return "❌ " + strconv.Itoa(report.ErrorCount()) + " error(s) found"
}

// writeSummary writes the per-check distribution and a verdict alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	findings := report.Findings()
	if len(findings) > 0 {
		md.H2("Findings by Check")
		md.PlainText("")
		w.writePieChart(md, findings)
	}

	switch {
	case report.ErrorCount() > 0:
		md.Cautionf("%d error(s) must be fixed before publishing.", report.ErrorCount())
	case report.WarningCount() > 0:
		md.Warningf("No errors. %d warning(s) may affect search ranking.", report.WarningCount())
	default:
		md.Tip("All pages passed every check.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of findings per check.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, findings []model.Finding) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Findings by Check"),
		piechart.WithShowData(true),
	)
	for _, c := range countByCheck(findings) {
		chart.LabelAndIntValue(checkTitle(c.check), uint64(c.count)) //nolint:gosec // count is never negative
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFindings writes one severity section as a table.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, title string, findings []model.Finding) {
	md.H2(title)
	md.PlainText("")

	if len(findings) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		rows[i] = []string{
			"`" + f.Check + "`",
			"`" + f.File + "`",
			escapeCell(f.Message),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Check", "File", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by sitecheck*")
}

// checkTitle turns a check name such as THIN_CONTENT into "Thin Content".
func checkTitle(check string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(check, "_", " "))
}

// escapeCell makes s safe to place in a table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
