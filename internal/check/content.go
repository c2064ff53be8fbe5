package check

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

var (
	// scriptRegion and styleRegion match whole script and style elements in
	// rendered markup, including their content.
	scriptRegion = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	styleRegion  = regexp.MustCompile(`(?is)<style\b.*?</style\s*>`)
)

// ContentChecker validates the visible content of a page.
type ContentChecker struct {
	minWordCount int
	placeholders []string
}

// NewContentChecker creates a ContentChecker.
// placeholders are literal substrings that must not appear outside script
// and style regions.
func NewContentChecker(minWordCount int, placeholders []string) *ContentChecker {
	return &ContentChecker{
		minWordCount: minWordCount,
		placeholders: placeholders,
	}
}

// Name returns the checker name.
func (c *ContentChecker) Name() string {
	return "content"
}

// Do checks the word count and placeholder literals of page.
// A page without a body gets a single CONTENT error and nothing else.
func (c *ContentChecker) Do(_ context.Context, _ fs.FS, page *site.Page, report *model.Report) error {
	if page.Body().Length() == 0 {
		report.Error(page.Path, model.CheckContent, "No <body> tag found")
		return nil
	}

	words := len(strings.Fields(page.VisibleText()))
	if words < c.minWordCount {
		report.Warnf(page.Path, model.CheckThinContent,
			"Only %d words (minimum: %d). May be flagged as thin content.", words, c.minWordCount)
	} else {
		report.Pass()
	}

	markup, err := page.Markup()
	if err != nil {
		return fmt.Errorf("content check %s: %w", page.Path, err)
	}
	for _, p := range FindPlaceholders(markup, c.placeholders) {
		report.Errorf(page.Path, model.CheckPlaceholder, `Found unresolved template placeholder: "%s"`, p)
	}
	return nil
}

// FindPlaceholders returns the placeholders that occur in markup once
// script and style regions are removed, in the order they were given.
func FindPlaceholders(markup string, placeholders []string) []string {
	visible := styleRegion.ReplaceAllString(scriptRegion.ReplaceAllString(markup, ""), "")

	var found []string
	for _, p := range placeholders {
		if p != "" && strings.Contains(visible, p) {
			found = append(found, p)
		}
	}
	return found
}
