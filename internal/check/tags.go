package check

import (
	"context"
	"io/fs"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// titlePreviewLength is the number of title characters quoted in a
// length warning.
const titlePreviewLength = 50

// TagChecker validates the SEO tags of a page head.
type TagChecker struct {
	maxTitleLength    int
	maxMetaDescLength int
}

// NewTagChecker creates a TagChecker with the given length limits.
func NewTagChecker(maxTitleLength, maxMetaDescLength int) *TagChecker {
	return &TagChecker{
		maxTitleLength:    maxTitleLength,
		maxMetaDescLength: maxMetaDescLength,
	}
}

// Name returns the checker name.
func (c *TagChecker) Name() string {
	return "tags"
}

// Do checks the title, meta description, canonical link, h1 and Open Graph
// tags of page.
func (c *TagChecker) Do(_ context.Context, _ fs.FS, page *site.Page, report *model.Report) error {
	c.checkTitle(page, report)
	c.checkMetaDescription(page, report)
	c.checkCanonical(page, report)
	c.checkHeading(page, report)
	c.checkOpenGraph(page, report)
	return nil
}

func (c *TagChecker) checkTitle(page *site.Page, report *model.Report) {
	title := page.Document.Find("title").First()
	text := title.Text()
	switch {
	case title.Length() == 0 || strings.TrimSpace(text) == "":
		report.Error(page.Path, model.CheckTitle, "Missing or empty <title> tag")
	case utf8.RuneCountInString(text) > c.maxTitleLength:
		report.Warnf(page.Path, model.CheckTitle, `Title is %d chars (max %d): "%s..."`,
			utf8.RuneCountInString(text), c.maxTitleLength, truncateRunes(text, titlePreviewLength))
	default:
		report.Pass()
	}
}

func (c *TagChecker) checkMetaDescription(page *site.Page, report *model.Report) {
	content, ok := page.Document.Find(`meta[name="description"]`).First().Attr("content")
	switch {
	case !ok || strings.TrimSpace(content) == "":
		report.Error(page.Path, model.CheckMetaDesc, "Missing or empty meta description")
	case utf8.RuneCountInString(content) > c.maxMetaDescLength:
		report.Warnf(page.Path, model.CheckMetaDesc, "Meta description is %d chars (max %d)",
			utf8.RuneCountInString(content), c.maxMetaDescLength)
	default:
		report.Pass()
	}
}

func (c *TagChecker) checkCanonical(page *site.Page, report *model.Report) {
	href, ok := page.Document.Find(`link[rel="canonical"]`).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		report.Error(page.Path, model.CheckCanonical, "Missing canonical tag")
		return
	}
	if !isAbsoluteHTTPS(href) {
		report.Errorf(page.Path, model.CheckCanonical, "Canonical must be absolute URL, got: %s", href)
		return
	}
	report.Pass()
}

func (c *TagChecker) checkHeading(page *site.Page, report *model.Report) {
	switch n := page.Document.Find("h1").Length(); {
	case n == 0:
		report.Error(page.Path, model.CheckH1, "Missing <h1> tag")
	case n > 1:
		report.Warnf(page.Path, model.CheckH1, "Multiple H1 tags found (%d). Best practice is exactly 1.", n)
	default:
		report.Pass()
	}
}

func (c *TagChecker) checkOpenGraph(page *site.Page, report *model.Report) {
	for _, property := range []string{"og:title", "og:description"} {
		if page.Document.Find(`meta[property="`+property+`"]`).Length() == 0 {
			report.Warnf(page.Path, model.CheckOpenGraph, "Missing %s meta tag", property)
		}
	}
}

// isAbsoluteHTTPS reports whether href is an https URL with a host.
func isAbsoluteHTTPS(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != ""
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
