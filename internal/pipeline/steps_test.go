package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/model"
)

// pageMarkup builds a page with every required tag, the given canonical
// link (omitted when empty) and the given number of body words.
func pageMarkup(title, canonical string, words int) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	sb.WriteString(`<meta name="description" content="Travel planning notes for the trip.">` + "\n")
	if canonical != "" {
		fmt.Fprintf(&sb, "<link rel=\"canonical\" href=\"%s\">\n", canonical)
	}
	fmt.Fprintf(&sb, "<meta property=\"og:title\" content=\"%s\">\n", title)
	sb.WriteString(`<meta property="og:description" content="Travel planning notes.">` + "\n")
	sb.WriteString(`<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","author":null}</script>` + "\n")
	sb.WriteString("<style>body { margin: 0 }</style>\n</head><body>\n")
	fmt.Fprintf(&sb, "<h1>%s</h1>\n<nav>", title)
	sb.WriteString(`<a href="/">Home</a> <a href="/about">About</a> <a href="/guides/tokyo.html">Tokyo</a> <a href="/index.html">Index</a>`)
	sb.WriteString("</nav>\n<p>")
	sb.WriteString(strings.TrimSpace(strings.Repeat("travel ", words-1)))
	sb.WriteString("</p>\n</body></html>\n")
	return sb.String()
}

// threePageSite returns a site with two valid pages and one page that
// lacks a canonical link, has thin content and is missing from the sitemap.
func threePageSite() fstest.MapFS {
	return fstest.MapFS{
		"index.html":        {Data: []byte(pageMarkup("Home", "https://example.com/", 200))},
		"about.html":        {Data: []byte(pageMarkup("About", "https://example.com/about", 180))},
		"guides/tokyo.html": {Data: []byte(pageMarkup("Tokyo", "", 40))},
		"404.html":          {Data: []byte("<p>{{ not checked }}</p>")},
		"assets/embed.html": {Data: []byte("<p>undefined</p>")},
		"sitemap.xml": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/</loc></url>
  <url><loc>https://example.com/about</loc></url>
</urlset>
`)},
	}
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.BaseURL = "https://example.com"
	return cfg
}

// TestDefaultPipeline tests the standard step list.
func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	p := DefaultPipeline(testConfig())

	want := []string{"tags", "schema", "content", "links", "sitemap"}
	if got := p.StepNames(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if p.enumeration.Extension != ".html" || !slices.Contains(p.enumeration.IgnoreFiles, "404.html") {
		t.Errorf("unexpected enumeration %+v", p.enumeration)
	}
}

// TestDefaultPipelineEndToEnd tests a full run over a small site.
func TestDefaultPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	report, err := DefaultPipeline(testConfig()).Run(context.Background(), threePageSite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.FilesChecked != 3 {
		t.Errorf("expected 3 files checked, got %d", report.FilesChecked)
	}
	if report.Succeeded() {
		t.Error("expected the run to fail")
	}

	for _, valid := range []string{"index.html", "about.html"} {
		if n := report.Count(valid, model.SeverityError, ""); n != 0 {
			t.Errorf("expected no errors for %s, got %v", valid, report.FindingsFor(valid))
		}
		if n := report.Count(valid, model.SeverityWarning, ""); n != 0 {
			t.Errorf("expected no warnings for %s, got %v", valid, report.FindingsFor(valid))
		}
	}

	const broken = "guides/tokyo.html"
	wantErrors := []model.Finding{{
		Severity: model.SeverityError,
		File:     broken,
		Check:    model.CheckCanonical,
		Message:  "Missing canonical tag",
	}}
	if diff := cmp.Diff(wantErrors, report.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	if n := report.Count(broken, model.SeverityWarning, model.CheckThinContent); n != 1 {
		t.Errorf("expected 1 THIN_CONTENT warning, got %d", n)
	}
	if n := report.Count(broken, model.SeverityWarning, model.CheckSitemapMissing); n != 1 {
		t.Errorf("expected 1 SITEMAP_MISSING warning, got %d", n)
	}
	if n := report.Count(broken, model.SeverityWarning, ""); n < 2 {
		t.Errorf("expected at least 2 warnings, got %v", report.FindingsFor(broken))
	}
}

// TestDefaultPipelineDeterministic tests that re-running over an unchanged
// tree yields the same report.
func TestDefaultPipelineDeterministic(t *testing.T) {
	t.Parallel()

	fsys := threePageSite()
	cfg := testConfig()

	first, err := DefaultPipeline(cfg).Run(context.Background(), fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DefaultPipeline(cfg).Run(context.Background(), fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reports differ (-first +second):\n%s", diff)
	}

	d1, err := first.Digest()
	if err != nil {
		t.Fatal(err)
	}
	d2, err := second.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if d1 != d2 {
		t.Errorf("digests differ: %s != %s", d1, d2)
	}
}
