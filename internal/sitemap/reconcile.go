package sitemap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/nao1215/sitecheck/internal/model"
)

// Subject is the report subject of site-wide sitemap findings.
const Subject = "sitemap"

// Reconciler cross-checks enumerated pages against sitemap documents.
type Reconciler struct {
	baseURL   string
	extension string
	dirs      []string
	logger    *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// NewReconciler creates a Reconciler.
// baseURL is the published origin of the site, extension the page file
// extension and dirs the directories searched for sitemap documents.
func NewReconciler(baseURL, extension string, dirs []string, opts ...Option) *Reconciler {
	r := &Reconciler{
		baseURL:   strings.TrimRight(baseURL, "/"),
		extension: extension,
		dirs:      dirs,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the step name.
func (r *Reconciler) Name() string {
	return "sitemap"
}

// Do reconciles pages with the sitemaps found in fsys.
//
// Without any sitemap document a single SITEMAP warning is recorded and
// pages are not checked. A sitemap that cannot be read is recorded as a
// SITEMAP error and the remaining sitemaps are still used.
func (r *Reconciler) Do(ctx context.Context, fsys fs.FS, pages []string, report *model.Report) error {
	files, err := Locate(fsys, r.dirs)
	if err != nil {
		return fmt.Errorf("failed to locate sitemaps: %w", err)
	}
	if len(files) == 0 {
		report.Warn(Subject, model.CheckSitemap, "No sitemap files found")
		return nil
	}

	urls := make(URLSet)
	for _, f := range files {
		content, err := fs.ReadFile(fsys, f)
		if err != nil {
			report.Errorf(f, model.CheckSitemap, "Failed to read sitemap: %v", err)
			continue
		}
		for _, u := range Extract(content) {
			urls.Add(u)
		}
	}
	r.logger.DebugContext(ctx, "sitemaps loaded", "files", len(files), "urls", urls.Len())

	for _, p := range pages {
		if !urls.ContainsAny(r.Candidates(p)) {
			report.Warnf(p, model.CheckSitemapMissing, "Page not found in any sitemap: %s", p)
		}
	}
	return nil
}

// ExpectedURL returns the URL the page at pagePath is expected to be
// published under: the page extension is dropped and an index page is
// collapsed to its directory.
func (r *Reconciler) ExpectedURL(pagePath string) string {
	clean := strings.TrimSuffix(pagePath, r.extension)
	if path.Base(clean) == "index" {
		clean = strings.TrimSuffix(clean, "index")
	}
	return r.baseURL + "/" + clean
}

// Candidates returns every URL under which a sitemap may list the page at
// pagePath: the expected URL, its trailing-slash and slash-trimmed forms,
// and the URL of the raw file path.
func (r *Reconciler) Candidates(pagePath string) []string {
	expected := r.ExpectedURL(pagePath)
	all := []string{
		expected,
		strings.TrimRight(expected, "/") + "/",
		strings.TrimRight(expected, "/"),
		r.baseURL + "/" + pagePath,
	}

	candidates := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, c := range all {
		if !seen[c] {
			seen[c] = true
			candidates = append(candidates, c)
		}
	}
	return candidates
}
