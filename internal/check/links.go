package check

import (
	"context"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// siteRoot is the resolved target of a link to the site root.
const siteRoot = "."

// skippedPrefixes mark hrefs that never point at a site page.
var skippedPrefixes = []string{"#", "mailto:", "tel:", "javascript:"}

// LinkChecker validates the internal links of a page.
type LinkChecker struct {
	baseHost         string
	extension        string
	minInternalLinks int
}

// NewLinkChecker creates a LinkChecker.
// Absolute links to baseHost are treated as internal. extension is the page
// file extension tried when a link target does not exist as written.
func NewLinkChecker(baseHost, extension string, minInternalLinks int) *LinkChecker {
	return &LinkChecker{
		baseHost:         strings.ToLower(baseHost),
		extension:        extension,
		minInternalLinks: minInternalLinks,
	}
}

// Name returns the checker name.
func (c *LinkChecker) Name() string {
	return "links"
}

// Do resolves every internal link of page against fsys and checks the
// internal link count.
func (c *LinkChecker) Do(_ context.Context, fsys fs.FS, page *site.Page, report *model.Report) error {
	internal := 0

	page.Document.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		target, ok := c.Target(page.Path, href)
		if !ok {
			return
		}
		internal++

		if target == siteRoot {
			return
		}
		if c.Exists(fsys, target) {
			report.Pass()
			return
		}
		report.Errorf(page.Path, model.CheckBrokenLink, "Broken internal link: %s", href)
	})

	if internal < c.minInternalLinks {
		report.Warnf(page.Path, model.CheckLinkDensity,
			"Only %d internal links (minimum: %d)", internal, c.minInternalLinks)
	}
	return nil
}

// Target returns the root-relative path that href, found on the page at
// pagePath, points to, and whether href is an internal link at all.
//
// Query strings and fragments are dropped. Root-relative hrefs resolve from
// the site root, other relative hrefs from the page's directory. A link to
// the site root itself yields ".". A target that climbs above the root is
// returned as is and never exists.
func (c *LinkChecker) Target(pagePath, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	lower := strings.ToLower(href)
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		// Unparseable hrefs are internal and unresolvable.
		return href, true
	}
	if u.Scheme != "" || u.Host != "" {
		if !c.isBaseHost(u) {
			return "", false
		}
		return rootRelative(u.Path), true
	}

	switch {
	case u.Path == "":
		return siteRoot, true
	case strings.HasPrefix(u.Path, "/"):
		return rootRelative(u.Path), true
	default:
		return path.Join(path.Dir(pagePath), u.Path), true
	}
}

// Exists reports whether target names a file or directory in fsys, either
// as written, with the page extension, or as a directory index.
func (c *LinkChecker) Exists(fsys fs.FS, target string) bool {
	if !fs.ValidPath(target) {
		return false
	}
	candidates := []string{
		target,
		target + c.extension,
		path.Join(target, "index"+c.extension),
	}
	for _, candidate := range candidates {
		if _, err := fs.Stat(fsys, candidate); err == nil {
			return true
		}
	}
	return false
}

// isBaseHost reports whether u is an http(s) or protocol-relative URL on
// the site's own host.
func (c *LinkChecker) isBaseHost(u *url.URL) bool {
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return c.baseHost != "" && strings.ToLower(u.Host) == c.baseHost
}

// rootRelative converts an absolute URL path to a path relative to the site root.
func rootRelative(p string) string {
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if cleaned == "" {
		return siteRoot
	}
	return cleaned
}
