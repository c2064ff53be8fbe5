package sitemap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"
)

// locPattern matches a single-line <loc> entry. It is used for documents
// that are not well-formed XML.
var locPattern = regexp.MustCompile(`<loc>(.*?)</loc>`)

// URLSet is the set of page URLs declared by the site's sitemaps.
type URLSet map[string]struct{}

// Add adds u to the set.
func (s URLSet) Add(u string) {
	s[u] = struct{}{}
}

// Contains reports whether u is in the set.
func (s URLSet) Contains(u string) bool {
	_, ok := s[u]
	return ok
}

// ContainsAny reports whether any of urls is in the set.
func (s URLSet) ContainsAny(urls []string) bool {
	for _, u := range urls {
		if s.Contains(u) {
			return true
		}
	}
	return false
}

// Len returns the number of URLs in the set.
func (s URLSet) Len() int {
	return len(s)
}

// IsSitemapFile reports whether name is the file name of a sitemap document.
func IsSitemapFile(name string) bool {
	return strings.HasSuffix(name, ".xml") && strings.Contains(name, "sitemap")
}

// Locate returns the sitemap documents found directly inside dirs, in the
// order of dirs and then by file name. Directories that do not exist are
// skipped.
func Locate(fsys fs.FS, dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		dir = path.Clean(dir)
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !IsSitemapFile(e.Name()) {
				continue
			}
			p := path.Join(dir, e.Name())
			if !slices.Contains(files, p) {
				files = append(files, p)
			}
		}
	}
	return files, nil
}

// Extract returns the page URLs declared by a sitemap document, trimmed of
// surrounding whitespace. Entries that point at other .xml documents, such
// as those of a sitemap index, are left out.
func Extract(content []byte) []string {
	locs, err := decodeLocs(content)
	if err != nil {
		locs = matchLocs(content)
	}

	urls := make([]string, 0, len(locs))
	for _, loc := range locs {
		loc = strings.TrimSpace(loc)
		if loc == "" || strings.HasSuffix(loc, ".xml") {
			continue
		}
		urls = append(urls, loc)
	}
	return urls
}

// decodeLocs collects the text of every loc element in a well-formed
// document, whatever element encloses it.
func decodeLocs(content []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		locs  []string
		inLoc bool
		text  strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return locs, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "loc" {
				inLoc = true
				text.Reset()
			}
		case xml.CharData:
			if inLoc {
				text.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "loc" && inLoc {
				locs = append(locs, text.String())
				inLoc = false
			}
		}
	}
}

// matchLocs extracts loc entries textually.
func matchLocs(content []byte) []string {
	matches := locPattern.FindAllSubmatch(content, -1)
	locs := make([]string, 0, len(matches))
	for _, m := range matches {
		locs = append(locs, string(m[1]))
	}
	return locs
}
