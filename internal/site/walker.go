package site

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// Options controls which files Enumerate returns.
type Options struct {
	// Extension is the page-file extension including the dot, e.g. ".html".
	Extension string

	// IgnoreDirs are path prefixes, relative to the root. A directory whose
	// relative path starts with any of them is not walked.
	IgnoreDirs []string

	// IgnoreFiles are base names of page files that are never returned.
	IgnoreFiles []string
}

// Enumerate walks fsys depth-first in lexical order and returns the
// slash-separated paths of all page files.
//
// An unreadable directory aborts the walk and its error is returned;
// a partial page list is never returned.
func Enumerate(fsys fs.FS, opts Options) ([]string, error) {
	pages := make([]string, 0)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		if d.IsDir() {
			if p != "." && hasIgnoredPrefix(p, opts.IgnoreDirs) {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), opts.Extension) {
			return nil
		}
		if slices.Contains(opts.IgnoreFiles, d.Name()) {
			return nil
		}

		pages = append(pages, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pages, nil
}

// hasIgnoredPrefix reports whether rel starts with any of the prefixes.
// The comparison is a plain string prefix, so "img" also excludes "images".
func hasIgnoredPrefix(rel string, prefixes []string) bool {
	rel = path.Clean(rel)
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(rel, prefix) {
			return true
		}
	}
	return false
}
