// Package site discovers and loads the page documents of a generated site.
//
// # Components
//
//   - Enumerate: walks a site tree and returns page paths in a stable order
//   - Page: one page document, read once and parsed once
//
// All access goes through an fs.FS rooted at the site directory, so pages,
// links and sitemap paths are slash-separated and relative to the root.
// Nothing in this package writes to the tree.
//
// # Usage
//
//	fsys := os.DirFS("public")
//	paths, err := site.Enumerate(fsys, site.Options{Extension: ".html"})
//	page, err := site.LoadPage(fsys, paths[0])
package site
