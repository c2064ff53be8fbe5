// Package sitemap reconciles the site's page files with the URLs its sitemap
// documents declare.
//
// Sitemap documents are located by name in a fixed set of directories and
// their <loc> entries collected into a URLSet. Every enumerated page is then
// mapped to the URL it is expected to be published under and looked up in
// the set. Pages that no sitemap declares are reported as warnings.
package sitemap
