// Package main provides the entry point for the sitecheck CLI.
//
// sitecheck validates the SEO quality of a generated static site before it
// is deployed. It checks every page for required tags, structured data,
// content quality and broken internal links, and reconciles the pages with
// the site's sitemaps.
//
// Usage:
//
//	sitecheck check --dir ./public
//	sitecheck check --json -o report.json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
