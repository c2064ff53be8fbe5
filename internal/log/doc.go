// Package log provides logging for sitecheck, built on top of the standard
// slog package.
//
// The PathHandler wraps any slog.Handler and rewrites file system paths
// under the site root to short root-relative slash paths, so log lines are
// the same whichever directory sitecheck was started from:
//
//	logger := log.NewLogger(os.Stderr, verbose, "/srv/www/site")
//	logger.Warn("failed to read page", "path", "/srv/www/site/guides/tokyo.html")
//	// level=WARN msg="failed to read page" path=guides/tokyo.html
//
// Only attributes whose key names a path (see PathKeys) are rewritten.
// Paths outside the root are left as they are.
package log
