package log

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// PathKeys are the attribute keys whose string values are treated as
// file system paths.
var PathKeys = map[string]bool{
	"path":    true,
	"file":    true,
	"dir":     true,
	"sitemap": true,
	"config":  true,
}

// PathHandler wraps an slog.Handler to shorten paths under a root directory.
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// root is the absolute, cleaned site root.
	root string
}

// NewPathHandler creates a new PathHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. If root cannot be
// made absolute, paths are passed through unchanged.
func NewPathHandler(handler slog.Handler, root string) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	abs, err := filepath.Abs(root)
	if err != nil || root == "" {
		abs = ""
	}
	return &PathHandler{handler: handler, root: abs}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's path attributes and passes it on.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewritten), root: h.root}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), root: h.root}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			rewritten[i] = h.rewriteAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() != slog.KindString || !PathKeys[strings.ToLower(a.Key)] {
		return a
	}
	return slog.String(a.Key, h.Relative(a.Value.String()))
}

// Relative returns p relative to the root in slash form if p is an
// absolute path inside the root, and p unchanged otherwise. The root
// itself is returned unchanged.
func (h *PathHandler) Relative(p string) string {
	if h.root == "" || !filepath.IsAbs(p) {
		return p
	}
	rel, err := filepath.Rel(h.root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return filepath.ToSlash(rel)
}

// NewLogger creates a new slog.Logger writing text records to w with
// paths under root shortened.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//   - root: The site root directory
func NewLogger(w io.Writer, verbose bool, root string) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewPathHandler(textHandler, root))
}
