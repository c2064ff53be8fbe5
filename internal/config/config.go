package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These are the thresholds the generated site is published against.
const (
	// DefaultBaseURL is the published origin of the site. Expected sitemap
	// URLs are derived from it and absolute links to it count as internal.
	DefaultBaseURL = "https://triptrackai.com"

	// DefaultMinWordCount is the visible word count below which a page is
	// reported as thin content.
	DefaultMinWordCount = 150

	// DefaultMaxTitleLength is the number of characters after which search
	// engines usually truncate a title.
	DefaultMaxTitleLength = 60

	// DefaultMaxMetaDescLength is the number of characters after which search
	// engines usually truncate a meta description.
	DefaultMaxMetaDescLength = 160

	// DefaultMinInternalLinks is the minimum number of internal links per page.
	DefaultMinInternalLinks = 3

	// DefaultPageExtension is the file extension of page documents.
	DefaultPageExtension = ".html"

	// AppName is the application name used for XDG directory paths.
	AppName = "sitecheck"
)

// DefaultPlaceholders returns the literals that must never appear in
// generated markup outside of script and style regions.
func DefaultPlaceholders() []string {
	return []string{
		"{{", "}}", "{%", "%}",
		"[PLACEHOLDER]", "[TODO]", "[INSERT]",
		"undefined", "null",
		"NaN",
	}
}

// DefaultIgnoreDirs returns the directory prefixes skipped during enumeration.
func DefaultIgnoreDirs() []string {
	return []string{"node_modules", ".git", "generator", "assets", "img", "screenshots"}
}

// DefaultIgnoreFiles returns the page file names skipped during enumeration.
func DefaultIgnoreFiles() []string {
	return []string{"404.html"}
}

// DefaultSitemapDirs returns the directories, relative to the site root,
// searched for sitemap documents.
func DefaultSitemapDirs() []string {
	return []string{".", "sitemaps"}
}

// Config holds all configuration options for one sitecheck run.
// It is populated from defaults, the configuration file and CLI flags, in
// that order, and is not modified once the run starts.
type Config struct {
	// RootDir is the directory containing the generated site.
	RootDir string

	// BaseURL is the published origin of the site, without a trailing slash.
	BaseURL string

	// MinWordCount is the thin-content threshold.
	MinWordCount int

	// MaxTitleLength is the title length above which a warning is reported.
	MaxTitleLength int

	// MaxMetaDescLength is the meta description length above which a warning
	// is reported.
	MaxMetaDescLength int

	// MinInternalLinks is the internal link count below which a warning is reported.
	MinInternalLinks int

	// Placeholders are literal substrings that mark unresolved templates.
	Placeholders []string

	// IgnoreDirs are path prefixes, relative to RootDir, that are not walked.
	IgnoreDirs []string

	// IgnoreFiles are page file names that are never checked.
	IgnoreFiles []string

	// SitemapDirs are directories, relative to RootDir, searched for sitemaps.
	SitemapDirs []string

	// PageExtension is the extension of page documents, including the dot.
	PageExtension string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// Verbose prints every page as it is checked and enables debug logging.
	Verbose bool

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile, when set, receives the report instead of stdout.
	ReportFile string

	// Color enables ANSI styling of the text report.
	Color bool

	// SaveHistory stores the finished run in the history database under DBDir.
	SaveHistory bool

	// DBDir is the directory of the history database.
	// Defaults to the XDG data directory (~/.local/share/sitecheck on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		RootDir:           ".",
		BaseURL:           DefaultBaseURL,
		MinWordCount:      DefaultMinWordCount,
		MaxTitleLength:    DefaultMaxTitleLength,
		MaxMetaDescLength: DefaultMaxMetaDescLength,
		MinInternalLinks:  DefaultMinInternalLinks,
		Placeholders:      DefaultPlaceholders(),
		IgnoreDirs:        DefaultIgnoreDirs(),
		IgnoreFiles:       DefaultIgnoreFiles(),
		SitemapDirs:       DefaultSitemapDirs(),
		PageExtension:     DefaultPageExtension,
		DBDir:             XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for sitecheck.
// On Linux: ~/.local/share/sitecheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sitecheck.
// On Linux: ~/.config/sitecheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// BaseHost returns the host part of BaseURL, or an empty string if BaseURL
// cannot be parsed.
func (c *Config) BaseHost() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RootDir) == "" {
		return ErrEmptyRoot
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	thresholds := []struct {
		name  string
		value int
	}{
		{"minWordCount", c.MinWordCount},
		{"maxTitleLength", c.MaxTitleLength},
		{"maxMetaDescLength", c.MaxMetaDescLength},
		{"minInternalLinks", c.MinInternalLinks},
	}
	for _, th := range thresholds {
		if th.value < 0 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidThreshold, th.name, th.value)
		}
	}

	if !strings.HasPrefix(c.PageExtension, ".") || len(c.PageExtension) < 2 {
		return ErrEmptyPageExtension
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
