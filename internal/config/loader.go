package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sitecheck.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .sitecheck.yaml configuration file.
// Omitted keys keep the default. Thresholds are pointers so that an explicit
// 0 can be told apart from an omitted key.
type File struct {
	BaseURL           string   `yaml:"baseURL,omitempty"`
	MinWordCount      *int     `yaml:"minWordCount,omitempty"`
	MaxTitleLength    *int     `yaml:"maxTitleLength,omitempty"`
	MaxMetaDescLength *int     `yaml:"maxMetaDescLength,omitempty"`
	MinInternalLinks  *int     `yaml:"minInternalLinks,omitempty"`
	Placeholders      []string `yaml:"placeholders,omitempty"`
	IgnoreDirs        []string `yaml:"ignoreDirs,omitempty"`
	IgnoreFiles       []string `yaml:"ignoreFiles,omitempty"`
	SitemapDirs       []string `yaml:"sitemapDirs,omitempty"`
	PageExtension     string   `yaml:"pageExtension,omitempty"`
}

// LoadConfigFile loads a configuration file from a YAML document.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply overrides c with every value set in the file.
// Lists replace the defaults rather than extending them.
func (cf *File) Apply(c *Config) {
	if cf.BaseURL != "" {
		c.BaseURL = strings.TrimRight(cf.BaseURL, "/")
	}
	setInt(&c.MinWordCount, cf.MinWordCount)
	setInt(&c.MaxTitleLength, cf.MaxTitleLength)
	setInt(&c.MaxMetaDescLength, cf.MaxMetaDescLength)
	setInt(&c.MinInternalLinks, cf.MinInternalLinks)
	if len(cf.Placeholders) > 0 {
		c.Placeholders = cf.Placeholders
	}
	if len(cf.IgnoreDirs) > 0 {
		c.IgnoreDirs = cf.IgnoreDirs
	}
	if len(cf.IgnoreFiles) > 0 {
		c.IgnoreFiles = cf.IgnoreFiles
	}
	if len(cf.SitemapDirs) > 0 {
		c.SitemapDirs = cf.SitemapDirs
	}
	if cf.PageExtension != "" {
		c.PageExtension = cf.PageExtension
	}
}

// setInt stores *v in dst when v is set.
func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .sitecheck.yaml in the site root
// 3. Look for .sitecheck.yaml in the current directory
// 4. Look for config.yaml in the XDG config directory
// 5. Look for .sitecheck.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath, rootDir string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 4)
	if rootDir != "" {
		candidates = append(candidates, filepath.Join(rootDir, DefaultConfigFile))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
