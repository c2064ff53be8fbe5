// Package config provides configuration structures and utilities for sitecheck.
// It defines the validation thresholds, the site layout (page extension,
// ignored paths, sitemap locations) and report preferences, and loads
// overrides from a YAML configuration file.
package config
