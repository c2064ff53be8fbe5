package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errValidationFailed is returned when a run finds at least one error.
// The report has already been printed, so Execute only sets the exit code.
var errValidationFailed = errors.New("validation failed")

// NewRootCmd creates the root command for sitecheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitecheck",
		Short: "SEO validator for generated static sites",
		Long: `sitecheck validates a generated static site before deployment.

It walks the site's HTML files and checks each page for title, meta
description, canonical link, headings and Open Graph tags, JSON-LD blocks,
thin content, unresolved template placeholders and broken internal links.
Finally every page is looked up in the site's sitemaps.

Warnings are quality signals. Errors are defects and make the run exit 1.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Print every checked page and enable debug logging")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
