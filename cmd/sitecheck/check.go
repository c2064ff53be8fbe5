package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/history"
	"github.com/nao1215/sitecheck/internal/log"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/pipeline"
	"github.com/nao1215/sitecheck/internal/report"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a generated static site",
		Long: `Check walks the site directory and validates every HTML page.

Per page it checks:
- title, meta description, canonical link, a single <h1> and Open Graph tags
- JSON-LD structured data blocks
- visible word count and unresolved template placeholders
- internal links and internal link density

Afterwards every page is looked up in the sitemap*.xml files.

The command exits 1 when any error is found. Warnings never fail a run.

Examples:
  # Validate the current directory
  sitecheck check

  # Validate a build output directory and list every page
  sitecheck check --dir ./public -v

  # Validate against another origin
  sitecheck check --base-url https://staging.example.com

  # Write a JSON report for CI
  sitecheck check --json -o reports/seo.json

  # Store the run so 'sitecheck history' can compare it later
  sitecheck check --history`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("dir", "d", ".",
		"Site directory to validate")
	cmd.Flags().Bool("fix", false,
		"Reserved for automatic fixes (currently does nothing)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitecheck.yaml in the site, current or home directory)")
	cmd.Flags().String("base-url", "",
		"Published origin of the site (overrides the configuration file)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")
	cmd.Flags().Bool("color", false,
		"Colorize the text report when writing to a terminal")
	cmd.Flags().Bool("history", false,
		"Store the run in the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve site directory: %w", err)
	}
	cfg.RootDir = root

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, root)
	slog.SetDefault(logger)

	fix, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return err
	}
	if fix {
		logger.Warn("--fix is not implemented, no files were changed")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runCheck(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the defaults, the configuration file
// and the command flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.RootDir, err = cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit path must exist. Without one, a missing file means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath, cfg.RootDir)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("base-url") {
		baseURL, err := cmd.Flags().GetString("base-url")
		if err != nil {
			return nil, err
		}
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	cfg.Verbose = getVerboseFlag(cmd)

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.Color, err = cmd.Flags().GetBool("color")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory, err = cmd.Flags().GetBool("history")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runCheck validates the site and writes the report. It returns
// errValidationFailed when the report holds errors.
func runCheck(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, logger *slog.Logger) error {
	// Machine-readable reports on stdout must not be mixed with progress lines.
	status := stdout
	if cfg.ReportFile == "" && (cfg.JSONReport || cfg.MarkdownReport) {
		status = stderr
	}

	logger.Info("starting validation",
		"path", cfg.RootDir,
		"baseURL", cfg.BaseURL,
	)
	fmt.Fprintln(status, "\n🔍 Starting SEO Validation...")
	fmt.Fprintln(status)

	p := pipeline.DefaultPipeline(cfg,
		pipeline.WithLogger(logger),
		pipeline.WithOutput(status),
		pipeline.WithVerbose(cfg.Verbose),
	)

	result, err := p.Run(ctx, os.DirFS(cfg.RootDir))
	if err != nil {
		return err
	}

	if err := outputReport(stdout, cfg, result); err != nil {
		return err
	}

	if cfg.SaveHistory {
		if err := saveRun(ctx, cfg, result, logger); err != nil {
			logger.Error("failed to save run", "error", err)
		}
	}

	if !result.Succeeded() {
		return errValidationFailed
	}
	return nil
}

// outputReport writes the report in the requested format. With a report
// file, the file receives the chosen format and stdout still gets the
// human-readable report.
func outputReport(stdout io.Writer, cfg *config.Config, result *model.Report) error {
	if cfg.ReportFile == "" {
		_, err := newReportWriter(stdout, cfg).Write(result)
		return err
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := report.NewMultiWriter(
		report.NewSimpleWriter(stdout, report.WithColor(cfg.Color)),
		newFileWriter(f, cfg),
	)
	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// newReportWriter returns the writer for the configured format.
func newReportWriter(w io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(w, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w, report.WithColor(cfg.Color))
	}
}

// newFileWriter returns the writer for a report file. Text reports are
// never colorized in files.
func newFileWriter(w io.Writer, cfg *config.Config) report.Writer {
	if cfg.JSONReport || cfg.MarkdownReport {
		return newReportWriter(w, cfg)
	}
	return report.NewSimpleWriter(w)
}

// saveRun stores the finished run in the history database.
func saveRun(ctx context.Context, cfg *config.Config, result *model.Report, logger *slog.Logger) error {
	store, err := history.Open(cfg.DBDir)
	if err != nil {
		return err
	}
	defer store.Close()

	id, saved, err := store.Save(ctx, cfg.RootDir, result, time.Now())
	if err != nil {
		return err
	}
	if saved {
		logger.Info("run saved", "id", id, "path", cfg.RootDir)
	} else {
		logger.Info("run unchanged since last save", "id", id, "path", cfg.RootDir)
	}
	return nil
}
