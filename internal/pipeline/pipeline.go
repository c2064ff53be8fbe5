package pipeline

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// PageStep is a check that runs once for every parsed page.
type PageStep interface {
	// Do checks page and records the results on report.
	// fsys is the site file system, for steps that look at other files.
	// A returned error is recorded as a PARSE error for the page and the
	// remaining page steps are skipped for that page.
	Do(ctx context.Context, fsys fs.FS, page *site.Page, report *model.Report) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// SiteStep is a check that runs once after every page has been checked.
type SiteStep interface {
	// Do checks the site as a whole. pages are the enumerated page paths.
	// A returned error aborts the run.
	Do(ctx context.Context, fsys fs.FS, pages []string, report *model.Report) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of page and site steps.
type Pipeline struct {
	// pageSteps run in order for every page.
	pageSteps []PageStep

	// siteSteps run in order once at the end of the run.
	siteSteps []SiteStep

	// enumeration selects the page files of the site.
	enumeration site.Options

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// out receives the human-readable progress lines.
	out io.Writer

	// verbose prints every page as it is checked.
	verbose bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithOutput sets the writer that receives progress lines.
// If not set, progress is discarded.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

// WithVerbose prints a "Checking:" line for every page.
func WithVerbose(verbose bool) Option {
	return func(p *Pipeline) {
		p.verbose = verbose
	}
}

// WithEnumeration sets the page file selection.
func WithEnumeration(opts site.Options) Option {
	return func(p *Pipeline) {
		p.enumeration = opts
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddPageSteps and AddSiteSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		pageSteps:   make([]PageStep, 0),
		siteSteps:   make([]SiteStep, 0),
		enumeration: site.Options{Extension: ".html"},
		out:         io.Discard,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddPageSteps appends page steps. Steps are executed in the order they are added.
func (p *Pipeline) AddPageSteps(steps ...PageStep) {
	p.pageSteps = append(p.pageSteps, steps...)
}

// AddSiteSteps appends site steps. Steps are executed in the order they are added.
func (p *Pipeline) AddSiteSteps(steps ...SiteStep) {
	p.siteSteps = append(p.siteSteps, steps...)
}

// Run validates the site in fsys and returns the finished report.
//
// Pages are visited in enumeration order. A page that cannot be read or
// parsed is recorded as a PARSE error and the run moves on. The run is
// aborted only when the site cannot be enumerated, a site step fails or
// ctx is cancelled between two pages.
func (p *Pipeline) Run(ctx context.Context, fsys fs.FS) (*model.Report, error) {
	pages, err := site.Enumerate(fsys, p.enumeration)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate pages: %w", err)
	}
	fmt.Fprintf(p.out, "  Found %d HTML files to validate\n\n", len(pages))

	report := model.NewReport()
	for _, path := range pages {
		select {
		case <-ctx.Done():
			p.logger.Warn("run cancelled", "path", path, "reason", ctx.Err())
			return nil, ctx.Err()
		default:
		}

		report.FilesChecked++
		if p.verbose {
			fmt.Fprintf(p.out, "  Checking: %s\n", path)
		}
		p.checkPage(ctx, fsys, path, report)
	}

	for _, step := range p.siteSteps {
		p.logger.Debug("executing step", "step", step.Name(), "pages", len(pages))
		if err := step.Do(ctx, fsys, pages, report); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "error", err)
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	return report, nil
}

// checkPage loads one page and runs every page step on it.
func (p *Pipeline) checkPage(ctx context.Context, fsys fs.FS, path string, report *model.Report) {
	page, err := site.LoadPage(fsys, path)
	if err != nil {
		p.logger.Debug("page skipped", "path", path, "error", err)
		report.Errorf(path, model.CheckParse, "Failed to parse HTML: %v", err)
		return
	}

	for _, step := range p.pageSteps {
		if err := step.Do(ctx, fsys, page, report); err != nil {
			p.logger.Debug("step failed", "step", step.Name(), "path", path, "error", err)
			report.Errorf(path, model.CheckParse, "Failed to parse HTML: %v", err)
			return
		}
	}
}

// StepCount returns the number of page and site steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.pageSteps) + len(p.siteSteps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, p.StepCount())
	for _, step := range p.pageSteps {
		names = append(names, step.Name())
	}
	for _, step := range p.siteSteps {
		names = append(names, step.Name())
	}
	return names
}
