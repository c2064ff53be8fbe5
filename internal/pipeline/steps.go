package pipeline

import (
	"github.com/nao1215/sitecheck/internal/check"
	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/site"
	"github.com/nao1215/sitecheck/internal/sitemap"
)

// DefaultPipeline creates a pipeline with the standard steps configured
// from cfg: tag, schema, content and link checks for every page, then
// sitemap reconciliation.
//
// Pipeline options in opts are applied after the enumeration settings
// derived from cfg.
func DefaultPipeline(cfg *config.Config, opts ...Option) *Pipeline {
	pipelineOpts := append([]Option{
		WithEnumeration(site.Options{
			Extension:   cfg.PageExtension,
			IgnoreDirs:  cfg.IgnoreDirs,
			IgnoreFiles: cfg.IgnoreFiles,
		}),
	}, opts...)
	p := New(pipelineOpts...)

	p.AddPageSteps(
		check.NewTagChecker(cfg.MaxTitleLength, cfg.MaxMetaDescLength),
		check.NewSchemaChecker(),
		check.NewContentChecker(cfg.MinWordCount, cfg.Placeholders),
		check.NewLinkChecker(cfg.BaseHost(), cfg.PageExtension, cfg.MinInternalLinks),
	)
	p.AddSiteSteps(
		sitemap.NewReconciler(cfg.BaseURL, cfg.PageExtension, cfg.SitemapDirs,
			sitemap.WithLogger(p.logger)),
	)

	return p
}
