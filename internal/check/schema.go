package check

import (
	"context"
	"encoding/json"
	"io/fs"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// jsonLDSelector matches structured data blocks.
const jsonLDSelector = `script[type="application/ld+json"]`

// SchemaChecker validates the JSON-LD structured data of a page.
type SchemaChecker struct{}

// NewSchemaChecker creates a SchemaChecker.
func NewSchemaChecker() *SchemaChecker {
	return &SchemaChecker{}
}

// Name returns the checker name.
func (c *SchemaChecker) Name() string {
	return "schema"
}

// Do checks that page carries at least one JSON-LD block and that every
// block is well-formed JSON. Each valid block counts as one pass.
func (c *SchemaChecker) Do(_ context.Context, _ fs.FS, page *site.Page, report *model.Report) error {
	blocks := page.Document.Find(jsonLDSelector)
	if blocks.Length() == 0 {
		report.Warn(page.Path, model.CheckSchema, "No structured data (JSON-LD) found")
		return nil
	}

	blocks.Each(func(_ int, s *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			report.Errorf(page.Path, model.CheckSchema, "Invalid JSON-LD: %s", err)
			return
		}
		report.Pass()
	})
	return nil
}
