package model

// Check names identify the check that produced a finding.
// They are printed verbatim in every report format.
const (
	CheckTitle          = "TITLE"
	CheckMetaDesc       = "META_DESC"
	CheckCanonical      = "CANONICAL"
	CheckH1             = "H1"
	CheckOpenGraph      = "OG"
	CheckSchema         = "SCHEMA"
	CheckContent        = "CONTENT"
	CheckThinContent    = "THIN_CONTENT"
	CheckPlaceholder    = "PLACEHOLDER"
	CheckBrokenLink     = "BROKEN_LINK"
	CheckLinkDensity    = "LINK_DENSITY"
	CheckSitemap        = "SITEMAP"
	CheckSitemapMissing = "SITEMAP_MISSING"
	CheckParse          = "PARSE"
)

// Finding is a single warning or error produced by a check.
type Finding struct {
	// Severity is SeverityWarning or SeverityError.
	Severity Severity `json:"severity"`

	// File is the subject of the finding, usually a page path relative to
	// the site root. Site-wide findings use a symbolic subject such as "sitemap".
	File string `json:"file"`

	// Check is one of the Check* names.
	Check string `json:"check"`

	// Message describes what was found.
	Message string `json:"message"`
}

// Key returns an identifier that is stable across runs, used to match
// findings when two reports are compared.
func (f Finding) Key() string {
	return f.Severity.String() + "|" + f.Check + "|" + f.File + "|" + f.Message
}
