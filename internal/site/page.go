package site

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is one page document of the site.
type Page struct {
	// Path is the slash-separated path relative to the site root.
	Path string

	// Content is the raw markup as read from disk.
	Content []byte

	// Root is the parsed document tree.
	Root *html.Node

	// Document wraps Root for selector queries.
	Document *goquery.Document
}

// LoadPage reads and parses the page at p.
func LoadPage(fsys fs.FS, p string) (*Page, error) {
	content, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	return ParsePage(p, content)
}

// ParsePage parses content as an HTML document.
// The tree is built once and shared by every query made on the page.
func ParsePage(p string, content []byte) (*Page, error) {
	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Page{
		Path:     p,
		Content:  content,
		Root:     root,
		Document: goquery.NewDocumentFromNode(root),
	}, nil
}

// Body returns the body element selection, which is empty if the document
// has no body.
func (p *Page) Body() *goquery.Selection {
	return p.Document.Find("body").First()
}

// VisibleText returns the text of the body with script and style content
// left out. Text nodes are joined as they appear, so inline elements do not
// split words.
func (p *Page) VisibleText() string {
	var sb strings.Builder
	for _, n := range p.Body().Nodes {
		collectText(n, &sb)
	}
	return sb.String()
}

// collectText appends the text nodes under n to sb, skipping non-visible regions.
func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.ElementNode:
		if isHiddenRegion(n) {
			return
		}
	case html.TextNode:
		sb.WriteString(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// isHiddenRegion reports whether n is a script or style element.
func isHiddenRegion(n *html.Node) bool {
	return n.DataAtom == atom.Script || n.DataAtom == atom.Style
}

// Markup returns the serialized document tree.
func (p *Page) Markup() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, p.Root); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.String(), nil
}

// Attr returns the value of the named attribute of n, or an empty string.
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
