package adapters

import (
	"fmt"
	"net/url"
	"strings"

	"squad-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// MarkerSelector locates the primary content block that carries the classification marker
const MarkerSelector = "table.infobox"

// MarkerAttribute is the attribute of the primary content block naming the page category
const MarkerAttribute = "data-name"

// BaseAdapter provides common functionality for page adapters.
// Page-kind adapters embed it for document navigation and link resolution.
type BaseAdapter struct {
	config *types.Config // Configuration settings (senior team policy, etc.)
	logger types.Logger  // Structured logging interface
}

// NewBaseAdapter creates a new base adapter
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config: config,
		logger: logger,
	}
}

// ParseHTML parses HTML content into a goquery document
func ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ReadMarker returns the classification marker of a page.
// ok is false when the page has no primary content block or the block carries no marker.
func ReadMarker(doc *goquery.Document) (marker string, ok bool) {
	block := doc.Find(MarkerSelector).First()
	if block.Length() == 0 {
		return "", false
	}
	return block.Attr(MarkerAttribute)
}

// SiteRoot returns the scheme and authority of a page URL ("https://ru.wikipedia.org")
func SiteRoot(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("page URL %q has no scheme or host", pageURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// ResolveLink joins a site root and a link's href by plain concatenation.
// Relative hrefs are never resolved against the page path: "/wiki/X" and
// "wiki/X" both become root+href exactly as written.
//
// Absolute hrefs are the one exception. Interwiki and external links already
// carry their own host, and prefixing the root would yield an unfetchable
// "https://hosthttps://..." URL, so they are returned unchanged instead.
func ResolveLink(root, href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return root + href
}

// FindHeadings returns the elements whose id matches one of the given identifiers, in list order
func (b *BaseAdapter) FindHeadings(doc *goquery.Document, ids []string) []*goquery.Selection {
	var headings []*goquery.Selection
	for _, id := range ids {
		heading := doc.Find(fmt.Sprintf(`[id=%q]`, id)).First()
		if heading.Length() > 0 {
			headings = append(headings, heading)
		}
	}
	return headings
}

// FindNext returns the first element matching selector that follows anchor in document order.
// The result is an empty selection when nothing follows.
//
// Section headings and their tables are not siblings: the heading id sits on
// a span inside an h2, often inside a wrapper div, while the table hangs off
// the article body. A sibling or Closest walk therefore misses it, so the
// search works on the flattened document instead. doc.Find("*") lists every
// element in pre-order, and an element's index in that list is its document
// position. The anchor's index marks the start, and the first candidate
// with a larger index is the next match. A candidate nested inside the
// anchor also counts, since it follows the anchor's opening tag.
func (b *BaseAdapter) FindNext(doc *goquery.Document, anchor *goquery.Selection, selector string) *goquery.Selection {
	// Position of the anchor in document order
	all := doc.Find("*")
	pos := all.IndexOfSelection(anchor)
	if pos < 0 {
		return doc.Selection.Slice(0, 0)
	}

	// Candidates come back in document order too, so the first one past
	// the anchor is the answer
	candidates := doc.Find(selector)
	for i := range candidates.Nodes {
		if all.IndexOfNode(candidates.Nodes[i]) > pos {
			return candidates.Eq(i)
		}
	}
	return doc.Selection.Slice(0, 0)
}

// RemoveDuplicateURLs removes duplicate URLs from the slice, keeping first occurrences
func RemoveDuplicateURLs(urls []string) []string {
	seen := make(map[string]bool)
	var uniqueURLs []string

	for _, url := range urls {
		if !seen[url] {
			seen[url] = true
			uniqueURLs = append(uniqueURLs, url)
		}
	}

	return uniqueURLs
}

// Config returns the config field of the BaseAdapter
func (b *BaseAdapter) Config() *types.Config {
	return b.config
}

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
