package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer extracts candidate traversal links from anchors.
type LinkDiscoverer struct{}

// NewLinkDiscoverer creates a new LinkDiscoverer.
func NewLinkDiscoverer() *LinkDiscoverer {
	return &LinkDiscoverer{}
}

// DiscoverLinks returns the page's same-domain absolute URLs in document
// order, deduplicated within the call and excluding anything already in
// visited. Relative references are resolved against baseURL; only URLs
// whose host exactly matches baseURL's host are eligible.
func (d *LinkDiscoverer) DiscoverLinks(html string, baseURL string, visited harvest.Visited) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	links := make([]string, 0)

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Host != base.Host {
			return
		}

		link := resolved.String()
		if seen[link] {
			return
		}
		if visited != nil && visited.Seen(link) {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links, nil
}

// isNonHTTPLink reports whether href carries a scheme that cannot be
// crawled (javascript:, mailto:, tel:, data:).
func isNonHTTPLink(href string) bool {
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}
