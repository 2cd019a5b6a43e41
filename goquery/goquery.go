// Package goquery provides CSS-selector based implementations of the
// harvest extraction strategies and the link discoverer. It contains the
// four strategy variants (generic, product, article, selector) and the
// selector-instruction DSL used by the selector strategy.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// parseDocument parses HTML into a goquery document.
func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// text returns the trimmed visible text of a selection.
func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
