package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.Strategy = (*ProductStrategy)(nil)

// Class-name patterns probed when microdata attributes are absent.
var (
	productTitleClass = regexp.MustCompile(`(?i)product.*title`)
	priceClass        = regexp.MustCompile(`(?i)price`)
	descriptionClass  = regexp.MustCompile(`(?i)description`)
	productImageClass = regexp.MustCompile(`(?i)product`)
)

// ProductStrategy extracts e-commerce product data. Each field tries an
// ordered list of probes — schema.org microdata first, then class-name
// pattern matches — and the first match wins.
type ProductStrategy struct{}

// NewProductStrategy creates a new ProductStrategy.
func NewProductStrategy() *ProductStrategy {
	return &ProductStrategy{}
}

// Extract returns the product field set.
func (s *ProductStrategy) Extract(html string, pageURL string) (harvest.FieldMap, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	images := make([]any, 0)
	doc.Find("img[class]").Each(func(_ int, img *goquery.Selection) {
		class, _ := img.Attr("class")
		if classTokenMatch(class, productImageClass) {
			images = append(images, imageSource(img))
		}
	})

	return harvest.FieldMap{
		"product_name": probeFirst(doc,
			attrProbe(`[itemprop="name"]`),
			classProbe(productTitleClass),
		),
		"price": probeFirst(doc,
			attrProbe(`[itemprop="price"]`),
			classProbe(priceClass),
		),
		"description": probeFirst(doc,
			attrProbe(`[itemprop="description"]`),
			classProbe(descriptionClass),
		),
		"availability": probeFirst(doc,
			attrProbe(`[itemprop="availability"]`),
		),
		"images": images,
	}, nil
}

// Name returns the strategy's identifier.
func (s *ProductStrategy) Name() string {
	return harvest.StrategyProduct
}

// probe locates the first element matching an attribute pattern.
type probe func(doc *goquery.Document) *goquery.Selection

// attrProbe matches by CSS attribute selector.
func attrProbe(selector string) probe {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(selector).First()
	}
}

// classProbe matches the first element with a class token matching the
// pattern, in document order.
func classProbe(pattern *regexp.Regexp) probe {
	return func(doc *goquery.Document) *goquery.Selection {
		var found *goquery.Selection
		doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			class, _ := sel.Attr("class")
			if classTokenMatch(class, pattern) {
				found = sel
				return false
			}
			return true
		})
		return found
	}
}

// classTokenMatch matches each class token individually, so a pattern never
// spans across separate classes in a multi-class attribute.
func classTokenMatch(class string, pattern *regexp.Regexp) bool {
	for _, token := range strings.Fields(class) {
		if pattern.MatchString(token) {
			return true
		}
	}
	return false
}

// probeFirst runs the probes in order; a failed probe falls through to the
// next. Returns the trimmed text of the first match, nil when no probe hits.
func probeFirst(doc *goquery.Document, probes ...probe) any {
	for _, p := range probes {
		sel := p(doc)
		if sel != nil && sel.Length() > 0 {
			return text(sel)
		}
	}
	return nil
}
