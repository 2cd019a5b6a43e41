package goquery

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.Strategy = (*GenericStrategy)(nil)

// maxGenericParagraphs caps the paragraphs field of the generic strategy.
const maxGenericParagraphs = 5

// GenericStrategy extracts the common elements of any page: title,
// level-1/2/3 headings, the first five paragraphs, image sources and the
// description/keywords meta tags.
type GenericStrategy struct{}

// NewGenericStrategy creates a new GenericStrategy.
func NewGenericStrategy() *GenericStrategy {
	return &GenericStrategy{}
}

// Extract returns the fixed generic field set.
func (s *GenericStrategy) Extract(html string, pageURL string) (harvest.FieldMap, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	var title any
	if t := doc.Find("title").First(); t.Length() > 0 {
		title = text(t)
	}

	headings := make([]any, 0)
	doc.Find("h1, h2, h3").Each(func(_ int, h *goquery.Selection) {
		headings = append(headings, text(h))
	})

	paragraphs := make([]any, 0, maxGenericParagraphs)
	doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= maxGenericParagraphs {
			return false
		}
		paragraphs = append(paragraphs, text(p))
		return true
	})

	images := make([]any, 0)
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		images = append(images, imageSource(img))
	})

	return harvest.FieldMap{
		"title":            title,
		"headings":         headings,
		"paragraphs":       paragraphs,
		"images":           images,
		"meta_description": metaContent(doc, "description"),
		"meta_keywords":    metaContent(doc, "keywords"),
	}, nil
}

// Name returns the strategy's identifier.
func (s *GenericStrategy) Name() string {
	return harvest.StrategyGeneric
}

// metaContent resolves a meta value by name attribute first, then by the
// matching Open Graph property.
func metaContent(doc *goquery.Document, name string) any {
	tag := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).First()
	if tag.Length() == 0 {
		tag = doc.Find(fmt.Sprintf(`meta[property=%q]`, "og:"+name)).First()
	}
	if tag.Length() == 0 {
		return nil
	}
	if content, ok := tag.Attr("content"); ok {
		return content
	}
	return nil
}

// imageSource returns an image's src, falling back to data-src for
// lazy-loaded images. Returns nil when neither attribute is present.
func imageSource(img *goquery.Selection) any {
	if src, ok := img.Attr("src"); ok && src != "" {
		return src
	}
	if src, ok := img.Attr("data-src"); ok && src != "" {
		return src
	}
	return nil
}
