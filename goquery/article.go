package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.Strategy = (*ArticleStrategy)(nil)

var (
	authorClass  = regexp.MustCompile(`(?i)author`)
	contentClass = regexp.MustCompile(`(?i)content|article`)
)

// ArticleStrategy extracts news-article and blog-post data: headline,
// author, publish date, body paragraphs and taxonomy tags.
type ArticleStrategy struct{}

// NewArticleStrategy creates a new ArticleStrategy.
func NewArticleStrategy() *ArticleStrategy {
	return &ArticleStrategy{}
}

// Extract returns the article field set.
func (s *ArticleStrategy) Extract(html string, pageURL string) (harvest.FieldMap, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	return harvest.FieldMap{
		"headline":     articleHeadline(doc),
		"author":       articleAuthor(doc),
		"publish_date": articleDate(doc),
		"content":      articleContent(doc),
		"tags":         articleTags(doc),
	}, nil
}

// Name returns the strategy's identifier.
func (s *ArticleStrategy) Name() string {
	return harvest.StrategyArticle
}

// articleHeadline prefers the first level-1 heading, falling back to the
// document title.
func articleHeadline(doc *goquery.Document) any {
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return text(h1)
	}
	if t := doc.Find("title").First(); t.Length() > 0 {
		return text(t)
	}
	return nil
}

// articleAuthor prefers the author meta tag, falling back to the first
// element with an author-like class name.
func articleAuthor(doc *goquery.Document) any {
	if tag := doc.Find(`meta[name="author"]`).First(); tag.Length() > 0 {
		if content, ok := tag.Attr("content"); ok {
			return content
		}
		return nil
	}
	var found any
	doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if authorClass.MatchString(class) {
			found = text(sel)
			return false
		}
		return true
	})
	return found
}

// articleDate takes the first time element's machine-readable datetime
// attribute, falling back to its text.
func articleDate(doc *goquery.Document) any {
	t := doc.Find("time").First()
	if t.Length() == 0 {
		return nil
	}
	if dt, ok := t.Attr("datetime"); ok && dt != "" {
		return dt
	}
	return text(t)
}

// articleContent collects paragraph texts from the detected article
// container, falling back to every paragraph in the document.
func articleContent(doc *goquery.Document) []any {
	container := doc.Find("article").First()
	if container.Length() == 0 {
		doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			class, _ := sel.Attr("class")
			if contentClass.MatchString(class) {
				container = sel
				return false
			}
			return true
		})
	}

	scope := doc.Selection
	if container.Length() > 0 {
		scope = container
	}

	content := make([]any, 0)
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		content = append(content, text(p))
	})
	return content
}

// articleTags flattens every article:tag taxonomy meta value.
func articleTags(doc *goquery.Document) []any {
	tags := make([]any, 0)
	doc.Find(`meta[property="article:tag"]`).Each(func(_ int, tag *goquery.Selection) {
		if content, ok := tag.Attr("content"); ok && content != "" {
			tags = append(tags, content)
		}
	})
	return tags
}
