package goquery

import (
	"github.com/fwojciec/harvest"
)

// NewStrategy constructs the extraction strategy registered under name.
// The selectors map is consulted only by the selector strategy. Unknown
// names and malformed selector configuration are rejected here, before any
// fetch occurs.
func NewStrategy(name string, selectors map[string]any) (harvest.Strategy, error) {
	switch name {
	case harvest.StrategyGeneric:
		return NewGenericStrategy(), nil
	case harvest.StrategyProduct:
		return NewProductStrategy(), nil
	case harvest.StrategyArticle:
		return NewArticleStrategy(), nil
	case harvest.StrategySelector:
		return NewSelectorStrategy(selectors)
	default:
		return nil, harvest.Errorf(harvest.EINVALID, "unknown strategy %q", name)
	}
}
