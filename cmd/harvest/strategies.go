package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// strategyInfo describes one built-in strategy for listing purposes.
type strategyInfo struct {
	name        string
	description string
}

var strategyCatalog = []strategyInfo{
	{harvest.StrategyGeneric, "Extract common elements (title, headings, paragraphs, images)"},
	{harvest.StrategyProduct, "Extract e-commerce product data (name, price, description)"},
	{harvest.StrategyArticle, "Extract article/blog content (headline, author, content)"},
	{harvest.StrategySelector, "Custom CSS selector-based extraction (requires --selectors)"},
}

// Run executes the strategies command.
func (c *StrategiesCmd) Run(deps *Dependencies) error {
	for _, s := range strategyCatalog {
		fmt.Fprintf(deps.Stdout, "%-10s %s\n", s.name, s.description)
	}
	return nil
}
