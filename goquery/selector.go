package goquery

import (
	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.Strategy = (*SelectorStrategy)(nil)

// SelectorStrategy evaluates a caller-supplied field→instruction map.
// Each field resolves independently; the instruction configuration is the
// wire-visible contract of the extraction engine (string selectors, the
// "@attribute" suffix, and the structured keys selector/extract/attribute/
// multiple/child/child_attribute/columns/name).
type SelectorStrategy struct {
	fields map[string]Instruction
}

// NewSelectorStrategy parses the raw field→instruction map into explicit
// instructions. Malformed instructions are rejected here, making bad
// configuration fatal before any fetch occurs.
func NewSelectorStrategy(selectors map[string]any) (*SelectorStrategy, error) {
	fields := make(map[string]Instruction, len(selectors))
	for name, raw := range selectors {
		inst, err := ParseInstruction(raw)
		if err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "field %q: %s", name, harvest.ErrorMessage(err))
		}
		fields[name] = inst
	}
	return &SelectorStrategy{fields: fields}, nil
}

// Extract evaluates every instruction against the parsed document and
// returns one entry per configured field.
func (s *SelectorStrategy) Extract(html string, pageURL string) (harvest.FieldMap, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	out := make(harvest.FieldMap, len(s.fields))
	for name, inst := range s.fields {
		out[name] = inst.Eval(doc.Selection)
	}
	return out, nil
}

// Name returns the strategy's identifier.
func (s *SelectorStrategy) Name() string {
	return harvest.StrategySelector
}
