package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Mode identifies what a structured instruction extracts from its matches.
type Mode string

// Extraction modes accepted under the "extract" key.
const (
	ModeText      Mode = "text"
	ModeHTML      Mode = "html"
	ModeAttr      Mode = "attr"
	ModeChildAttr Mode = "child_attr"
	ModeTable     Mode = "table"
)

// Instruction is one parsed field-extraction instruction of a selector
// strategy. The two variants are SimpleInstruction (a bare selector string,
// optionally suffixed with "@attribute") and StructuredInstruction (the
// keyed object form). Instructions are parsed once at strategy construction
// and evaluated against a document or sub-element per page.
type Instruction interface {
	// Eval resolves the instruction against root and returns the extracted
	// value: nil when nothing matched, a scalar for exactly one match, or a
	// sequence in document order for several.
	Eval(root *goquery.Selection) any
}

// SimpleInstruction is the string form of the DSL: a CSS selector that
// extracts trimmed text, or "selector@attribute" extracting an attribute.
type SimpleInstruction struct {
	Selector  string
	Attribute string // empty means text extraction
}

// Eval runs the selector and collapses the per-element values. Elements
// missing the requested attribute contribute nil entries.
func (in *SimpleInstruction) Eval(root *goquery.Selection) any {
	sel := root.Find(in.Selector)
	values := make([]any, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if in.Attribute != "" {
			if v, ok := s.Attr(in.Attribute); ok {
				values = append(values, v)
			} else {
				values = append(values, nil)
			}
			return
		}
		values = append(values, text(s))
	})
	return Collapse(values)
}

// StructuredInstruction is the keyed object form of the DSL.
type StructuredInstruction struct {
	Selector       string
	Mode           Mode
	Attribute      string // ModeAttr target
	Multiple       bool
	Child          string // descendant refinement before extraction
	ChildAttribute string // ModeChildAttr target
	Columns        []Column
}

// Eval resolves the instruction against root.
func (in *StructuredInstruction) Eval(root *goquery.Selection) any {
	if in.Mode == ModeTable {
		return in.evalTable(root)
	}

	sel := root.Find(in.Selector)
	if sel.Length() == 0 {
		return nil
	}
	if !in.Multiple {
		sel = sel.First()
	}

	// Per-element failures (no child match, no such attribute) are dropped,
	// not recorded as nil.
	var values []any
	sel.Each(func(_ int, s *goquery.Selection) {
		if v := in.extractOne(s); v != nil {
			values = append(values, v)
		}
	})

	if !in.Multiple {
		if len(values) > 0 {
			return values[0]
		}
		return nil
	}
	return Collapse(values)
}

// extractOne extracts the instruction's value from a single matched element.
// Returns nil when the element yields no value.
func (in *StructuredInstruction) extractOne(s *goquery.Selection) any {
	if in.Child != "" && in.Mode != ModeChildAttr {
		child := s.Find(in.Child).First()
		if child.Length() == 0 {
			return nil
		}
		s = child
	}

	switch in.Mode {
	case ModeText:
		return text(s)
	case ModeHTML:
		h, err := goquery.OuterHtml(s)
		if err != nil {
			return nil
		}
		return h
	case ModeAttr:
		if v, ok := s.Attr(in.Attribute); ok {
			return v
		}
		return nil
	case ModeChildAttr:
		childSel := in.Child
		if childSel == "" {
			childSel = "*"
		}
		child := s.Find(childSel).First()
		if child.Length() == 0 {
			return nil
		}
		if v, ok := child.Attr(in.ChildAttribute); ok {
			return v
		}
		return nil
	}
	return nil
}

// evalTable reconstructs row objects from every element matched by the row
// selector. Rows are emitted in document order; a row is never dropped for
// missing column values.
func (in *StructuredInstruction) evalTable(root *goquery.Selection) any {
	rows := root.Find(in.Selector)
	out := make([]map[string]any, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		obj := make(map[string]any, len(in.Columns))
		for i, col := range in.Columns {
			key := col.Name
			if key == "" {
				key = fmt.Sprintf("column_%d", i)
			}
			obj[key] = col.eval(row)
		}
		out = append(out, obj)
	})
	return out
}

// Column is one column sub-instruction of a table instruction.
type Column struct {
	// Name keys the column's value in each row object. Empty means the
	// positional column_<index> key.
	Name string

	// Instruction resolves the column's value against a row subtree. It is
	// evaluated against the first match only, whatever its multiplicity.
	Instruction Instruction
}

// eval resolves the column against one row's subtree.
func (c *Column) eval(row *goquery.Selection) any {
	switch inst := c.Instruction.(type) {
	case *SimpleInstruction:
		el := row.Find(inst.Selector).First()
		if el.Length() == 0 {
			return nil
		}
		if inst.Attribute != "" {
			if v, ok := el.Attr(inst.Attribute); ok {
				return v
			}
			return nil
		}
		return text(el)
	case *StructuredInstruction:
		el := row.Find(inst.Selector).First()
		if el.Length() == 0 {
			return nil
		}
		return inst.extractOne(el)
	}
	return nil
}

// ParseInstruction parses one raw field instruction — a selector string or
// a keyed object decoded from JSON/YAML — into its explicit form. Malformed
// instructions are rejected here, before any fetch occurs.
func ParseInstruction(raw any) (Instruction, error) {
	switch v := raw.(type) {
	case string:
		return parseSimple(v)
	case map[string]any:
		return parseStructured(v)
	default:
		return nil, harvest.Errorf(harvest.EINVALID, "instruction must be a selector string or an object, got %T", raw)
	}
}

// parseSimple splits the optional "@attribute" suffix off a selector string.
func parseSimple(s string) (*SimpleInstruction, error) {
	selector, attribute := s, ""
	if idx := strings.Index(s, "@"); idx != -1 {
		selector = strings.TrimSpace(s[:idx])
		attribute = strings.TrimSpace(s[idx+1:])
		if attribute == "" {
			return nil, harvest.Errorf(harvest.EINVALID, "instruction %q has an empty attribute suffix", s)
		}
	}
	if strings.TrimSpace(selector) == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "instruction has an empty selector")
	}
	return &SimpleInstruction{Selector: strings.TrimSpace(selector), Attribute: attribute}, nil
}

func parseStructured(m map[string]any) (*StructuredInstruction, error) {
	selector, _ := m["selector"].(string)
	if selector == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "structured instruction requires a selector")
	}

	mode := ModeText
	if v, ok := m["extract"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, harvest.Errorf(harvest.EINVALID, "extract mode must be a string, got %T", v)
		}
		switch Mode(s) {
		case ModeText, ModeHTML, ModeAttr, ModeChildAttr, ModeTable:
			mode = Mode(s)
		default:
			return nil, harvest.Errorf(harvest.EINVALID, "unknown extract mode %q", s)
		}
	}

	multiple := true
	if v, ok := m["multiple"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, harvest.Errorf(harvest.EINVALID, "multiple must be a boolean, got %T", v)
		}
		multiple = b
	}

	inst := &StructuredInstruction{
		Selector: selector,
		Mode:     mode,
		Multiple: multiple,
	}
	inst.Attribute, _ = m["attribute"].(string)
	inst.Child, _ = m["child"].(string)
	inst.ChildAttribute, _ = m["child_attribute"].(string)

	switch mode {
	case ModeAttr:
		if inst.Attribute == "" {
			return nil, harvest.Errorf(harvest.EINVALID, "attr mode requires an attribute")
		}
	case ModeChildAttr:
		if inst.ChildAttribute == "" {
			return nil, harvest.Errorf(harvest.EINVALID, "child_attr mode requires a child_attribute")
		}
	case ModeTable:
		cols, err := parseColumns(m["columns"])
		if err != nil {
			return nil, err
		}
		inst.Columns = cols
	}

	return inst, nil
}

func parseColumns(raw any) ([]Column, error) {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil, harvest.Errorf(harvest.EINVALID, "table mode requires a columns list")
	}

	cols := make([]Column, 0, len(list))
	for i, item := range list {
		col, err := parseColumn(item)
		if err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "column %d: %s", i, harvest.ErrorMessage(err))
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func parseColumn(raw any) (Column, error) {
	switch v := raw.(type) {
	case string:
		inst, err := parseSimple(v)
		if err != nil {
			return Column{}, err
		}
		return Column{Instruction: inst}, nil
	case map[string]any:
		name, _ := v["name"].(string)
		selector, _ := v["selector"].(string)
		// An @attribute suffix inside a structured column's selector takes
		// precedence over its extract mode.
		if strings.Contains(selector, "@") {
			inst, err := parseSimple(selector)
			if err != nil {
				return Column{}, err
			}
			return Column{Name: name, Instruction: inst}, nil
		}
		inst, err := parseStructured(v)
		if err != nil {
			return Column{}, err
		}
		if inst.Mode == ModeTable {
			return Column{}, harvest.Errorf(harvest.EINVALID, "table columns cannot nest table mode")
		}
		inst.Multiple = false
		return Column{Name: name, Instruction: inst}, nil
	default:
		return Column{}, harvest.Errorf(harvest.EINVALID, "column must be a selector string or an object, got %T", raw)
	}
}
