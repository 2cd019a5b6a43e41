// Package harvest provides a configurable web crawling and extraction
// toolkit. It fetches pages within operator-supplied depth, page and rate
// limits and converts their markup into structured field maps using
// pluggable extraction strategies, including a small selector-expression
// DSL for attribute and tabular extraction.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package harvest
