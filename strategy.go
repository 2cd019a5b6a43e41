package harvest

// FieldMap maps extraction-field names to extracted values. A value is a
// scalar (string), an ordered sequence ([]any), a row-object list
// ([]map[string]any for table extraction), or nil when nothing matched.
type FieldMap map[string]any

// Strategy names accepted by strategy factories.
const (
	StrategyGeneric  = "generic"
	StrategyProduct  = "product"
	StrategyArticle  = "article"
	StrategySelector = "selector"
)

// Strategy turns a page's markup into a field map. Implementations are
// stateless: extracting twice from the same input yields identical maps.
//
// Extract is total with respect to missing fields — absence is represented
// by a nil value in the map, never by an error. An error is returned only
// when the input cannot be processed at all (e.g., unparsable markup).
type Strategy interface {
	// Extract parses html and returns the extracted fields.
	// pageURL is the URL the markup was fetched from.
	Extract(html string, pageURL string) (FieldMap, error)

	// Name returns the strategy's identifier (e.g., "generic", "selector").
	Name() string
}
