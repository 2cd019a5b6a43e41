package harvest

// Visited tracks URLs already scheduled within a single run. URLs are added
// at schedule time and never removed, guaranteeing at-most-once fetching.
type Visited interface {
	// Add marks url as scheduled. Returns false if it was already present.
	Add(url string) bool

	// Seen reports whether url has been scheduled.
	Seen(url string) bool

	// Len returns the number of scheduled URLs.
	Len() int
}

// LinkDiscoverer extracts candidate traversal links from a page.
//
// The returned URLs are absolute (relative references resolved against
// baseURL), in document order, deduplicated within the call, restricted to
// baseURL's exact host and exclude anything already in visited. Cross-run
// memoization is not the discoverer's concern.
type LinkDiscoverer interface {
	DiscoverLinks(html string, baseURL string, visited Visited) ([]string, error)
}
