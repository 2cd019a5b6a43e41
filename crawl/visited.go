package crawl

import "github.com/fwojciec/harvest"

// Compile-time interface verification.
var _ harvest.Visited = (*Visited)(nil)

// Visited is an exact-membership URL set. Exactness matters: a false
// positive would silently skip a page, so a probabilistic filter is not an
// option here. The set only grows for the lifetime of a run.
type Visited struct {
	urls map[string]struct{}
}

// NewVisited creates an empty Visited set.
func NewVisited() *Visited {
	return &Visited{urls: make(map[string]struct{})}
}

// Add marks url as scheduled. Returns false if it was already present.
func (v *Visited) Add(url string) bool {
	if _, ok := v.urls[url]; ok {
		return false
	}
	v.urls[url] = struct{}{}
	return true
}

// Seen reports whether url has been scheduled.
func (v *Visited) Seen(url string) bool {
	_, ok := v.urls[url]
	return ok
}

// Len returns the number of scheduled URLs.
func (v *Visited) Len() int {
	return len(v.urls)
}
