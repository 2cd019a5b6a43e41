package mock

import "github.com/fwojciec/harvest"

var _ harvest.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer is a mock implementation of harvest.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverLinksFn func(html string, baseURL string, visited harvest.Visited) ([]string, error)
}

func (d *LinkDiscoverer) DiscoverLinks(html string, baseURL string, visited harvest.Visited) ([]string, error) {
	return d.DiscoverLinksFn(html, baseURL, visited)
}
