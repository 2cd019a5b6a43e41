package mock

import "github.com/fwojciec/harvest"

var _ harvest.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of harvest.Strategy.
type Strategy struct {
	ExtractFn func(html string, pageURL string) (harvest.FieldMap, error)
	NameFn    func() string
}

func (s *Strategy) Extract(html string, pageURL string) (harvest.FieldMap, error) {
	return s.ExtractFn(html, pageURL)
}

func (s *Strategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}
