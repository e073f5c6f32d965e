package search

import (
	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/query"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(node query.Node)
	TermPostings(field, term string, docFreq int)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ query.Node)                  {}
func (n *noopMonitor) TermPostings(_, _ string, _ int)     {}
func (n *noopMonitor) Finish(_ []core.SearchResult)        {}
