package search

import "github.com/poiesic/keepsake/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterCandidateLoad(memories, locations, tasks, people int)
	CandidateScored(result *core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterCandidateLoad(_, _, _, _ int)    {}
func (n *noopMonitor) CandidateScored(_ *core.SearchResult) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)        {}
