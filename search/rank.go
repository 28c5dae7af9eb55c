package search

import (
	"slices"
	"strings"

	"github.com/poiesic/keepsake/core"
)

// typePriority breaks score ties between result categories:
// memories > locations > tasks > people. Unknown types rank last.
var typePriority = map[core.ResultType]int{
	core.ResultTypeMemory:   4,
	core.ResultTypeLocation: 3,
	core.ResultTypeTask:     2,
	core.ResultTypePerson:   1,
}

// SortByRelevance orders results in place, most relevant first:
//
//  1. results whose title equals the query case-insensitively
//  2. descending score
//  3. descending type priority
//  4. descending date, when both results carry one
//
// The sort is stable, so results tied at every tier keep their input order.
func SortByRelevance(results []*core.SearchResult, query string) {
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		aExactTitle := strings.EqualFold(a.Title, query)
		bExactTitle := strings.EqualFold(b.Title, query)
		if aExactTitle && !bExactTitle {
			return -1
		}
		if !aExactTitle && bExactTitle {
			return 1
		}

		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}

		aPriority := typePriority[a.Type]
		bPriority := typePriority[b.Type]
		if aPriority != bPriority {
			return bPriority - aPriority
		}

		if !a.Date.IsZero() && !b.Date.IsZero() {
			return b.Date.Compare(a.Date)
		}

		return 0
	})
}
