package search

import "strings"

// Suggestion limits.
const (
	maxSuggestions = 5
	minQueryLength = 2
)

// Corpus groups the name collections that autocomplete suggestions are
// drawn from.
type Corpus struct {
	MemoryTitles  []string
	LocationNames []string
	PersonNames   []string
}

// Suggestions returns up to five distinct strings from the corpus whose
// lowercase form contains the lowercase query as a substring, in first-seen
// order across memory titles, location names, and person names. Queries
// shorter than two characters yield no suggestions.
func Suggestions(query string, corpus Corpus) []string {
	if len(query) < minQueryLength {
		return nil
	}

	queryLower := strings.ToLower(query)
	seen := make(map[string]bool)
	var suggestions []string

	add := func(candidates []string) {
		for _, candidate := range candidates {
			if len(suggestions) >= maxSuggestions {
				return
			}
			if candidate == "" || seen[candidate] {
				continue
			}
			if strings.Contains(strings.ToLower(candidate), queryLower) {
				seen[candidate] = true
				suggestions = append(suggestions, candidate)
			}
		}
	}

	add(corpus.MemoryTitles)
	add(corpus.LocationNames)
	add(corpus.PersonNames)

	return suggestions
}
