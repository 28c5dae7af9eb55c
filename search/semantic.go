package search

import "strings"

// synonymTable maps canonical memory-journal terms to their synonym groups.
// It is defined once at process start and never mutated; a word matching
// either a key or one of its synonyms expands to the whole group.
var synonymTable = map[string][]string{
	"home":       {"house", "residence", "place", "apartment", "condo"},
	"family":     {"relatives", "parents", "siblings", "children", "spouse"},
	"vacation":   {"holiday", "trip", "travel", "journey", "getaway"},
	"birthday":   {"anniversary", "celebration", "party", "special day"},
	"work":       {"job", "office", "career", "employment", "workplace"},
	"school":     {"education", "university", "college", "academy", "learning"},
	"hospital":   {"medical", "clinic", "doctor", "health", "treatment"},
	"restaurant": {"dining", "food", "meal", "cafe", "eatery"},
	"park":       {"garden", "outdoor", "nature", "recreation", "green space"},
	"beach":      {"ocean", "sea", "shore", "coast", "waterfront"},
	"wedding":    {"marriage", "ceremony", "celebration", "union"},
	"graduation": {"achievement", "completion", "milestone", "success"},
}

// ExpandKeywords splits text on whitespace, lowercases the words, and
// augments them with synonym groups from the built-in table. A word hitting
// a group as either its canonical term or one of its synonyms pulls in the
// canonical term plus every synonym, so expansion is idempotent per word.
//
// Empty text yields an empty set.
func ExpandKeywords(text string) map[string]bool {
	keywords := make(map[string]bool)
	if text == "" {
		return keywords
	}

	words := strings.Fields(strings.ToLower(text))
	for _, word := range words {
		keywords[word] = true
	}

	for _, word := range words {
		if synonyms, ok := synonymTable[word]; ok {
			for _, synonym := range synonyms {
				keywords[synonym] = true
			}
		}

		// The word may itself be a synonym of a canonical term.
		for key, synonyms := range synonymTable {
			for _, synonym := range synonyms {
				if synonym == word {
					keywords[key] = true
					for _, s := range synonyms {
						keywords[s] = true
					}
					break
				}
			}
		}
	}

	return keywords
}

// SemanticScore returns a Jaccard-style overlap in [0,1] between the expanded
// keyword sets of query and target. Intersection is counted loosely: a pair
// of keywords matches when either contains the other as a substring, which
// catches morphological variants (trip/tripping) without stemming at the
// cost of over-counting short keywords.
//
// Empty inputs score 0.
func SemanticScore(query, target string) float64 {
	if query == "" || target == "" {
		return 0
	}

	queryKeywords := ExpandKeywords(query)
	targetKeywords := ExpandKeywords(target)
	if len(queryKeywords) == 0 || len(targetKeywords) == 0 {
		return 0
	}

	intersection := 0
	for word := range queryKeywords {
		for targetWord := range targetKeywords {
			if strings.Contains(targetWord, word) || strings.Contains(word, targetWord) {
				intersection++
				break
			}
		}
	}

	union := len(targetKeywords)
	for word := range queryKeywords {
		if !targetKeywords[word] {
			union++
		}
	}

	return float64(intersection) / float64(union)
}
