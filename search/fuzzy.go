package search

import "strings"

// relevanceFloor is the similarity below which an edit-distance match is
// discarded as noise rather than surfaced with a near-zero score.
const relevanceFloor = 0.4

// FuzzyScore returns a similarity score in [0,1] between query and target.
//
// An exact match (after lowercasing and trimming) scores 1. Substring
// containment scores in (0.7, 0.9], decreasing as the target grows longer
// than the query; containment is a much stronger signal than edit-distance
// proximity and must outrank it even for long targets. Anything else falls
// back to normalized edit-distance similarity, with scores at or below the
// relevance floor treated as non-matches and returned as 0.
//
// Empty inputs score 0.
func FuzzyScore(query, target string) float64 {
	if query == "" || target == "" {
		return 0
	}

	queryLower := strings.TrimSpace(strings.ToLower(query))
	targetLower := strings.TrimSpace(strings.ToLower(target))
	if queryLower == "" || targetLower == "" {
		return 0
	}

	if queryLower == targetLower {
		return 1
	}

	if strings.Contains(targetLower, queryLower) {
		return 0.9 - float64(len(targetLower)-len(queryLower))/float64(len(targetLower))*0.2
	}

	distance := EditDistance(queryLower, targetLower)
	maxLength := max(len([]rune(queryLower)), len([]rune(targetLower)))

	score := 1 - float64(distance)/float64(maxLength)
	if score <= relevanceFloor {
		return 0
	}
	return score
}
