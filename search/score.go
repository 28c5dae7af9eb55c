package search

import "strings"

// Weights for combining the two similarity signals per field.
const (
	fuzzyWeight    = 0.7
	semanticWeight = 0.3

	// exactMatchBoost is added once when any searched field contains the
	// raw lowercased query as a substring. The final score stays capped at 1.
	exactMatchBoost = 0.2
)

// FieldValue is a searchable field value: a single string or a list of
// strings. Both shapes flow through the same per-term scoring path so that
// scalar and array fields rank identically.
type FieldValue interface {
	terms() []string
}

// Scalar is a single-string field value.
type Scalar string

func (s Scalar) terms() []string {
	if s == "" {
		return nil
	}
	return []string{string(s)}
}

// List is a field value holding multiple strings, such as the people
// attached to a memory.
type List []string

func (l List) terms() []string { return l }

// Item is a schemaless searchable record mapping field names to values.
// Callers decide which fields exist; the engine assumes no fixed shape.
type Item map[string]FieldValue

// Score computes the relevance of item for query as the maximum combined
// fuzzy/semantic score over the named fields. When fields is empty every
// field of the item is searched. If any field term contains the lowercased
// query as a substring, the exact-match boost is applied; the result never
// exceeds 1.
//
// An empty query or item scores 0.
func Score(query string, item Item, fields []string) float64 {
	if query == "" || len(item) == 0 {
		return 0
	}

	searchFields := fields
	if len(searchFields) == 0 {
		searchFields = make([]string, 0, len(item))
		for field := range item {
			searchFields = append(searchFields, field)
		}
	}

	queryLower := strings.ToLower(query)

	var maxScore float64
	hasExactMatch := false

	for _, field := range searchFields {
		value, ok := item[field]
		if !ok || value == nil {
			continue
		}
		for _, term := range value.terms() {
			if term == "" {
				continue
			}
			combined := FuzzyScore(query, term)*fuzzyWeight + SemanticScore(query, term)*semanticWeight
			maxScore = max(maxScore, combined)

			if strings.Contains(strings.ToLower(term), queryLower) {
				hasExactMatch = true
			}
		}
	}

	if hasExactMatch {
		maxScore = min(1, maxScore+exactMatchBoost)
	}

	return maxScore
}
