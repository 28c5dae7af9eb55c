package search

import "regexp"

// Highlight wraps every case-insensitive occurrence of query in text with
// <mark> tags for display. Regex metacharacters in the query are escaped, so
// any user input is matched literally. If either argument is empty the text
// is returned unchanged.
//
// The caller is responsible for sanitizing the surrounding text; Highlight
// only wraps fragments of it.
func Highlight(text, query string) string {
	if text == "" || query == "" {
		return text
	}

	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
	return pattern.ReplaceAllString(text, "<mark>$0</mark>")
}
