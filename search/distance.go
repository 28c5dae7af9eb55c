package search

// EditDistance returns the Levenshtein edit distance between a and b: the
// minimum number of single-character insertions, deletions, and substitutions
// needed to transform one into the other. It is case-sensitive; callers that
// want case-insensitive matching normalize first.
//
// The distance is symmetric, zero only for equal strings, and satisfies the
// triangle inequality. Both inputs may be empty, in which case the distance
// is the length of the other string.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	lenA := len(ra)
	lenB := len(rb)

	// (lenB+1) x (lenA+1) dynamic-programming table
	matrix := make([][]int, lenB+1)
	for i := 0; i <= lenB; i++ {
		matrix[i] = make([]int, lenA+1)
		matrix[i][0] = i
	}
	for j := 0; j <= lenA; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= lenB; i++ {
		for j := 1; j <= lenA; j++ {
			if rb[i-1] == ra[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
			} else {
				matrix[i][j] = min(
					matrix[i-1][j-1]+1, // substitution
					matrix[i][j-1]+1,   // insertion
					matrix[i-1][j]+1,   // deletion
				)
			}
		}
	}

	return matrix[lenB][lenA]
}
