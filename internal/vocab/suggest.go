package vocab

// minSimilarity is the lowest normalized similarity a suggestion may have.
const minSimilarity = 0.6

// Suggest returns the registered token of tag closest to token, for hints
// on unknown tokens. ok is false when nothing is similar enough.
func Suggest(tag Tag, token string) (string, bool) {
	norm := NormalizeToken(token)
	if norm == "" {
		return "", false
	}

	best, bestScore := "", 0.0

	for _, key := range Allowed(tag) {
		score := similarity(norm, NormalizeToken(key))
		if score > bestScore {
			best, bestScore = key, score
		}
	}

	if bestScore < minSimilarity {
		return "", false
	}

	return best, true
}

// similarity is 1 - distance/max(len(a), len(b)); 1.0 means identical.
func similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(a, b))/float64(max(len(a), len(b)))
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Keep a the shorter string; two rows are enough.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
