package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// At returns s[i] or the zero value when i is out of range.
func At[S ~[]E, E any](s S, i int) E {
	if i < 0 || i >= len(s) {
		var zero E
		return zero
	}

	return s[i]
}
