package altid

import (
	"errors"
	"fmt"
	"slices"
)

// Preference bounds.
const (
	MinPreference = 1
	MaxPreference = 100
)

// ErrPreferenceRange is returned for a preference outside 1..100.
var ErrPreferenceRange = errors.New("preference out of range 1..100")

// CheckPreference validates a preference rank.
func CheckPreference(pref int) error {
	if pref < MinPreference || pref > MaxPreference {
		return fmt.Errorf("%w: %d", ErrPreferenceRange, pref)
	}

	return nil
}

// SortByPreference returns a copy of items ordered by preference ascending.
// Items without a preference go after all ranked items; ties keep their input
// order. The input slice is not modified.
func SortByPreference[T any](items []T, pref func(T) (int, bool)) ([]T, error) {
	for _, it := range items {
		if p, ok := pref(it); ok {
			if err := CheckPreference(p); err != nil {
				return nil, err
			}
		}
	}

	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		pa, okA := pref(a)
		pb, okB := pref(b)

		switch {
		case okA && okB:
			return pa - pb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})

	return out, nil
}
