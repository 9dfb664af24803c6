package altid

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"jscard/internal/common"
)

// ErrAmbiguousAlternate is returned under ConflictError when a group member
// cannot be filed as an overlay.
var ErrAmbiguousAlternate = errors.New("ambiguous alternate representation")

// ConflictPolicy decides what happens to a non-primary member that has no
// language, or whose language is already taken in its group.
type ConflictPolicy string

const (
	// ConflictFirstWins keeps the earlier member and drops the later one.
	ConflictFirstWins ConflictPolicy = "first-wins"
	// ConflictLastWins lets the later member replace the earlier overlay.
	ConflictLastWins ConflictPolicy = "last-wins"
	// ConflictError fails the aggregation.
	ConflictError ConflictPolicy = "error"
)

// IsValid returns true if the policy is a recognized value.
func (p ConflictPolicy) IsValid() bool {
	return p == ConflictFirstWins || p == ConflictLastWins || p == ConflictError
}

// Member is one property instance projected to T.
type Member[T any] struct {
	Value    T
	AltID    string
	Language string
	Pref     int
	HasPref  bool
	// Index identifies the member to the caller, typically its positional
	// index among properties of the same name. Indexes must be unique.
	Index int
}

// Localized is the result for one ALTID group.
type Localized[T any] struct {
	Primary      T
	PrimaryIndex int
	Language     string
	Pref         int
	HasPref      bool
	AltID        string
	Overlays     map[string]T
	// OverlayIndex maps an overlay language to the member index it came from.
	OverlayIndex map[string]int
	// Dropped lists the indexes of members that were not kept.
	Dropped []int
}

// Options tune primary selection and conflict handling.
type Options struct {
	// DefaultLanguage, when set, makes members in that language preferred
	// primaries after members without any language.
	DefaultLanguage string
	Conflict        ConflictPolicy
}

// Aggregate groups members by ALTID. Members without an ALTID form their own
// group. Groups are returned in order of their primary's first appearance.
func Aggregate[T any](members []Member[T], opts Options) ([]Localized[T], error) {
	if opts.Conflict == "" {
		opts.Conflict = ConflictFirstWins
	}

	var (
		order  []string
		groups = make(map[string][]Member[T])
	)

	for i, m := range members {
		key := "\x00" + fmt.Sprint(i)
		if m.AltID != "" {
			key = m.AltID
		}

		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}

		groups[key] = append(groups[key], m)
	}

	out := make([]Localized[T], 0, len(order))

	for _, key := range order {
		loc, err := aggregateGroup(groups[key], opts)
		if err != nil {
			return nil, err
		}

		out = append(out, loc)
	}

	sortByPrimaryIndex(out)

	return out, nil
}

func aggregateGroup[T any](group []Member[T], opts Options) (Localized[T], error) {
	sorted, err := SortByPreference(group, func(m Member[T]) (int, bool) { return m.Pref, m.HasPref })
	if err != nil {
		return Localized[T]{}, err
	}

	primary := pickPrimary(sorted, opts.DefaultLanguage)
	p := sorted[primary]

	loc := Localized[T]{
		Primary:      p.Value,
		PrimaryIndex: p.Index,
		Language:     p.Language,
		Pref:         p.Pref,
		HasPref:      p.HasPref,
		AltID:        p.AltID,
	}

	// Overlays are filed in input order so that first/last-wins refer to the
	// source order, not the preference order.
	for _, m := range group {
		if m.Index == p.Index {
			continue
		}

		lang := m.Language
		if lang == "" || strings.EqualFold(lang, p.Language) {
			if err := loc.conflict(m, opts.Conflict); err != nil {
				return Localized[T]{}, err
			}

			continue
		}

		if _, taken := loc.Overlays[lang]; taken {
			if err := loc.conflict(m, opts.Conflict); err != nil {
				return Localized[T]{}, err
			}

			continue
		}

		if loc.Overlays == nil {
			loc.Overlays = make(map[string]T)
			loc.OverlayIndex = make(map[string]int)
		}

		loc.Overlays[lang] = m.Value
		loc.OverlayIndex[lang] = m.Index
	}

	return loc, nil
}

// conflict applies the policy to member m, which either has no usable
// language or collides with an overlay (or the primary) already filed.
func (l *Localized[T]) conflict(m Member[T], policy ConflictPolicy) error {
	switch policy {
	case ConflictError:
		return fmt.Errorf("%w: altid %q member %d (language %q)", ErrAmbiguousAlternate, m.AltID, m.Index, m.Language)
	case ConflictLastWins:
		lang := m.Language
		if prev, ok := l.OverlayIndex[lang]; ok && lang != "" {
			l.Overlays[lang] = m.Value
			l.OverlayIndex[lang] = m.Index
			l.Dropped = append(l.Dropped, prev)

			return nil
		}

		// The primary is never replaced.
		l.Dropped = append(l.Dropped, m.Index)
	default:
		l.Dropped = append(l.Dropped, m.Index)
	}

	return nil
}

// pickPrimary returns the position of the primary member in a
// preference-sorted group.
func pickPrimary[T any](sorted []Member[T], defaultLang string) int {
	for i, m := range sorted {
		if m.Language == "" {
			return i
		}
	}

	if defaultLang != "" {
		for i, m := range sorted {
			if strings.EqualFold(m.Language, defaultLang) {
				return i
			}
		}
	}

	return 0
}

func sortByPrimaryIndex[T any](locs []Localized[T]) {
	slices.SortStableFunc(locs, func(a, b Localized[T]) int {
		return a.PrimaryIndex - b.PrimaryIndex
	})
}

// Languages returns the overlay languages in ascending order.
func (l Localized[T]) Languages() []string {
	return common.SortedKeys(l.Overlays)
}
