package pathcodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator joins path segments.
const Separator = "/"

// Wildcard is the "last element" token.
const Wildcard = "-"

var (
	// ErrEmptyPath is returned for an empty path or an empty segment.
	ErrEmptyPath = errors.New("empty path")
	// ErrWildcard is returned for a path ending in the wildcard token.
	ErrWildcard = errors.New("path ends in wildcard index")
	// ErrAmbiguousPrefix is returned when one path is a prefix of another.
	ErrAmbiguousPrefix = errors.New("path is a prefix of another path")
)

// Codec encodes extension paths under a namespace.
type Codec struct {
	Namespace string
}

// New creates a Codec. Trailing separators on the namespace are dropped.
func New(namespace string) Codec {
	return Codec{Namespace: strings.TrimRight(namespace, Separator)}
}

// Encode builds "namespace/property(/index)?(/parameter)?". An index below 1
// and an empty parameter are omitted.
func (c Codec) Encode(property string, index int, parameter string) string {
	segs := make([]string, 0, 4)
	if c.Namespace != "" {
		segs = append(segs, c.Namespace)
	}

	segs = append(segs, strings.ToUpper(property))

	if index > 0 {
		segs = append(segs, strconv.Itoa(index))
	}

	if parameter != "" {
		segs = append(segs, strings.ToUpper(parameter))
	}

	return strings.Join(segs, Separator)
}

// Ref is a decoded extension key.
type Ref struct {
	Property  string
	Index     int
	Parameter string
}

// Parse is the inverse of Encode. ok is false for paths outside the
// namespace or with an unexpected shape.
func (c Codec) Parse(path string) (Ref, bool) {
	rest := path
	if c.Namespace != "" {
		var found bool

		rest, found = strings.CutPrefix(path, c.Namespace+Separator)
		if !found {
			return Ref{}, false
		}
	}

	segs := strings.Split(rest, Separator)
	if len(segs) == 0 || len(segs) > 3 || segs[0] == "" {
		return Ref{}, false
	}

	ref := Ref{Property: segs[0]}

	switch len(segs) {
	case 2:
		if n, err := strconv.Atoi(segs[1]); err == nil {
			ref.Index = n
		} else {
			ref.Parameter = segs[1]
		}
	case 3:
		n, err := strconv.Atoi(segs[1])
		if err != nil {
			return Ref{}, false
		}

		ref.Index = n
		ref.Parameter = segs[2]
	}

	if ref.Parameter == "" && len(segs) == 3 {
		return Ref{}, false
	}

	return ref, true
}

// Split returns the segments of a path.
func Split(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, Separator)
}

// Join joins segments into a path.
func Join(segs ...string) string {
	return strings.Join(segs, Separator)
}

// Validate checks that a path is non-empty, has no empty segment and does
// not end in the wildcard token.
func Validate(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	segs := Split(path)
	for _, s := range segs {
		if s == "" {
			return fmt.Errorf("invalid path %q: %w", path, ErrEmptyPath)
		}
	}

	if segs[len(segs)-1] == Wildcard {
		return fmt.Errorf("invalid path %q: %w", path, ErrWildcard)
	}

	return nil
}

// HasWildcard reports whether any segment is the wildcard token.
func HasWildcard(path string) bool {
	for _, s := range Split(path) {
		if s == Wildcard {
			return true
		}
	}

	return false
}

// IsPrefix reports whether prefix is a strict segment-wise prefix of path.
// "a/b" is a prefix of "a/b/c" but not of "a/bc".
func IsPrefix(prefix, path string) bool {
	return len(path) > len(prefix) && strings.HasPrefix(path, prefix+Separator)
}

// Decode resolves path against a generic JSON tree. At each object the
// longest run of remaining segments that forms an existing key is consumed;
// arrays take 0-based ordinal segments. ok is false when any segment fails
// to resolve; that is not an error by itself.
func Decode(path string, root any) (any, bool) {
	if path == "" {
		return root, true
	}

	return decode(Split(path), root)
}

func decode(segs []string, node any) (any, bool) {
	if len(segs) == 0 {
		return node, true
	}

	switch n := node.(type) {
	case map[string]any:
		for end := len(segs); end > 0; end-- {
			child, ok := n[Join(segs[:end]...)]
			if !ok {
				continue
			}

			if found, ok := decode(segs[end:], child); ok {
				return found, true
			}
		}

		return nil, false
	case []any:
		i, err := strconv.Atoi(segs[0])
		if err != nil || i < 0 || i >= len(n) {
			return nil, false
		}

		return decode(segs[1:], n[i])
	default:
		return nil, false
	}
}
