package pathcodec

import (
	"fmt"
	"sort"
)

// ExtensionMap is a prefix-free map from extension path to value.
type ExtensionMap map[string]any

// Put stores v under path. It fails when the path is invalid or when it would
// be a strict prefix of an existing key, or the other way round. Storing the
// same key again replaces the value.
func (m ExtensionMap) Put(path string, v any) error {
	if err := Validate(path); err != nil {
		return err
	}

	for existing := range m {
		if IsPrefix(existing, path) || IsPrefix(path, existing) {
			return fmt.Errorf("%w: %q and %q", ErrAmbiguousPrefix, existing, path)
		}
	}

	m[path] = v

	return nil
}

// Keys returns the paths in ascending order.
func (m ExtensionMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Conflicts lists every pair of keys where one is a prefix of the other.
func Conflicts(keys []string) [][2]string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	var out [][2]string

	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			if IsPrefix(a, b) {
				out = append(out, [2]string{a, b})
			}
		}
	}

	return out
}
