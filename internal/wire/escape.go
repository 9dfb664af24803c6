package wire

import "strings"

// SplitComponents splits a structured value on unescaped semicolons.
func SplitComponents(v string) []string {
	return splitUnescaped(v, ';')
}

// SplitList splits a value on unescaped commas.
func SplitList(v string) []string {
	return splitUnescaped(v, ',')
}

func splitUnescaped(v string, sep byte) []string {
	var (
		parts   []string
		current strings.Builder
	)

	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\\' && i+1 < len(v) {
			current.WriteByte(c)
			current.WriteByte(v[i+1])
			i++

			continue
		}

		if c == sep {
			parts = append(parts, current.String())
			current.Reset()

			continue
		}

		current.WriteByte(c)
	}

	return append(parts, current.String())
}

// Unescape resolves the vCard text escapes \\, \, \; and \n.
func Unescape(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}

	var b strings.Builder

	b.Grow(len(v))

	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '\\' || i+1 == len(v) {
			b.WriteByte(c)
			continue
		}

		i++
		switch v[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(v[i])
		}
	}

	return b.String()
}

// Escape is the inverse of Unescape.
func Escape(v string) string {
	r := strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`, "\n", `\n`)
	return r.Replace(v)
}

// JoinComponents escapes each component and joins them with semicolons.
func JoinComponents(components []string) string {
	escaped := make([]string, len(components))
	for i, c := range components {
		escaped[i] = Escape(c)
	}

	return strings.Join(escaped, ";")
}

// JoinList escapes each item and joins them with commas.
func JoinList(items []string) string {
	escaped := make([]string, len(items))
	for i, c := range items {
		escaped[i] = Escape(c)
	}

	return strings.Join(escaped, ",")
}
