package altid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ranked struct {
	name string
	pref int
}

func prefOf(r ranked) (int, bool) {
	return r.pref, r.pref != 0
}

func names(rs []ranked) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.name
	}

	return out
}

func TestSortByPreference(t *testing.T) {
	tests := []struct {
		name     string
		input    []ranked
		expected []string
	}{
		{
			name:     "ascending with absent last",
			input:    []ranked{{"a", 0}, {"b", 3}, {"c", 1}, {"d", 0}},
			expected: []string{"c", "b", "a", "d"},
		},
		{
			name:     "ties keep input order",
			input:    []ranked{{"x", 2}, {"y", 1}, {"z", 2}, {"w", 1}},
			expected: []string{"y", "w", "x", "z"},
		},
		{
			name:     "empty",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted, err := SortByPreference(tt.input, prefOf)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(sorted))
		})
	}
}

func TestSortByPreference_Idempotent(t *testing.T) {
	input := []ranked{{"a", 5}, {"b", 0}, {"c", 1}, {"d", 5}}

	once, err := SortByPreference(input, prefOf)
	require.NoError(t, err)

	twice, err := SortByPreference(once, prefOf)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, "a", input[0].name, "input must not be reordered")
}

func TestSortByPreference_StableUnderPermutation(t *testing.T) {
	first, err := SortByPreference([]ranked{{"p", 2}, {"q", 2}, {"r", 1}}, prefOf)
	require.NoError(t, err)

	second, err := SortByPreference([]ranked{{"r", 1}, {"p", 2}, {"q", 2}}, prefOf)
	require.NoError(t, err)

	assert.Equal(t, names(first), names(second))
}

func TestSortByPreference_OutOfRange(t *testing.T) {
	_, err := SortByPreference([]ranked{{"a", 1}, {"b", 101}}, prefOf)
	require.ErrorIs(t, err, ErrPreferenceRange)
	assert.Contains(t, err.Error(), "101")

	_, err = SortByPreference([]ranked{{"a", -3}}, prefOf)
	require.ErrorIs(t, err, ErrPreferenceRange)
}

func TestCheckPreference(t *testing.T) {
	require.NoError(t, CheckPreference(1))
	require.NoError(t, CheckPreference(100))
	require.ErrorIs(t, CheckPreference(0), ErrPreferenceRange)
	require.ErrorIs(t, CheckPreference(101), ErrPreferenceRange)
}
