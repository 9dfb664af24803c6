package pathcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionMap_Put(t *testing.T) {
	m := ExtensionMap{}

	require.NoError(t, m.Put("ns/TEL/1/X-A", "a"))
	require.NoError(t, m.Put("ns/TEL/10/X-A", "b"))
	require.NoError(t, m.Put("ns/TEL/1/X-A", "c"))
	assert.Equal(t, "c", m["ns/TEL/1/X-A"])

	err := m.Put("ns/TEL/1", "whole")
	require.ErrorIs(t, err, ErrAmbiguousPrefix)

	err = m.Put("ns/TEL/1/X-A/deeper", "x")
	require.ErrorIs(t, err, ErrAmbiguousPrefix)

	require.ErrorIs(t, m.Put("ns/TEL/-", "x"), ErrWildcard)

	assert.Equal(t, []string{"ns/TEL/1/X-A", "ns/TEL/10/X-A"}, m.Keys())
}

func TestConflicts(t *testing.T) {
	got := Conflicts([]string{"a/b/c", "a/b-x", "a/b", "z"})
	assert.Equal(t, [][2]string{{"a/b", "a/b/c"}}, got)
	assert.Empty(t, Conflicts([]string{"a", "b"}))
}
