package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_Accessors(t *testing.T) {
	p := NewProperty("tel", "tel:+1-555-0100").
		With("type", "home,voice").
		With("TYPE", "cell").
		With("pref", "2").
		With("altid", "1").
		With("language", "en")

	assert.Equal(t, "TEL", p.Name)
	assert.Equal(t, []string{"home", "voice", "cell"}, p.Types())
	assert.Equal(t, "1", p.AltID())
	assert.Equal(t, "en", p.Language())

	pref, ok, err := p.Pref()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, pref)
}

func TestProperty_Pref(t *testing.T) {
	_, ok, err := NewProperty("EMAIL", "a@example.com").Pref()
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = NewProperty("EMAIL", "a@example.com").With("PREF", "high").Pref()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "high")
}

func TestProperty_WithDoesNotAlias(t *testing.T) {
	base := NewProperty("EMAIL", "a@example.com").With("TYPE", "work")
	derived := base.With("TYPE", "home")

	assert.Equal(t, []string{"work"}, base.Types())
	assert.Equal(t, []string{"work", "home"}, derived.Types())
}

func TestRecord_ByName(t *testing.T) {
	rec := Record{Properties: []Property{
		NewProperty("FN", "A"),
		NewProperty("EMAIL", "a@example.com"),
		NewProperty("email", "b@example.com"),
		NewProperty("TEL", "1"),
	}}

	buckets, order := rec.ByName()

	assert.Equal(t, []string{"FN", "EMAIL", "TEL"}, order)
	require.Len(t, buckets["EMAIL"], 2)
	assert.Equal(t, 1, buckets["EMAIL"][0].Index)
	assert.Equal(t, 2, buckets["EMAIL"][1].Index)
	assert.Equal(t, "b@example.com", buckets["EMAIL"][1].Value)

	fn, ok := rec.First("fn")
	require.True(t, ok)
	assert.Equal(t, "A", fn.Value)
}

func TestParams_Names(t *testing.T) {
	ps := Params{"TYPE": {"work"}, "ALTID": {"1"}, "X-FOO": {"a", "b"}}

	assert.Equal(t, []string{"ALTID", "TYPE", "X-FOO"}, ps.Names())
	assert.Equal(t, "a,b", ps.Joined("x-foo"))
	assert.Equal(t, "", ps.Get("LANGUAGE"))
}
