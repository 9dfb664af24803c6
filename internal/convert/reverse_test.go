package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jscard/internal/jscontact"
	"jscard/internal/wire"
)

func TestToRecord_RoundTrip(t *testing.T) {
	c := newConverter(t)

	res := convertRecord(t, c,
		prop("UID", "urn:uuid:round-trip"),
		prop("FN", "Jane", "ALTID=1"),
		prop("FN", "Jeanne", "ALTID=1", "LANGUAGE=fr"),
		prop("TEL", "+1-555-0100", "TYPE=home,cell,x-custom"),
		prop("EMAIL", "jane@example.com", "X-PARAM=abc"),
		prop("ADR", ";;54321 Oak St;Reston;VA;20190;USA", "TYPE=work"),
		grouped("g1", prop("X-FOO", "bar", "X-P=1")),
		prop("BDAY", "--0415"),
	)

	rec, err := c.ToRecord(res.Card)
	require.NoError(t, err)

	byName, _ := rec.ByName()

	fns := byName["FN"]
	require.Len(t, fns, 2)
	assert.Equal(t, "Jane", fns[0].Value)
	assert.Equal(t, "1", fns[0].AltID())
	assert.Empty(t, fns[0].Language())
	assert.Equal(t, "Jeanne", fns[1].Value)
	assert.Equal(t, "1", fns[1].AltID())
	assert.Equal(t, "fr", fns[1].Language())

	require.Len(t, byName["TEL"], 1)
	assert.Equal(t, []string{"home", "cell", "x-custom"}, byName["TEL"][0].Types())

	require.Len(t, byName["EMAIL"], 1)
	assert.Equal(t, "abc", byName["EMAIL"][0].Get("X-PARAM"))

	require.Len(t, byName["ADR"], 1)
	adr := byName["ADR"][0]
	assert.Equal(t, ";;54321 Oak St;Reston;VA;20190;USA", adr.Value)
	assert.Empty(t, adr.Get(wire.ParamLabel))

	require.Len(t, byName["X-FOO"], 1)
	assert.Equal(t, "g1", byName["X-FOO"][0].Group)
	assert.Equal(t, "1", byName["X-FOO"][0].Get("X-P"))

	require.Len(t, byName["BDAY"], 1)
	assert.Equal(t, "--0415", byName["BDAY"][0].Value)

	again, err := c.ToCard(rec)
	require.NoError(t, err)
	assert.Equal(t, res.Card, again.Card)
}

func TestToRecord_LabelOnlyWhenDifferent(t *testing.T) {
	c := newConverter(t)

	card := jscontact.NewCard("urn:uuid:label")
	card.Name = &jscontact.Name{Full: "Jane"}
	card.Addresses = map[string]*jscontact.Address{
		"ADR-1": {
			Components: []jscontact.AddressComponent{{Kind: jscontact.AddrLocality, Value: "Reston"}},
			Full:       "Somewhere near Reston",
			TimeZone:   "Etc/GMT+5",
		},
	}

	rec, err := c.ToRecord(card)
	require.NoError(t, err)

	byName, _ := rec.ByName()
	require.Len(t, byName["ADR"], 1)
	assert.Equal(t, "Somewhere near Reston", byName["ADR"][0].Get(wire.ParamLabel))
	assert.Equal(t, "Etc/GMT+5", byName["ADR"][0].Get(wire.ParamTZ))
}

func TestToRecord_ExtensionsOutsideNamespace(t *testing.T) {
	c := newConverter(t)

	card := jscontact.NewCard("urn:uuid:ext")
	card.Name = &jscontact.Name{Full: "Jane"}
	card.SetExtension("example.com/custom", "kept in the card only")
	card.SetExtension(ns+"TEL/3/TYPE", "x-orphan")

	rec, err := c.ToRecord(card)
	require.NoError(t, err)

	for _, p := range rec.Properties {
		assert.NotEqual(t, "TEL", p.Name)
		assert.NotContains(t, p.Value, "kept in the card only")
	}
}

func TestToRecord_InvalidLocalization(t *testing.T) {
	c := newConverter(t)

	card := jscontact.NewCard("urn:uuid:bad-loc")
	card.Name = &jscontact.Name{Full: "Jane"}
	card.AddLocalization("de", "nosuch/deep/path", "x")

	_, err := c.ToRecord(card)
	require.ErrorIs(t, err, ErrInvalidValue)

	var ce *ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "urn:uuid:bad-loc", ce.Record)
}

func TestToRecord_ParametersFollowTheirEntity(t *testing.T) {
	c := newConverter(t)

	res := convertRecord(t, c,
		prop("FN", "Jane"),
		prop("ADR", ";;1 Main St;Rome;;;Italy", "ALTID=1"),
		prop("ADR", ";;54321 Oak St;Reston;VA;20190;USA", "X-FOO=keep-me"),
		prop("ADR", ";;Via Main 1;Roma;;;Italia", "ALTID=1", "LANGUAGE=it"),
	)
	assert.Equal(t, "keep-me", res.Card.Extensions[ns+"ADR/2/X-FOO"])
	assert.Equal(t, map[string]any{
		"ADR/2": map[string]any{"path": "addresses/ADR-2"},
	}, res.Card.Extensions[SourcesKey])

	rec, err := c.ToRecord(res.Card)
	require.NoError(t, err)

	byName, _ := rec.ByName()
	require.Len(t, byName["ADR"], 3)

	for _, p := range byName["ADR"] {
		if strings.Contains(p.Value, "Oak St") {
			assert.Equal(t, "keep-me", p.Get("X-FOO"))
		} else {
			assert.Empty(t, p.Get("X-FOO"), p.Value)
		}
	}

	again, err := c.ToCard(rec)
	require.NoError(t, err)
	assert.Equal(t, res.Card.Addresses, again.Card.Addresses)
	assert.Equal(t, res.Card.Localizations, again.Card.Localizations)
}

func TestToRecord_ParameterOfOverlay(t *testing.T) {
	c := newConverter(t)

	res := convertRecord(t, c,
		prop("FN", "Jane"),
		prop("TEL", "+1-555-0100"),
		prop("TEL", "+39-06-555", "ALTID=1"),
		prop("TEL", "+39-06-555", "ALTID=1", "LANGUAGE=it", "X-NOTE=ufficio"),
	)
	assert.Equal(t, map[string]any{
		"TEL/3": map[string]any{"path": "phones/TEL-2", "language": "it"},
	}, res.Card.Extensions[SourcesKey])

	rec, err := c.ToRecord(res.Card)
	require.NoError(t, err)

	byName, _ := rec.ByName()
	require.Len(t, byName["TEL"], 3)

	for _, p := range byName["TEL"] {
		if p.Language() == "it" {
			assert.Equal(t, "ufficio", p.Get("X-NOTE"))
		} else {
			assert.Empty(t, p.Get("X-NOTE"))
		}
	}
}

func TestToRecord_RelationLocalizations(t *testing.T) {
	c := newConverter(t)

	res := convertRecord(t, c,
		prop("FN", "Jane"),
		prop("RELATED", "urn:uuid:bob", "ALTID=1", "TYPE=friend"),
		prop("RELATED", "urn:uuid:bob", "ALTID=1", "LANGUAGE=de", "TYPE=colleague"),
	)
	require.Contains(t, res.Card.Localizations["de"], "relatedTo/urn:uuid:bob")

	rec, err := c.ToRecord(res.Card)
	require.NoError(t, err)

	byName, _ := rec.ByName()
	require.Len(t, byName["RELATED"], 2)
	assert.Equal(t, []string{"friend"}, byName["RELATED"][0].Types())
	assert.Empty(t, byName["RELATED"][0].Language())
	assert.Equal(t, []string{"colleague"}, byName["RELATED"][1].Types())
	assert.Equal(t, "de", byName["RELATED"][1].Language())
	assert.Equal(t, byName["RELATED"][0].AltID(), byName["RELATED"][1].AltID())

	again, err := c.ToCard(rec)
	require.NoError(t, err)
	assert.Equal(t, res.Card.RelatedTo, again.Card.RelatedTo)
	assert.Equal(t, res.Card.Localizations, again.Card.Localizations)
}

func TestToRecord_OffsetTimeZoneRoundTrip(t *testing.T) {
	c := newConverter(t)

	res := convertRecord(t, c,
		prop("FN", "Jane"),
		prop("TZ", "+05:30"),
	)
	require.Len(t, res.Card.Addresses, 1)
	assert.Equal(t, "Etc/GMT-5:30", res.Card.Addresses["ADR-1"].TimeZone)

	rec, err := c.ToRecord(res.Card)
	require.NoError(t, err)

	byName, _ := rec.ByName()
	require.Len(t, byName["ADR"], 1)
	assert.Equal(t, "+05:30", byName["ADR"][0].Get(wire.ParamTZ))

	again, err := c.ToCard(rec)
	require.NoError(t, err)
	require.Len(t, again.Card.Addresses, 1)
	assert.Equal(t, "Etc/GMT-5:30", again.Card.Addresses["ADR-1"].TimeZone)
	assert.NotContains(t, again.Card.Extensions, ns+"ADR/1/TZ")
}

func TestSortIDs(t *testing.T) {
	got := sortIDs([]string{"TEL-10", "TEL-2", "ADR-1", "home", "TEL-1"})
	assert.Equal(t, []string{"ADR-1", "TEL-1", "TEL-2", "TEL-10", "home"}, got)
}
