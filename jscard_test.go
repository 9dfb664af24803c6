package jscard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jscard/internal/config"
	"jscard/internal/convert"
	"jscard/internal/jscontact"
	"jscard/internal/localize"
	"jscard/internal/wire"
)

func record(props ...wire.Property) wire.Record {
	return wire.Record{Properties: props}
}

func TestToStructured(t *testing.T) {
	card, err := ToStructured(record(
		wire.NewProperty("UID", "urn:uuid:jane"),
		wire.NewProperty("FN", "Jane Doe"),
		wire.NewProperty("EMAIL", "jane@example.com").With("TYPE", "work"),
	), config.Default())
	require.NoError(t, err)

	assert.Equal(t, "urn:uuid:jane", card.UID)
	assert.Equal(t, "Jane Doe", card.Name.Full)
	assert.Equal(t, "jane@example.com", card.Emails["EMAIL-1"].Address)
}

func TestToStructured_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.AltIDConflict = "coin-flip"

	_, err := ToStructured(record(wire.NewProperty("FN", "Jane")), cfg)
	assert.Error(t, err)
}

func TestToStructuredBatch_Groups(t *testing.T) {
	recs := []wire.Record{
		record(wire.NewProperty("UID", "a"), wire.NewProperty("FN", "Alice")),
		record(wire.NewProperty("UID", "b"), wire.NewProperty("FN", "Bob")),
		record(
			wire.NewProperty("UID", "g"),
			wire.NewProperty("FN", "Friends"),
			wire.NewProperty("KIND", "group"),
			wire.NewProperty("MEMBER", "a"),
			wire.NewProperty("MEMBER", "b"),
		),
		record(wire.NewProperty("UID", "acme"), wire.NewProperty("FN", "Acme"), wire.NewProperty("KIND", "group")),
	}

	entries, err := ToStructuredBatch(context.Background(), recs, config.Default())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	grp := entries[0].Group
	require.NotNil(t, grp)
	assert.Equal(t, "g", grp.UID)
	assert.Equal(t, "Friends", grp.Name)
	require.Len(t, grp.Members, 2)
	assert.Equal(t, "Alice", grp.Members[0].Card.Name.Full)
	assert.Equal(t, "Bob", grp.Members[1].Card.Name.Full)

	require.NotNil(t, entries[1].Card)
	assert.Equal(t, "acme", entries[1].UID())
	assert.Equal(t, jscontact.KindOrg, entries[1].Card.Kind)
}

func TestToStructuredBatch_UnrecognizedKind(t *testing.T) {
	recs := []wire.Record{
		record(
			wire.NewProperty("UID", "urn:uuid:g"),
			wire.NewProperty("FN", "Team"),
			wire.NewProperty("KIND", "x-team"),
			wire.NewProperty("MEMBER", "urn:uuid:a"),
		),
		record(wire.NewProperty("UID", "urn:uuid:a"), wire.NewProperty("FN", "Alice")),
	}

	entries, err := ToStructuredBatch(context.Background(), recs, config.Default())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	team := entries[0].Card
	require.NotNil(t, team)
	assert.Equal(t, "urn:uuid:g", team.UID)
	assert.Empty(t, team.Kind)
	assert.Empty(t, team.Members)
	assert.Contains(t, team.Extensions, "ietf.org/rfc6350/KIND/1")
	assert.Contains(t, team.Extensions, "ietf.org/rfc6350/MEMBER/1")

	require.NotNil(t, entries[1].Card)
	assert.Equal(t, "urn:uuid:a", entries[1].UID())
}

func TestToStructuredBatch_WithResults(t *testing.T) {
	recs := []wire.Record{
		record(wire.NewProperty("UID", "a"), wire.NewProperty("FN", "Alice"), wire.NewProperty("X-MOOD", "calm")),
		record(wire.NewProperty("UID", "b"), wire.NewProperty("FN", "Bob")),
	}

	var uids []string

	var diags int

	_, err := ToStructuredBatch(context.Background(), recs, config.Default(), WithResults(func(res convert.Result) {
		uids = append(uids, res.Card.UID)
		diags += len(res.Diagnostics.All())
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, uids)
	assert.Positive(t, diags)
}

func TestToStructuredBatch_TolerateRecordErrors(t *testing.T) {
	recs := []wire.Record{
		record(wire.NewProperty("UID", "a"), wire.NewProperty("FN", "Alice")),
		record(wire.NewProperty("UID", "broken")),
	}

	_, err := ToStructuredBatch(context.Background(), recs, config.Default())
	require.ErrorIs(t, err, convert.ErrMissingProperty)

	cfg := config.Default()
	cfg.TolerateRecordErrors = true

	entries, err := ToStructuredBatch(context.Background(), recs, cfg)

	var be *convert.BatchError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, []int{1}, be.Failed)

	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].UID())
}

func TestToWire(t *testing.T) {
	cfg := config.Default()

	card, err := ToStructured(record(
		wire.NewProperty("UID", "urn:uuid:jane"),
		wire.NewProperty("FN", "Jane Doe"),
		wire.NewProperty("FN", "ジェーン").With("ALTID", "1").With("LANGUAGE", "ja"),
		wire.NewProperty("X-MASCOT", "gopher"),
	), cfg)
	require.NoError(t, err)

	rec, err := ToWire(card, cfg)
	require.NoError(t, err)

	byName, _ := rec.ByName()
	require.Len(t, byName["FN"], 2)
	require.Len(t, byName["X-MASCOT"], 1)
	assert.Equal(t, "gopher", byName["X-MASCOT"][0].Value)
}

func TestValidateLocalizations(t *testing.T) {
	card := jscontact.NewCard("urn:uuid:v")
	card.Name = &jscontact.Name{Full: "Jane"}

	assert.Empty(t, ValidateLocalizations(card))

	card.AddLocalization("de", "name/full", []any{"Johanna"})

	violations := ValidateLocalizations(card)
	require.Len(t, violations, 1)
	assert.Equal(t, localize.CodeShapeMismatch, violations[0].Code)
	assert.Equal(t, "localizations/de/name/full", violations[0].FieldPath)
}

const groupVCF = "BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"UID:urn:uuid:alice\r\n" +
	"FN:Alice\r\n" +
	"END:VCARD\r\n" +
	"BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"UID:urn:uuid:team\r\n" +
	"KIND:group\r\n" +
	"FN:Team\r\n" +
	"MEMBER:urn:uuid:alice\r\n" +
	"MEMBER:urn:uuid:bob\r\n" +
	"END:VCARD\r\n"

func TestDecodeVCF(t *testing.T) {
	entries, err := DecodeVCF(context.Background(), strings.NewReader(groupVCF), config.Default())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	grp := entries[0].Group
	require.NotNil(t, grp)
	require.Len(t, grp.Members, 2)
	assert.False(t, grp.Members[0].Placeholder)
	assert.True(t, grp.Members[1].Placeholder)
	assert.Equal(t, "urn:uuid:bob", grp.Members[1].Card.UID)
}

func TestEncodeVCF(t *testing.T) {
	card := jscontact.NewCard("urn:uuid:jane")
	card.Name = &jscontact.Name{Full: "Jane Doe"}
	card.Phones = map[string]*jscontact.Phone{"TEL-1": {Number: "+1-555-0100", Features: map[string]bool{"mobile": true}}}

	var buf bytes.Buffer
	require.NoError(t, EncodeVCF(&buf, []*jscontact.Card{card}, config.Default()))

	out := buf.String()
	assert.Contains(t, out, "FN:Jane Doe")
	assert.Contains(t, out, "UID:urn:uuid:jane")
	assert.Contains(t, out, "TEL;TYPE=cell:+1-555-0100")
}
