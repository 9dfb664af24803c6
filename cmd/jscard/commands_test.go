package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jscard/internal/group"
	"jscard/internal/jscontact"
)

func TestReadCards(t *testing.T) {
	dir := t.TempDir()

	single := filepath.Join(dir, "single.json")
	require.NoError(t, os.WriteFile(single, []byte(`{"@type":"Card","version":"1.0","uid":"a"}`), 0o600))

	batch := filepath.Join(dir, "batch.json")
	require.NoError(t, os.WriteFile(batch, []byte(`
[{"@type":"Card","version":"1.0","uid":"b"},{"@type":"Card","version":"1.0","uid":"c"}]`), 0o600))

	cards, err := readCards([]string{single, batch})
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "a", cards[0].UID)
	assert.Equal(t, "c", cards[2].UID)

	_, err = readCards([]string{filepath.Join(dir, "missing.json")})
	assert.Error(t, err)
}

func TestFlatten(t *testing.T) {
	alice := jscontact.NewCard("alice")
	team := jscontact.NewCard("team")
	team.Kind = jscontact.KindGroup
	team.Members = jscontact.MemberSet{"alice", "bob"}

	entries, err := group.Resolve([]*jscontact.Card{alice, team})
	require.NoError(t, err)

	out, err := flatten(entries)
	require.NoError(t, err)

	uids := make([]string, len(out))
	for i, c := range out {
		uids[i] = c.UID
	}

	assert.Equal(t, []string{"team", "alice"}, uids)
}

func TestFlatten_Language(t *testing.T) {
	card := jscontact.NewCard("jane")
	card.Name = &jscontact.Name{Full: "Jane"}
	card.AddLocalization("fr", "name/full", "Jeanne")

	language = "fr"
	t.Cleanup(func() { language = "" })

	out, err := flatten([]group.Entry{{Card: card}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Jeanne", out[0].Name.Full)
	assert.Equal(t, "fr", out[0].Language)
	assert.Empty(t, out[0].Localizations)
}
