package localize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jscard/internal/diagnostic"
	"jscard/internal/jscontact"
)

func baseCard() *jscontact.Card {
	card := jscontact.NewCard("urn:uuid:1")
	card.Name = &jscontact.Name{Type: "Name", Full: "Jane Doe"}
	card.Phones = map[string]*jscontact.Phone{
		"TEL-1": {Type: "Phone", Number: "+1-555-0100"},
	}
	card.Addresses = map[string]*jscontact.Address{
		"ADR-1": {Type: "Address", Full: "Main St", Components: []jscontact.AddressComponent{{Kind: "name", Value: "Main St"}}},
	}

	return card
}

func codes(diags []diagnostic.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}

	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		lang      string
		patches   map[string]any
		wantCodes []string
		wantPath  string
	}{
		{
			name:    "identical shape",
			lang:    "de",
			patches: map[string]any{"name/full": "Johanna Reh", "phones/TEL-1/number": "+49 555 0100"},
		},
		{
			name:      "array over scalar",
			lang:      "de",
			patches:   map[string]any{"phones/TEL-1/number": []string{"a", "b"}},
			wantCodes: []string{CodeShapeMismatch},
			wantPath:  "localizations/de/phones/TEL-1/number",
		},
		{
			name:      "scalar over object",
			lang:      "fr",
			patches:   map[string]any{"addresses/ADR-1": "rue"},
			wantCodes: []string{CodeShapeMismatch},
			wantPath:  "localizations/fr/addresses/ADR-1",
		},
		{
			name:      "different discriminator",
			lang:      "fr",
			patches:   map[string]any{"addresses/ADR-1": &jscontact.Phone{Type: "Phone", Number: "1"}},
			wantCodes: []string{CodeTypeMismatch},
			wantPath:  "localizations/fr/addresses/ADR-1",
		},
		{
			name:    "missing target is accepted",
			lang:    "it",
			patches: map[string]any{"emails/EMAIL-1": map[string]any{"address": "x@example.com"}},
		},
		{
			name:      "wildcard",
			lang:      "it",
			patches:   map[string]any{"addresses/ADR-1/components/-": map[string]any{"kind": "name", "value": "Via"}},
			wantCodes: []string{CodeWildcardPath},
			wantPath:  "localizations/it/addresses/ADR-1/components/-",
		},
		{
			name: "nested paths",
			lang: "it",
			patches: map[string]any{
				"addresses/ADR-1":      &jscontact.Address{Type: "Address", Full: "Via"},
				"addresses/ADR-1/full": "Via Roma",
			},
			wantCodes: []string{CodeAmbiguousPath},
			wantPath:  "localizations/it/addresses/ADR-1/full",
		},
		{
			name:    "deletion",
			lang:    "it",
			patches: map[string]any{"phones/TEL-1": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := baseCard()
			for path, v := range tt.patches {
				card.AddLocalization(tt.lang, path, v)
			}

			got := Validate(card)
			if len(tt.wantCodes) == 0 {
				assert.Empty(t, got)
				return
			}

			require.Equal(t, tt.wantCodes, codes(got))
			assert.Equal(t, tt.wantPath, got[0].FieldPath)
			assert.Equal(t, diagnostic.SeverityError, got[0].Severity)
			assert.Contains(t, got[0].Message, tt.lang+":")
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	card := baseCard()
	card.AddLocalization("de", "phones/TEL-1/number", []any{1})

	before, err := jscontact.Tree(card)
	require.NoError(t, err)

	_ = Validate(card)

	after, err := jscontact.Tree(card)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestValidate_ExtensionKeys(t *testing.T) {
	card := baseCard()
	card.SetExtension("ietf.org/rfc6350/X-FOO/1", map[string]any{"value": "bar"})
	card.AddLocalization("de", "ietf.org/rfc6350/X-FOO/1/value", "baz")

	assert.Empty(t, Validate(card))

	card.AddLocalization("fr", "ietf.org/rfc6350/X-FOO/1/value", map[string]any{"x": 1})
	got := Validate(card)
	require.Len(t, got, 1)
	assert.Equal(t, "localizations/fr/ietf.org/rfc6350/X-FOO/1/value", got[0].FieldPath)
}

func TestValidate_DuplicateTokens(t *testing.T) {
	card := baseCard()
	card.Phones["TEL-1"].Features = map[string]bool{"fax": true, "FAX": true}
	card.Keywords = map[string]bool{"Work": true, "work": true, "golf": true}

	got := Validate(card)
	require.Len(t, got, 2)
	assert.Equal(t, CodeDuplicateTokens, got[0].Code)
	assert.Equal(t, "keywords", got[0].FieldPath)
	assert.Equal(t, "phones/TEL-1/features", got[1].FieldPath)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindObject, KindOf(map[string]any{}))
	assert.Equal(t, KindArray, KindOf([]any{}))
	assert.Equal(t, KindScalar, KindOf("x"))
	assert.Equal(t, KindScalar, KindOf(nil))
}
