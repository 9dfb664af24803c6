package wire

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/emersion/go-vcard"
)

// ErrEmptyInput is returned when a stream holds no vCard at all.
var ErrEmptyInput = errors.New("no vCard found in input")

// Decode reads every vCard in r.
//
// go-vcard keeps properties in a map, so cross-name order is not preserved:
// properties are emitted sorted by name, keeping the order among properties
// of the same name.
func Decode(r io.Reader) ([]Record, error) {
	dec := vcard.NewDecoder(r)

	var records []Record

	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to decode vCard %d: %w", len(records)+1, err)
		}

		records = append(records, FromCard(card))
	}

	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	return records, nil
}

// Encode writes the records as vCard 4.0.
func Encode(w io.Writer, records []Record) error {
	enc := vcard.NewEncoder(w)

	for i, rec := range records {
		if err := enc.Encode(ToCard(rec)); err != nil {
			return fmt.Errorf("failed to encode vCard %d: %w", i+1, err)
		}
	}

	return nil
}

// FromCard converts a go-vcard card into a Record.
func FromCard(card vcard.Card) Record {
	names := make([]string, 0, len(card))
	for name := range card {
		names = append(names, name)
	}

	sort.Strings(names)

	var rec Record

	for _, name := range names {
		for _, f := range card[name] {
			if f == nil {
				continue
			}

			p := Property{
				Name:  strings.ToUpper(name),
				Group: f.Group,
				Value: f.Value,
			}

			if len(f.Params) > 0 {
				p.Params = make(Params, len(f.Params))
				for k, v := range f.Params {
					key := strings.ToUpper(k)
					p.Params[key] = append(p.Params[key], v...)
				}
			}

			rec.Add(p)
		}
	}

	return rec
}

// ToCard converts a Record into a go-vcard card, adding VERSION:4.0 when the
// record has none.
func ToCard(rec Record) vcard.Card {
	card := vcard.Card{}

	for _, p := range rec.Properties {
		f := &vcard.Field{Value: p.Value, Group: p.Group}
		if len(p.Params) > 0 {
			f.Params = make(vcard.Params, len(p.Params))
			for k, v := range p.Params {
				f.Params[k] = append([]string(nil), v...)
			}
		}

		card.Add(strings.ToUpper(p.Name), f)
	}

	if card.Get(vcard.FieldVersion) == nil {
		card.Set(vcard.FieldVersion, &vcard.Field{Value: "4.0"})
	}

	return card
}
