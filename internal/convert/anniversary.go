package convert

import (
	"strings"

	"jscard/internal/jscontact"
	"jscard/internal/wire"
)

var anniversaryKinds = []struct {
	property string
	kind     string
	place    string
}{
	{"BDAY", jscontact.AnniversaryBirth, "BIRTHPLACE"},
	{"DEATHDATE", jscontact.AnniversaryDeath, "DEATHPLACE"},
	{"ANNIVERSARY", jscontact.AnniversaryWedding, ""},
}

var anniversaryRules = propRules{handled: []string{wire.ParamCalScale}}

func mapAnniversary(s *state, props map[string][]indexed) error {
	for _, ak := range anniversaryKinds {
		entries, err := collect(s, props[ak.property], func(p indexed) (*jscontact.Anniversary, error) {
			date, ok := parseDate(p.Text(), strings.ToLower(p.Get(wire.ParamCalScale)))
			if !ok {
				return nil, nil
			}

			return &jscontact.Anniversary{Type: "Anniversary", Kind: ak.kind, Date: date}, nil
		})
		if err != nil {
			return err
		}

		var primaryID string

		for _, e := range entries {
			if e.Primary == nil {
				if err := wholeEntry(s, e, ak.property+" value is not a date"); err != nil {
					return err
				}

				continue
			}

			id := s.ids.next(ak.property, e.Source.Property)
			setEntity(&s.card.Anniversaries, id, e.Primary)

			if primaryID == "" {
				primaryID = id
			}

			if err := s.keepFor(e.Source, anniversaryRules, anchor{path: "anniversaries/" + id}); err != nil {
				return err
			}

			for _, lang := range e.Languages() {
				src := e.overlaySource(lang)

				if e.Overlays[lang] == nil {
					if err := s.whole(src, CodeUnparseableValue, ak.property+" value is not a date"); err != nil {
						return err
					}

					continue
				}

				s.card.AddLocalization(lang, "anniversaries/"+id, e.Overlays[lang])

				if err := s.keepFor(src, anniversaryRules, anchor{path: "anniversaries/" + id, lang: lang}); err != nil {
					return err
				}
			}
		}

		if ak.place == "" {
			continue
		}

		if err := s.mapPlace(props[ak.place], ak.kind, primaryID); err != nil {
			return err
		}
	}

	return nil
}

// mapPlace attaches BIRTHPLACE or DEATHPLACE to the anniversary with id, or
// to a new anniversary without a date.
func (s *state) mapPlace(props []indexed, kind, id string) error {
	entries, err := collect(s, props, func(p indexed) (*jscontact.Address, error) {
		if p.ValueType() == "uri" && strings.HasPrefix(strings.ToLower(p.Value), "geo:") {
			return &jscontact.Address{Type: "Address", Coordinates: strings.TrimSpace(p.Value)}, nil
		}

		return &jscontact.Address{Type: "Address", Full: p.Text()}, nil
	})
	if err != nil {
		return err
	}

	place, rest := first(entries)
	if place.Source.Name == "" {
		return nil
	}

	if id == "" {
		id = s.ids.next(place.Source.Name, place.Source.Property)
		setEntity(&s.card.Anniversaries, id, &jscontact.Anniversary{Type: "Anniversary", Kind: kind})
	}

	s.card.Anniversaries[id].Place = place.Primary

	path := "anniversaries/" + id

	if err := s.keepFor(place.Source, propRules{}, anchor{path: path + "/place"}); err != nil {
		return err
	}

	for _, lang := range place.Languages() {
		// A localized anniversary carries its own place.
		if ann, ok := s.card.Localizations[lang][path].(*jscontact.Anniversary); ok {
			cp := *ann
			cp.Place = place.Overlays[lang]
			s.card.Localizations[lang][path] = &cp
		} else {
			s.card.AddLocalization(lang, path+"/place", place.Overlays[lang])
		}

		if err := s.keepFor(place.overlaySource(lang), propRules{}, anchor{path: path + "/place", lang: lang}); err != nil {
			return err
		}
	}

	for _, e := range rest {
		if err := wholeEntry(s, e, "additional "+e.Source.Name+" has no structured home"); err != nil {
			return err
		}
	}

	return nil
}
