package convert

import (
	"fmt"
	"strings"

	"jscard/internal/altid"
	"jscard/internal/common"
	"jscard/internal/jscontact"
	"jscard/internal/vocab"
	"jscard/internal/wire"
)

// sortProps validates PREF and orders props by preference.
func (s *state) sortProps(props []indexed) ([]indexed, error) {
	for _, p := range props {
		if _, _, err := s.pref(p.Property); err != nil {
			return nil, err
		}
	}

	return altid.SortByPreference(props, func(p indexed) (int, bool) {
		pref, ok, _ := p.Pref()
		return pref, ok
	})
}

// single maps the most preferred of props with set. set returns false when
// the value cannot be used; such a property, and every further one, is kept
// as a whole-property extension.
func (s *state) single(props []indexed, set func(indexed) (bool, error)) error {
	sorted, err := s.sortProps(props)
	if err != nil {
		return err
	}

	for i, p := range sorted {
		if i > 0 {
			if err := s.whole(p, CodeUnmappedProperty, "additional "+p.Name+" has no structured home"); err != nil {
				return err
			}

			continue
		}

		ok, err := set(p)
		if err != nil {
			return err
		}

		if !ok {
			if err := s.whole(p, CodeUnparseableValue, fmt.Sprintf("%s value %q could not be mapped", p.Name, p.Value)); err != nil {
				return err
			}

			continue
		}

		if err := s.keep(p, propRules{}); err != nil {
			return err
		}
	}

	return nil
}

func mapGeneral(s *state, props map[string][]indexed) error {
	card := s.card

	// UID was read before mapping; only its parameters are left.
	if err := s.single(props["UID"], func(indexed) (bool, error) { return true, nil }); err != nil {
		return err
	}

	if err := s.single(props["KIND"], func(p indexed) (bool, error) {
		kind, ok := vocab.Canonical(vocab.CardKinds, p.Text())
		if !ok && s.cfg.TreatUnknownTypeAsError {
			return false, s.fail(p.Property, fmt.Errorf("%w: KIND=%s", ErrUnknownToken, p.Text()))
		}

		card.Kind = kind

		return ok, nil
	}); err != nil {
		return err
	}

	if members := props["MEMBER"]; len(members) > 0 {
		if len(props["KIND"]) == 0 {
			return s.fail(members[0].Property, ErrMissingGroupMarker)
		}

		sorted, err := s.sortProps(members)
		if err != nil {
			return err
		}

		for _, p := range sorted {
			// Members of a card whose KIND was not recognized stay with
			// the raw properties.
			if card.Kind == "" {
				if err := s.whole(p, CodeUnmappedProperty, "MEMBER of a card with unrecognized KIND "+props["KIND"][0].Text()); err != nil {
					return err
				}

				continue
			}

			card.Members.Add(p.Text())

			if err := s.keep(p, propRules{}); err != nil {
				return err
			}
		}
	}

	if card.IsGroup() && len(card.Members) == 0 {
		card.Kind = jscontact.KindOrg
		s.diags.AddInfo(CodeReclassified, "group without members reclassified as org", card.UID, "kind")
	}

	if err := s.single(props["PRODID"], func(p indexed) (bool, error) {
		card.ProdID = p.Text()
		return true, nil
	}); err != nil {
		return err
	}

	if err := s.single(props["REV"], func(p indexed) (bool, error) {
		ts, ok := parseTimestamp(p.Text())
		card.Updated = ts

		return ok, nil
	}); err != nil {
		return err
	}

	if err := s.single(props["CREATED"], func(p indexed) (bool, error) {
		ts, ok := parseTimestamp(p.Text())
		card.Created = ts

		return ok, nil
	}); err != nil {
		return err
	}

	if err := s.single(props["LANGUAGE"], func(p indexed) (bool, error) {
		card.Language = s.canonicalLanguage(p.Text(), p.Name)
		return card.Language != "", nil
	}); err != nil {
		return err
	}

	for _, p := range props["CATEGORIES"] {
		if _, _, err := s.pref(p.Property); err != nil {
			return err
		}

		for _, kw := range wire.SplitList(p.Value) {
			kw = strings.TrimSpace(wire.Unescape(kw))
			if kw == "" {
				continue
			}

			if card.Keywords == nil {
				card.Keywords = make(map[string]bool)
			}

			card.Keywords[kw] = true
		}

		if err := s.keep(p, propRules{}); err != nil {
			return err
		}
	}

	return nil
}

func mapExtension(s *state, props map[string][]indexed) error {
	for _, name := range common.SortedKeys(props) {
		for _, p := range props[name] {
			if err := s.whole(p, CodeUnmappedProperty, "property "+p.Name+" has no structured mapping"); err != nil {
				return err
			}
		}
	}

	return nil
}
