package convert

import (
	"fmt"
	"strings"

	"jscard/internal/common"
	"jscard/internal/jscontact"
	"jscard/internal/vocab"
	"jscard/internal/wire"
)

// nameKinds maps the N value positions to component kinds.
var nameKinds = []string{"surname", "given", "given2", "title", "credential", "surname2", "generation"}

// nameOrder is the order components are emitted in.
var nameOrder = []string{"title", "given", "given2", "surname", "surname2", "generation", "credential"}

type nameValue struct {
	components []jscontact.NameComponent
	sortAs     map[string]string
}

func parseName(p wire.Property) nameValue {
	byKind := make(map[string][]string)

	for i, part := range wire.SplitComponents(p.Value) {
		if i >= len(nameKinds) {
			break
		}

		for _, v := range wire.SplitList(part) {
			if v = strings.TrimSpace(wire.Unescape(v)); v != "" {
				byKind[nameKinds[i]] = append(byKind[nameKinds[i]], v)
			}
		}
	}

	var out nameValue

	for _, kind := range nameOrder {
		for _, v := range byKind[kind] {
			out.components = append(out.components, jscontact.NameComponent{Kind: kind, Value: v})
		}
	}

	if raw := p.Get(wire.ParamSortAs); raw != "" {
		sortAs := wire.SplitList(raw)
		out.sortAs = make(map[string]string)

		for i, kind := range []string{"surname", "given"} {
			if v := strings.TrimSpace(common.At(sortAs, i)); v != "" {
				out.sortAs[kind] = wire.Unescape(v)
			}
		}
	}

	return out
}

func (s *state) name() *jscontact.Name {
	if s.card.Name == nil {
		s.card.Name = &jscontact.Name{Type: "Name"}
	}

	return s.card.Name
}

// wholeEntry keeps every member of an ALTID group as extensions.
func wholeEntry[T any](s *state, e entry[T], reason string) error {
	if err := s.whole(e.Source, CodeUnmappedProperty, reason); err != nil {
		return err
	}

	for _, lang := range e.Languages() {
		if err := s.whole(e.overlaySource(lang), CodeUnmappedProperty, reason); err != nil {
			return err
		}
	}

	return nil
}

func mapName(s *state, props map[string][]indexed) error {
	fns, err := collect(s, props["FN"], func(p indexed) (string, error) { return p.Text(), nil })
	if err != nil {
		return err
	}

	if fn, rest := first(fns); fn.Source.Name != "" {
		s.name().Full = fn.Primary

		if err := s.overlays(fn.Source, propRules{}, "name/full", fn.Languages(), func(lang string) (any, indexed) {
			return fn.Overlays[lang], fn.overlaySource(lang)
		}); err != nil {
			return err
		}

		for _, e := range rest {
			if err := wholeEntry(s, e, "additional FN has no structured home"); err != nil {
				return err
			}
		}
	}

	ns, err := collect(s, props["N"], func(p indexed) (nameValue, error) { return parseName(p.Property), nil })
	if err != nil {
		return err
	}

	if n, rest := first(ns); n.Source.Name != "" {
		name := s.name()
		name.Components = n.Primary.components
		name.SortAs = n.Primary.sortAs

		rules := propRules{handled: []string{wire.ParamSortAs}}
		if err := s.overlays(n.Source, rules, "name/components", n.Languages(), func(lang string) (any, indexed) {
			return n.Overlays[lang].components, n.overlaySource(lang)
		}); err != nil {
			return err
		}

		for _, e := range rest {
			if err := wholeEntry(s, e, "additional N has no structured home"); err != nil {
				return err
			}
		}
	}

	rules := propRules{contexts: true}

	_, err = mapEntities(s, props["NICKNAME"], "nicknames", rules,
		func(p indexed) (*jscontact.Nickname, error) {
			c, err := s.types(p, rules)
			if err != nil {
				return nil, err
			}

			return &jscontact.Nickname{Type: "Nickname", Name: p.Text(), Contexts: c.contexts, Pref: prefOf(p.Property)}, nil
		},
		func(id string, v *jscontact.Nickname) { setEntity(&s.card.Nicknames, id, v) })

	return err
}

func (s *state) speakToAs() *jscontact.SpeakToAs {
	if s.card.SpeakToAs == nil {
		s.card.SpeakToAs = &jscontact.SpeakToAs{Type: "SpeakToAs"}
	}

	return s.card.SpeakToAs
}

func mapSpeakToAs(s *state, props map[string][]indexed) error {
	if err := s.single(props["GRAMGENDER"], func(p indexed) (bool, error) {
		gender, ok := vocab.Canonical(vocab.GrammaticalGender, p.Text())
		if !ok {
			if s.cfg.TreatUnknownTypeAsError {
				return false, s.fail(p.Property, fmt.Errorf("%w: GRAMGENDER=%s", ErrUnknownToken, p.Text()))
			}

			return false, nil
		}

		s.speakToAs().GrammaticalGender = gender

		return true, nil
	}); err != nil {
		return err
	}

	rules := propRules{contexts: true}

	_, err := mapEntities(s, props["PRONOUNS"], "speakToAs/pronouns", rules,
		func(p indexed) (*jscontact.Pronouns, error) {
			c, err := s.types(p, rules)
			if err != nil {
				return nil, err
			}

			return &jscontact.Pronouns{Type: "Pronouns", Pronouns: p.Text(), Contexts: c.contexts, Pref: prefOf(p.Property)}, nil
		},
		func(id string, v *jscontact.Pronouns) { setEntity(&s.speakToAs().Pronouns, id, v) })

	return err
}
