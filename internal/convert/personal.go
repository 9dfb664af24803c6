package convert

import (
	"fmt"
	"strconv"
	"strings"

	"jscard/internal/jscontact"
	"jscard/internal/vocab"
	"jscard/internal/wire"
)

// expertiseLevels maps EXPERTISE levels onto the common scale.
var expertiseLevels = map[string]string{
	"beginner": jscontact.LevelLow,
	"average":  jscontact.LevelMedium,
	"expert":   jscontact.LevelHigh,
}

var personalRules = propRules{
	handled: []string{wire.ParamLevel, wire.ParamIndex},
	valid:   map[string]func(string) bool{wire.ParamIndex: positiveInt},
}

var relationRules = propRules{features: vocab.RelationTypes}

var noteRules = propRules{
	handled: []string{"CREATED"},
	valid:   map[string]func(string) bool{"CREATED": validTimestamp},
}

// parseLevel reads a LEVEL parameter. An empty level is fine; anything
// unparseable is an error.
func parseLevel(property, raw string) (string, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", nil
	}

	if property == "EXPERTISE" {
		if level, ok := expertiseLevels[raw]; ok {
			return level, nil
		}
	}

	if level, ok := vocab.Canonical(vocab.Levels, raw); ok {
		return level, nil
	}

	return "", fmt.Errorf("%w: LEVEL=%s", ErrInvalidValue, raw)
}

func mapPersonalInfo(s *state, props map[string][]indexed) error {
	for _, name := range []string{"EXPERTISE", "HOBBY", "INTEREST"} {
		kind, _ := vocab.Canonical(vocab.PersonalInfoKinds, name)

		_, err := mapEntities(s, props[name], "personalInfo", personalRules,
			func(p indexed) (*jscontact.PersonalInfo, error) {
				level, err := parseLevel(p.Name, p.Get(wire.ParamLevel))
				if err != nil {
					return nil, s.fail(p.Property, err)
				}

				info := &jscontact.PersonalInfo{Type: "PersonalInfo", Kind: kind, Value: p.Text(), Level: level}
				if positiveInt(p.Get(wire.ParamIndex)) {
					info.ListAs, _ = strconv.Atoi(strings.TrimSpace(p.Get(wire.ParamIndex)))
				}

				return info, nil
			},
			func(id string, v *jscontact.PersonalInfo) { setEntity(&s.card.PersonalInfo, id, v) })
		if err != nil {
			return err
		}
	}

	return nil
}

type relation struct {
	uri   string
	types map[string]bool
}

func mapRelation(s *state, props map[string][]indexed) error {
	entries, err := collect(s, props["RELATED"], func(p indexed) (relation, error) {
		c, err := s.types(p, relationRules)
		if err != nil {
			return relation{}, err
		}

		return relation{uri: strings.TrimSpace(p.Text()), types: c.features}, nil
	})
	if err != nil {
		return err
	}

	for _, e := range entries {
		uri := e.Primary.uri

		rel, ok := s.card.RelatedTo[uri]
		if !ok {
			rel = &jscontact.Relation{Type: "Relation"}
			setEntity(&s.card.RelatedTo, uri, rel)
		}

		for t := range e.Primary.types {
			rel.Relation = addToken(rel.Relation, t)
		}

		if err := s.overlays(e.Source, relationRules, "relatedTo/"+uri, e.Languages(), func(lang string) (any, indexed) {
			return &jscontact.Relation{Type: "Relation", Relation: e.Overlays[lang].types}, e.overlaySource(lang)
		}); err != nil {
			return err
		}
	}

	return nil
}

func mapNote(s *state, props map[string][]indexed) error {
	_, err := mapEntities(s, props["NOTE"], "notes", noteRules,
		func(p indexed) (*jscontact.Note, error) {
			note := &jscontact.Note{Type: "Note", Note: p.Text()}
			if ts, ok := parseTimestamp(p.Get("CREATED")); ok {
				note.Created = ts
			}

			return note, nil
		},
		func(id string, v *jscontact.Note) { setEntity(&s.card.Notes, id, v) })

	return err
}
