package convert

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"jscard/internal/common"
	"jscard/internal/jscontact"
	"jscard/internal/localize"
	"jscard/internal/pathcodec"
	"jscard/internal/wire"
)

// emitter builds a vCard record from a card and its localized variants.
type emitter struct {
	card    *jscontact.Card
	locs    map[string]*jscontact.Card
	langs   []string
	rec     wire.Record
	altids  int
	emitted map[string][]int
	anchors map[anchor]int
}

// ToRecord converts a card to a vCard record. Entities with localizations
// are emitted with a synthesized ALTID, followed by one property per
// language carrying the same ALTID and LANGUAGE. Extension entries in the
// converter's namespace are replayed as properties and parameters.
func (c *Converter) ToRecord(card *jscontact.Card) (wire.Record, error) {
	e := &emitter{
		card:    card,
		locs:    make(map[string]*jscontact.Card, len(card.Localizations)),
		langs:   common.SortedKeys(card.Localizations),
		emitted: make(map[string][]int),
		anchors: make(map[anchor]int),
	}

	for _, lang := range e.langs {
		loc, err := localize.Apply(card, lang)
		if err != nil {
			return wire.Record{}, &ConversionError{Record: card.UID, Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)}
		}

		e.locs[lang] = loc
	}

	e.general()
	e.name()
	e.speakToAs()
	e.addresses()
	e.organizations()
	e.contacts()
	e.resources()
	e.anniversaries()
	e.personal()

	c.replay(e)

	return e.rec, nil
}

func (e *emitter) add(p wire.Property) {
	e.emitted[p.Name] = append(e.emitted[p.Name], len(e.rec.Properties))
	e.rec.Add(p)
}

// touching returns the languages with a patch on path, inside it or above it.
func (e *emitter) touching(path string) []string {
	var out []string

	for _, lang := range e.langs {
		for k := range e.card.Localizations[lang] {
			if k == path || pathcodec.IsPrefix(path, k) || pathcodec.IsPrefix(k, path) {
				out = append(out, lang)
				break
			}
		}
	}

	return out
}

// emit adds p and, when path is localized, one variant per language.
func (e *emitter) emit(path string, p wire.Property, variant func(*jscontact.Card) (wire.Property, bool)) {
	langs := e.touching(path)
	if len(langs) == 0 {
		e.addFor(anchor{path: path}, p)
		return
	}

	e.altids++
	altID := strconv.Itoa(e.altids)
	e.addFor(anchor{path: path}, p.With(wire.ParamAltID, altID))

	for _, lang := range langs {
		lp, ok := variant(e.locs[lang])
		if !ok {
			continue
		}

		e.addFor(anchor{path: path, lang: lang}, lp.With(wire.ParamAltID, altID).With(wire.ParamLanguage, lang))
	}
}

func (e *emitter) addFor(at anchor, p wire.Property) {
	e.anchors[at] = len(e.rec.Properties)
	e.add(p)
}

// source returns the entity recorded for the property name#index.
func (e *emitter) source(name string, index int) (anchor, bool) {
	sources, _ := e.card.Extensions[SourcesKey].(map[string]any)

	ref, ok := sources[sourceKey(name, index)].(map[string]any)
	if !ok {
		return anchor{}, false
	}

	path, _ := ref["path"].(string)
	lang, _ := ref["language"].(string)

	return anchor{path: path, lang: lang}, path != ""
}

// target finds the emitted property a parameter extension belongs to: the
// one emitted for the recorded entity, or else the index-th property of
// that name.
func (e *emitter) target(ref pathcodec.Ref) (int, bool) {
	index := max(ref.Index, 1)

	if at, ok := e.source(ref.Property, index); ok {
		pos, ok := e.anchors[at]
		if !ok || !strings.EqualFold(e.rec.Properties[pos].Name, ref.Property) {
			return 0, false
		}

		return pos, true
	}

	positions := e.emitted[ref.Property]
	if index > len(positions) {
		return 0, false
	}

	return positions[index-1], true
}

// emitMap emits every entity of a keyed map in id order.
func emitMap[T any](e *emitter, category string, get func(*jscontact.Card) map[string]*T, project func(*T) (wire.Property, bool)) {
	entities := get(e.card)

	for _, id := range sortIDs(common.SortedKeys(entities)) {
		p, ok := project(entities[id])
		if !ok {
			continue
		}

		e.emit(category+pathcodec.Separator+id, p, func(loc *jscontact.Card) (wire.Property, bool) {
			v, ok := get(loc)[id]
			if !ok || v == nil {
				return wire.Property{}, false
			}

			return project(v)
		})
	}
}

// sortIDs orders ids by prefix, then numeric suffix ("TEL-2" before "TEL-10").
func sortIDs(ids []string) []string {
	split := func(id string) (string, int) {
		i := strings.LastIndexByte(id, '-')
		if i < 0 {
			return id, -1
		}

		n, err := strconv.Atoi(id[i+1:])
		if err != nil {
			return id, -1
		}

		return id[:i], n
	}

	slices.SortStableFunc(ids, func(a, b string) int {
		pa, na := split(a)
		pb, nb := split(b)

		if pa != pb {
			return strings.Compare(pa, pb)
		}

		return na - nb
	})

	return ids
}

func withPref(p wire.Property, pref int) wire.Property {
	if pref > 0 {
		return p.With(wire.ParamPref, strconv.Itoa(pref))
	}

	return p
}

// reverseContexts maps context tokens back to TYPE tokens.
var reverseContexts = map[string]string{
	jscontact.ContextPrivate: "home",
}

// reverseFeatures maps phone features back to TYPE tokens.
var reverseFeatures = map[string]string{
	"mobile": "cell",
}

func withTypes(p wire.Property, contexts, features map[string]bool) wire.Property {
	var types []string

	for _, c := range common.SortedKeys(contexts) {
		types = append(types, common.FirstNonEmpty(reverseContexts[c], c))
	}

	for _, f := range common.SortedKeys(features) {
		types = append(types, common.FirstNonEmpty(reverseFeatures[f], f))
	}

	if len(types) == 0 {
		return p
	}

	return p.With(wire.ParamType, wire.JoinList(types))
}

func textProperty(name, text string) wire.Property {
	return wire.NewProperty(name, wire.Escape(text))
}

func (e *emitter) general() {
	card := e.card

	e.add(wire.NewProperty("UID", card.UID))

	if card.Kind != "" {
		e.add(wire.NewProperty("KIND", card.Kind))
	}

	for _, m := range card.Members {
		e.add(wire.NewProperty("MEMBER", m))
	}

	if card.ProdID != "" {
		e.add(textProperty("PRODID", card.ProdID))
	}

	if card.Updated != "" {
		e.add(wire.NewProperty("REV", formatTimestamp(card.Updated)))
	}

	if card.Created != "" {
		e.add(wire.NewProperty("CREATED", formatTimestamp(card.Created)))
	}

	if card.Language != "" {
		e.add(wire.NewProperty("LANGUAGE", card.Language))
	}

	if kws := common.SortedKeys(card.Keywords); len(kws) > 0 {
		escaped := make([]string, len(kws))
		for i, kw := range kws {
			escaped[i] = wire.Escape(kw)
		}

		e.add(wire.NewProperty("CATEGORIES", strings.Join(escaped, ",")))
	}
}

func fullName(n *jscontact.Name) string {
	if n == nil {
		return ""
	}

	if n.Full != "" {
		return n.Full
	}

	parts := make([]string, 0, len(n.Components))
	for _, c := range n.Components {
		if c.Kind != "separator" {
			parts = append(parts, c.Value)
		}
	}

	return strings.Join(parts, " ")
}

func nameProperty(n *jscontact.Name) (wire.Property, bool) {
	if n == nil || len(n.Components) == 0 {
		return wire.Property{}, false
	}

	positions := make([][]string, len(nameKinds))

	for _, c := range n.Components {
		if i := slices.Index(nameKinds, c.Kind); i >= 0 {
			positions[i] = append(positions[i], c.Value)
		}
	}

	components := make([]string, len(positions))
	for i, vs := range positions {
		escaped := make([]string, len(vs))
		for j, v := range vs {
			escaped[j] = wire.Escape(v)
		}

		components[i] = strings.Join(escaped, ",")
	}

	// Trailing RFC 9554 positions are dropped when empty.
	for len(components) > 5 && components[len(components)-1] == "" {
		components = components[:len(components)-1]
	}

	p := wire.NewProperty("N", strings.Join(components, ";"))

	if len(n.SortAs) > 0 {
		p = p.With(wire.ParamSortAs, wire.JoinList([]string{n.SortAs["surname"], n.SortAs["given"]}))
	}

	return p, true
}

func (e *emitter) name() {
	e.emit("name/full", textProperty("FN", fullName(e.card.Name)), func(loc *jscontact.Card) (wire.Property, bool) {
		return textProperty("FN", fullName(loc.Name)), true
	})

	if p, ok := nameProperty(e.card.Name); ok {
		e.emit("name/components", p, func(loc *jscontact.Card) (wire.Property, bool) {
			return nameProperty(loc.Name)
		})
	}

	emitMap(e, "nicknames", func(c *jscontact.Card) map[string]*jscontact.Nickname { return c.Nicknames },
		func(n *jscontact.Nickname) (wire.Property, bool) {
			return withPref(withTypes(textProperty("NICKNAME", n.Name), n.Contexts, nil), n.Pref), true
		})
}

func (e *emitter) speakToAs() {
	sta := e.card.SpeakToAs
	if sta == nil {
		return
	}

	if sta.GrammaticalGender != "" {
		e.add(wire.NewProperty("GRAMGENDER", sta.GrammaticalGender))
	}

	emitMap(e, "speakToAs/pronouns",
		func(c *jscontact.Card) map[string]*jscontact.Pronouns {
			if c.SpeakToAs == nil {
				return nil
			}

			return c.SpeakToAs.Pronouns
		},
		func(p *jscontact.Pronouns) (wire.Property, bool) {
			return withPref(withTypes(textProperty("PRONOUNS", p.Pronouns), p.Contexts, nil), p.Pref), true
		})
}

func addressProperty(a *jscontact.Address) (wire.Property, bool) {
	positions := make([][]string, len(addressKinds))

	for _, c := range a.Components {
		if i := slices.Index(addressKinds, c.Kind); i >= 0 {
			positions[i] = append(positions[i], wire.Escape(c.Value))
		}
	}

	components := make([]string, len(positions))
	for i, vs := range positions {
		components[i] = strings.Join(vs, ",")
	}

	p := wire.NewProperty("ADR", strings.Join(components, ";"))

	if a.Full != "" && a.Full != FullAddress(a.Components) {
		p = p.With(wire.ParamLabel, a.Full)
	}

	if a.Coordinates != "" {
		p = p.With(wire.ParamGeo, a.Coordinates)
	}

	if a.TimeZone != "" {
		p = p.With(wire.ParamTZ, vcardTimeZone(a.TimeZone))
	}

	if a.CountryCode != "" {
		p = p.With(wire.ParamCC, a.CountryCode)
	}

	return withPref(withTypes(p, a.Contexts, nil), a.Pref), true
}

func (e *emitter) addresses() {
	emitMap(e, "addresses", func(c *jscontact.Card) map[string]*jscontact.Address { return c.Addresses }, addressProperty)
}

func orgProperty(o *jscontact.Organization) (wire.Property, bool) {
	parts := []string{wire.Escape(o.Name)}
	for _, u := range o.Units {
		parts = append(parts, wire.Escape(u.Name))
	}

	p := wire.NewProperty("ORG", strings.Join(parts, ";"))
	if o.SortAs != "" {
		p = p.With(wire.ParamSortAs, o.SortAs)
	}

	return withTypes(p, o.Contexts, nil), true
}

func titleProperty(t *jscontact.Title) (wire.Property, bool) {
	name := "TITLE"
	if t.Kind == jscontact.TitleKindRole {
		name = "ROLE"
	}

	return textProperty(name, t.Name), true
}

func (e *emitter) organizations() {
	emitMap(e, "organizations", func(c *jscontact.Card) map[string]*jscontact.Organization { return c.Orgs }, orgProperty)
	emitMap(e, "titles", func(c *jscontact.Card) map[string]*jscontact.Title { return c.Titles }, titleProperty)
}

func onlineServiceProperty(s *jscontact.OnlineService) (wire.Property, bool) {
	var p wire.Property

	switch uri := strings.ToLower(s.URI); {
	case s.URI == "":
		p = textProperty("SOCIALPROFILE", s.User).With(wire.ParamValue, "text")
	case strings.HasPrefix(uri, "http:") || strings.HasPrefix(uri, "https:"):
		p = wire.NewProperty("SOCIALPROFILE", s.URI)
		if s.User != "" {
			p = p.With(wire.ParamUsername, s.User)
		}
	default:
		p = wire.NewProperty("IMPP", s.URI)
		if s.User != "" {
			p = p.With(wire.ParamUsername, s.User)
		}
	}

	if s.Service != "" {
		p = p.With(wire.ParamService, s.Service)
	}

	return withPref(withTypes(p, s.Contexts, nil), s.Pref), true
}

func (e *emitter) contacts() {
	emitMap(e, "phones", func(c *jscontact.Card) map[string]*jscontact.Phone { return c.Phones },
		func(ph *jscontact.Phone) (wire.Property, bool) {
			p := wire.NewProperty("TEL", ph.Number)
			if strings.HasPrefix(strings.ToLower(ph.Number), "tel:") {
				p = p.With(wire.ParamValue, "uri")
			}

			return withPref(withTypes(p, ph.Contexts, ph.Features), ph.Pref), true
		})

	emitMap(e, "emails", func(c *jscontact.Card) map[string]*jscontact.EmailAddress { return c.Emails },
		func(em *jscontact.EmailAddress) (wire.Property, bool) {
			return withPref(withTypes(textProperty("EMAIL", em.Address), em.Contexts, nil), em.Pref), true
		})

	emitMap(e, "onlineServices", func(c *jscontact.Card) map[string]*jscontact.OnlineService { return c.OnlineServices },
		onlineServiceProperty)

	emitMap(e, "preferredLanguages", func(c *jscontact.Card) map[string]*jscontact.LanguagePref { return c.PreferredLanguages },
		func(l *jscontact.LanguagePref) (wire.Property, bool) {
			return withPref(withTypes(wire.NewProperty("LANG", l.Language), l.Contexts, nil), l.Pref), true
		})

	emitMap(e, "schedulingAddresses", func(c *jscontact.Card) map[string]*jscontact.SchedulingAddress { return c.SchedulingAddresses },
		func(sa *jscontact.SchedulingAddress) (wire.Property, bool) {
			return withPref(withTypes(wire.NewProperty("CALADRURI", sa.URI), sa.Contexts, nil), sa.Pref), true
		})
}

// resourceName finds the property a resource came from.
func resourceName(category, kind string) string {
	for _, name := range resourceOrder {
		if rk := resources[name]; rk.category == category && rk.kind == kind {
			return name
		}
	}

	return ""
}

func (e *emitter) resources() {
	for _, category := range []string{"links", "media", "cryptoKeys", "calendars", "directories"} {
		var field func(*jscontact.Card) *map[string]*jscontact.Resource

		for _, rk := range resources {
			if rk.category == category {
				field = rk.field
				break
			}
		}

		emitMap(e, category, func(c *jscontact.Card) map[string]*jscontact.Resource { return *field(c) },
			func(r *jscontact.Resource) (wire.Property, bool) {
				name := resourceName(category, r.Kind)
				if name == "" {
					name = resourceName(category, "")
				}

				if name == "" {
					return wire.Property{}, false
				}

				p := wire.NewProperty(name, r.URI)
				if r.MediaType != "" {
					p = p.With(wire.ParamMediaType, r.MediaType)
				}

				if r.ListAs > 0 {
					p = p.With(wire.ParamIndex, strconv.Itoa(r.ListAs))
				}

				return withPref(withTypes(p, r.Contexts, nil), r.Pref), true
			})
	}
}

func anniversaryProperty(a *jscontact.Anniversary) (wire.Property, bool) {
	if a.Date == nil {
		return wire.Property{}, false
	}

	var name string

	for _, ak := range anniversaryKinds {
		if ak.kind == a.Kind {
			name = ak.property
		}
	}

	if name == "" {
		return wire.Property{}, false
	}

	p := wire.NewProperty(name, formatDate(a.Date))
	if a.Date.Partial != nil && a.Date.Partial.CalendarScale != "" {
		p = p.With(wire.ParamCalScale, a.Date.Partial.CalendarScale)
	}

	return p, true
}

func placeProperty(name string, a *jscontact.Address) (wire.Property, bool) {
	switch {
	case a == nil:
		return wire.Property{}, false
	case a.Full != "":
		return textProperty(name, a.Full), true
	case a.Coordinates != "":
		return wire.NewProperty(name, a.Coordinates).With(wire.ParamValue, "uri"), true
	default:
		return wire.Property{}, false
	}
}

func (e *emitter) anniversaries() {
	get := func(c *jscontact.Card) map[string]*jscontact.Anniversary { return c.Anniversaries }

	emitMap(e, "anniversaries", get, anniversaryProperty)

	for _, id := range sortIDs(common.SortedKeys(e.card.Anniversaries)) {
		a := e.card.Anniversaries[id]

		var name string

		for _, ak := range anniversaryKinds {
			if ak.kind == a.Kind {
				name = ak.place
			}
		}

		if name == "" {
			continue
		}

		p, ok := placeProperty(name, a.Place)
		if !ok {
			continue
		}

		e.emit("anniversaries/"+id+"/place", p, func(loc *jscontact.Card) (wire.Property, bool) {
			la, ok := get(loc)[id]
			if !ok || la == nil {
				return wire.Property{}, false
			}

			return placeProperty(name, la.Place)
		})
	}
}

// reverseLevels maps levels back to EXPERTISE levels.
var reverseLevels = map[string]string{
	jscontact.LevelLow:    "beginner",
	jscontact.LevelMedium: "average",
	jscontact.LevelHigh:   "expert",
}

func personalProperty(pi *jscontact.PersonalInfo) (wire.Property, bool) {
	name := strings.ToUpper(pi.Kind)
	if CategoryOf(name) != CategoryPersonalInfo {
		return wire.Property{}, false
	}

	p := textProperty(name, pi.Value)

	if pi.Level != "" {
		level := pi.Level
		if name == "EXPERTISE" {
			level = common.FirstNonEmpty(reverseLevels[level], level)
		}

		p = p.With(wire.ParamLevel, level)
	}

	if pi.ListAs > 0 {
		p = p.With(wire.ParamIndex, strconv.Itoa(pi.ListAs))
	}

	return p, true
}

func (e *emitter) personal() {
	emitMap(e, "personalInfo", func(c *jscontact.Card) map[string]*jscontact.PersonalInfo { return c.PersonalInfo },
		personalProperty)

	emitMap(e, "notes", func(c *jscontact.Card) map[string]*jscontact.Note { return c.Notes },
		func(n *jscontact.Note) (wire.Property, bool) {
			p := textProperty("NOTE", n.Note)
			if n.Created != "" {
				p = p.With("CREATED", formatTimestamp(n.Created))
			}

			return p, true
		})

	for _, uri := range common.SortedKeys(e.card.RelatedTo) {
		e.emit("relatedTo/"+uri, relatedProperty(uri, e.card.RelatedTo[uri]), func(loc *jscontact.Card) (wire.Property, bool) {
			rel, ok := loc.RelatedTo[uri]
			if !ok {
				log.Debugf("card %s: relatedTo %s has no localized relation, variant not exported", e.card.UID, uri)
				return wire.Property{}, false
			}

			return relatedProperty(uri, rel), true
		})
	}
}

func relatedProperty(uri string, rel *jscontact.Relation) wire.Property {
	p := wire.NewProperty("RELATED", uri)

	if rel == nil {
		return p
	}

	if types := common.SortedKeys(rel.Relation); len(types) > 0 {
		p = p.With(wire.ParamType, wire.JoinList(types))
	}

	return p
}

// replay re-expands extension entries: whole properties first, then
// parameters and group labels onto the properties already emitted.
func (c *Converter) replay(e *emitter) {
	var params []string

	for _, path := range common.SortedKeys(e.card.Extensions) {
		if path == SourcesKey {
			continue
		}

		ref, ok := c.codec.Parse(path)
		if !ok {
			log.Debugf("card %s: extension %s is outside namespace %s, not exported", e.card.UID, path, c.codec.Namespace)
			continue
		}

		if ref.Parameter != "" {
			params = append(params, path)
			continue
		}

		p, ok := propertyFromRaw(ref.Property, e.card.Extensions[path])
		if !ok {
			log.Debugf("card %s: extension %s is not a property, not exported", e.card.UID, path)
			continue
		}

		e.add(p)
	}

	for _, path := range params {
		ref, _ := c.codec.Parse(path)

		pos, ok := e.target(ref)
		if !ok {
			log.Debugf("card %s: extension %s has no %s #%d to attach to", e.card.UID, path, ref.Property, max(ref.Index, 1))
			continue
		}

		target := &e.rec.Properties[pos]
		value := fmt.Sprint(e.card.Extensions[path])

		if ref.Parameter == "GROUP" {
			target.Group = value
			continue
		}

		*target = target.With(ref.Parameter, value)
	}
}

// propertyFromRaw reads a whole-property extension value.
func propertyFromRaw(name string, v any) (wire.Property, bool) {
	raw, ok := v.(map[string]any)
	if !ok {
		return wire.Property{}, false
	}

	value, ok := raw["value"].(string)
	if !ok {
		return wire.Property{}, false
	}

	p := wire.NewProperty(name, value)
	p.Group, _ = raw["group"].(string)

	params, _ := raw["parameters"].(map[string]any)
	for _, k := range common.SortedKeys(params) {
		switch vs := params[k].(type) {
		case []any:
			for _, item := range vs {
				p = p.With(k, fmt.Sprint(item))
			}
		case []string:
			p = p.With(k, vs...)
		case string:
			p = p.With(k, vs)
		}
	}

	return p, true
}
