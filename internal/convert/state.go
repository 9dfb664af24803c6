package convert

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"jscard/internal/altid"
	"jscard/internal/common"
	"jscard/internal/config"
	"jscard/internal/diagnostic"
	"jscard/internal/jscontact"
	"jscard/internal/pathcodec"
	"jscard/internal/vocab"
	"jscard/internal/wire"
)

type indexed = wire.Indexed

// Diagnostic codes emitted during mapping.
const (
	CodeUnmappedProperty  = "unmapped_property"
	CodeUnmappedParameter = "unmapped_parameter"
	CodeUnknownToken      = "unknown_token"
	CodeAltIDDropped      = "altid_member_dropped"
	CodeInvalidLanguage   = "invalid_language"
	CodeUnparseableValue  = "unparseable_value"
	CodeReclassified      = "kind_reclassified"
)

// state is the per-call mapping context.
type state struct {
	cfg    config.Config
	codec  pathcodec.Codec
	card   *jscontact.Card
	ids    *idGenerator
	ext    pathcodec.ExtensionMap
	diags  diagnostic.Diagnostics
	counts map[string]int
	// sources maps "PROP/index" to the entity a property with parameter
	// extensions was mapped to.
	sources map[string]any
}

// anchor names the entity, and for an overlay its language, that a source
// property was mapped to.
type anchor struct {
	path string
	lang string
}

// SourcesKey is the card extension that ties indexed parameter extensions
// to the entity their property was mapped to. It is only written for
// property names that occur more than once.
const SourcesKey = "jscard:vcardSources"

func sourceKey(name string, index int) string {
	return strings.ToUpper(name) + pathcodec.Separator + strconv.Itoa(index)
}

// anchorAt records where the property at index went.
func (s *state) anchorAt(name string, index int, at anchor) {
	if at.path == "" || index < 1 || s.counts[name] < 2 {
		return
	}

	if s.sources == nil {
		s.sources = make(map[string]any)
	}

	ref := map[string]any{"path": at.path}
	if at.lang != "" {
		ref["language"] = at.lang
	}

	s.sources[sourceKey(name, index)] = ref
}

// propRules describe how the parameters of a property are consumed.
type propRules struct {
	// handled lists parameters the projection consumes.
	handled []string
	// contexts classifies TYPE tokens home/work as contexts.
	contexts bool
	// features classifies further TYPE tokens against a registry tag.
	features vocab.Tag
	// aliases rewrites TYPE tokens before the registry lookup.
	aliases map[string]string
	// valid reports whether a handled parameter value could be used.
	// Rejected values are kept as extensions.
	valid map[string]func(string) bool
}

func (r propRules) classifiesTypes() bool {
	return r.contexts || r.features != ""
}

// contextTokens are never classified as features.
var contextTokens = map[string]string{
	"home": jscontact.ContextPrivate,
	"work": jscontact.ContextWork,
	"pref": "",
}

// classified holds the TYPE tokens of one property.
type classified struct {
	contexts map[string]bool
	features map[string]bool
	unknown  []string
}

func classify(p wire.Property, r propRules) classified {
	var out classified

	for _, t := range p.Types() {
		if ctx, ok := contextTokens[t]; ok && r.contexts {
			if ctx != "" {
				out.contexts = addToken(out.contexts, ctx)
			}

			continue
		}

		if r.contexts {
			if ctx, ok := vocab.Canonical(vocab.Contexts, t); ok {
				out.contexts = addToken(out.contexts, ctx)
				continue
			}
		}

		if _, excluded := contextTokens[t]; r.features != "" && !excluded {
			if alias, ok := r.aliases[t]; ok {
				t = alias
			}

			if f, ok := vocab.Canonical(r.features, t); ok {
				out.features = addToken(out.features, f)
				continue
			}
		}

		out.unknown = append(out.unknown, t)
	}

	return out
}

func addToken(set map[string]bool, token string) map[string]bool {
	if set == nil {
		set = make(map[string]bool)
	}

	set[token] = true

	return set
}

// types classifies TYPE and fails on unknown tokens when configured to.
func (s *state) types(p indexed, r propRules) (classified, error) {
	c := classify(p.Property, r)
	if len(c.unknown) > 0 && s.cfg.TreatUnknownTypeAsError {
		return c, s.fail(p.Property, fmt.Errorf("%w: TYPE=%s", ErrUnknownToken, strings.Join(c.unknown, ",")))
	}

	return c, nil
}

func (s *state) fail(p wire.Property, err error) error {
	return &ConversionError{Record: s.card.UID, Property: p.Name, Err: err}
}

// pref returns the validated PREF of p.
func (s *state) pref(p wire.Property) (int, bool, error) {
	pref, ok, err := p.Pref()
	if err != nil {
		return 0, false, s.fail(p, fmt.Errorf("%w: %w", ErrInvalidValue, err))
	}

	if ok {
		if err := altid.CheckPreference(pref); err != nil {
			return 0, false, s.fail(p, err)
		}
	}

	return pref, ok, nil
}

// prefOf returns the PREF of an already validated property, 0 when absent.
func prefOf(p wire.Property) int {
	pref, _, _ := p.Pref()
	return pref
}

// language returns the canonical BCP 47 form of the LANGUAGE parameter.
func (s *state) language(p wire.Property) string {
	return s.canonicalLanguage(p.Language(), p.Name)
}

func (s *state) canonicalLanguage(tag, property string) string {
	if tag == "" {
		return ""
	}

	t, err := language.Parse(tag)
	if err != nil {
		s.diags.AddInfo(CodeInvalidLanguage, fmt.Sprintf("language tag %q kept as is: %v", tag, err), s.card.UID, property)
		return tag
	}

	return t.String()
}

// index returns the extension index for p, 0 when it is omitted.
func (s *state) index(p indexed) int {
	if singleCardinality[p.Name] && s.counts[p.Name] == 1 {
		return 0
	}

	return p.Index
}

func (s *state) put(p wire.Property, path string, v any) error {
	if err := s.ext.Put(path, v); err != nil {
		return s.fail(p, fmt.Errorf("%w: %w", ErrInvalidValue, err))
	}

	return nil
}

// whole keeps the complete property as an extension entry.
func (s *state) whole(p indexed, code, reason string) error {
	path := s.codec.Encode(p.Name, p.Index, "")

	log.Debugf("record %s: %s kept as extension %s: %s", s.card.UID, p.Name, path, reason)
	s.diags.AddInfo(code, reason, s.card.UID, path)

	return s.put(p.Property, path, rawProperty(p.Property))
}

// rawProperty renders a property in the generic JSON form used by
// whole-property extension entries.
func rawProperty(p wire.Property) map[string]any {
	out := map[string]any{"value": p.Value}

	if len(p.Params) > 0 {
		params := make(map[string]any, len(p.Params))
		for name, values := range p.Params {
			vs := make([]any, len(values))
			for i, v := range values {
				vs[i] = v
			}

			params[name] = vs
		}

		out["parameters"] = params
	}

	if p.Group != "" {
		out["group"] = p.Group
	}

	return out
}

func isCommonParam(name string, profile config.IdentifierProfile) bool {
	switch name {
	case wire.ParamAltID, wire.ParamLanguage, wire.ParamPref, wire.ParamValue:
		return true
	case wire.ParamPropID:
		return profile == config.ProfilePropID
	default:
		return false
	}
}

// keep files everything of a kept property that the projection did not
// consume: unknown TYPE tokens, unmapped or rejected parameters and the
// group label.
func (s *state) keep(p indexed, r propRules) error {
	return s.keepFor(p, r, anchor{})
}

// keepFor is keep for a property mapped to the entity at.
func (s *state) keepFor(p indexed, r propRules, at anchor) error {
	index := s.index(p)
	kept := false

	put := func(path string, v any) error {
		kept = true
		return s.put(p.Property, path, v)
	}

	for _, name := range p.Params.Names() {
		if isCommonParam(name, s.cfg.IdentifierProfile) {
			continue
		}

		path := s.codec.Encode(p.Name, index, name)

		if name == wire.ParamType && r.classifiesTypes() {
			unknown := classify(p.Property, r).unknown
			if len(unknown) == 0 {
				continue
			}

			log.Debugf("record %s: unknown TYPE tokens %v on %s", s.card.UID, unknown, p.Name)
			s.diags.AddInfo(CodeUnknownToken, unknownTokensMessage(unknown, r), s.card.UID, path)

			if err := put(path, wire.JoinList(unknown)); err != nil {
				return err
			}

			continue
		}

		if slices.Contains(r.handled, name) {
			check := r.valid[name]
			if check == nil || check(p.Params.Get(name)) {
				continue
			}
		}

		s.diags.AddInfo(CodeUnmappedParameter, "parameter "+name+" kept as extension", s.card.UID, path)

		if err := put(path, p.Params.Joined(name)); err != nil {
			return err
		}
	}

	if p.Group != "" {
		if err := put(s.codec.Encode(p.Name, index, "GROUP"), p.Group); err != nil {
			return err
		}
	}

	if kept {
		s.anchorAt(p.Name, index, at)
	}

	return nil
}

// unknownTokensMessage lists unknown TYPE tokens with the closest
// registered token where one is near enough.
func unknownTokensMessage(unknown []string, r propRules) string {
	hints := make([]string, len(unknown))

	for i, t := range unknown {
		hints[i] = t

		for _, tag := range []vocab.Tag{r.features, vocab.Contexts} {
			if tag == "" || (tag == vocab.Contexts && !r.contexts) {
				continue
			}

			if near, ok := vocab.Suggest(tag, t); ok {
				hints[i] = fmt.Sprintf("%s (did you mean %q?)", t, near)
				break
			}
		}
	}

	return "unknown TYPE tokens " + strings.Join(hints, ", ")
}

// entry is one ALTID group with its source properties.
type entry[T any] struct {
	altid.Localized[T]
	Source  indexed
	sources map[int]indexed
}

// overlaySource returns the property an overlay came from.
func (e entry[T]) overlaySource(lang string) indexed {
	return e.sources[e.OverlayIndex[lang]]
}

// collect projects and aggregates properties of one name. Dropped members
// are reported and kept as whole-property extensions.
func collect[T any](s *state, props []indexed, project func(indexed) (T, error)) ([]entry[T], error) {
	if len(props) == 0 {
		return nil, nil
	}

	members := make([]altid.Member[T], 0, len(props))
	sources := make(map[int]indexed, len(props))

	for _, p := range props {
		pref, hasPref, err := s.pref(p.Property)
		if err != nil {
			return nil, err
		}

		v, err := project(p)
		if err != nil {
			return nil, err
		}

		members = append(members, altid.Member[T]{
			Value:    v,
			AltID:    p.AltID(),
			Language: s.language(p.Property),
			Pref:     pref,
			HasPref:  hasPref,
			Index:    p.Index,
		})
		sources[p.Index] = p
	}

	locs, err := altid.Aggregate(members, altid.Options{
		DefaultLanguage: s.cfg.DefaultLanguage,
		Conflict:        s.cfg.AltIDConflict,
	})
	if err != nil {
		return nil, s.fail(props[0].Property, err)
	}

	out := make([]entry[T], 0, len(locs))

	for _, loc := range locs {
		for _, idx := range loc.Dropped {
			p := sources[idx]

			log.Warnf("record %s: %s #%d (ALTID=%s LANGUAGE=%s) is not an overlay, dropped from the structured value",
				s.card.UID, p.Name, p.Index, p.AltID(), p.Language())
			s.diags.AddWarning(CodeAltIDDropped,
				fmt.Sprintf("ALTID %q member without a distinct language", p.AltID()),
				s.card.UID, s.codec.Encode(p.Name, p.Index, ""))

			if err := s.put(p.Property, s.codec.Encode(p.Name, p.Index, ""), rawProperty(p.Property)); err != nil {
				return nil, err
			}
		}

		out = append(out, entry[T]{Localized: loc, Source: sources[loc.PrimaryIndex], sources: sources})
	}

	return out, nil
}

// keyed is an entry stored under an id.
type keyed[T any] struct {
	ID string
	entry[T]
}

// mapEntities runs the common pipeline for entities stored in a keyed map:
// aggregate, store the primary under a fresh id, record overlays under
// "<category>/<id>" and keep unconsumed parameters.
func mapEntities[T any](
	s *state,
	props []indexed,
	category string,
	rules propRules,
	project func(indexed) (*T, error),
	store func(id string, v *T),
) ([]keyed[*T], error) {
	entries, err := collect(s, props, project)
	if err != nil {
		return nil, err
	}

	out := make([]keyed[*T], 0, len(entries))

	for _, e := range entries {
		id := s.ids.next(e.Source.Name, e.Source.Property)
		store(id, e.Primary)

		if err := s.overlays(e.Source, rules, category+pathcodec.Separator+id, e.Languages(), func(lang string) (any, indexed) {
			return e.Overlays[lang], e.overlaySource(lang)
		}); err != nil {
			return nil, err
		}

		out = append(out, keyed[*T]{ID: id, entry: e})
	}

	return out, nil
}

// overlays keeps the primary's parameters and files each overlay under path.
func (s *state) overlays(primary indexed, rules propRules, path string, langs []string, get func(string) (any, indexed)) error {
	if err := s.keepFor(primary, rules, anchor{path: path}); err != nil {
		return err
	}

	for _, lang := range langs {
		v, src := get(lang)
		s.card.AddLocalization(lang, path, v)

		if err := s.keepFor(src, rules, anchor{path: path, lang: lang}); err != nil {
			return err
		}
	}

	return nil
}

// setEntity stores v under id, allocating the map on first use.
func setEntity[T any](m *map[string]*T, id string, v *T) {
	if *m == nil {
		*m = make(map[string]*T)
	}

	(*m)[id] = v
}

// first returns the most preferred entry.
func first[T any](entries []entry[T]) (entry[T], []entry[T]) {
	sorted, _ := altid.SortByPreference(entries, func(e entry[T]) (int, bool) { return e.Pref, e.HasPref })
	if common.IsEmpty(sorted) {
		return entry[T]{}, nil
	}

	return sorted[0], sorted[1:]
}
