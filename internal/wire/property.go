package wire

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Well-known parameter names.
const (
	ParamAltID     = "ALTID"
	ParamPref      = "PREF"
	ParamLanguage  = "LANGUAGE"
	ParamType      = "TYPE"
	ParamValue     = "VALUE"
	ParamPID       = "PID"
	ParamPropID    = "PROP-ID"
	ParamLabel     = "LABEL"
	ParamGeo       = "GEO"
	ParamTZ        = "TZ"
	ParamCC        = "CC"
	ParamSortAs    = "SORT-AS"
	ParamMediaType = "MEDIATYPE"
	ParamCalScale  = "CALSCALE"
	ParamLevel     = "LEVEL"
	ParamIndex     = "INDEX"
	ParamService   = "SERVICE-TYPE"
	ParamUsername  = "USERNAME"
)

// Params maps upper-case parameter names to their values.
type Params map[string][]string

// Property is one flat, parameter-annotated entry of a contact record.
type Property struct {
	// Name is the upper-case property name (e.g. "ADR").
	Name string
	// Group is the optional group prefix ("item1" in "item1.TEL").
	Group string
	// Params holds the parameters.
	Params Params
	// Value is the raw value text with vCard escapes intact.
	Value string
}

// Record is one contact: an ordered list of properties.
type Record struct {
	Properties []Property
}

// NewProperty creates a property with a normalized name.
func NewProperty(name, value string) Property {
	return Property{Name: strings.ToUpper(name), Value: value}
}

// With returns a copy of p with the parameter appended.
func (p Property) With(name string, values ...string) Property {
	params := p.Params.Clone()
	if params == nil {
		params = Params{}
	}

	key := strings.ToUpper(name)
	params[key] = append(params[key], values...)
	p.Params = params

	return p
}

// Get returns the first value of the named parameter, or "".
func (p Property) Get(name string) string {
	return p.Params.Get(name)
}

// AltID returns the ALTID parameter.
func (p Property) AltID() string {
	return p.Params.Get(ParamAltID)
}

// Language returns the LANGUAGE parameter.
func (p Property) Language() string {
	return p.Params.Get(ParamLanguage)
}

// Pref returns the PREF parameter. ok is false when the parameter is absent.
// A present but non-numeric value is an error; the range is not checked here.
func (p Property) Pref() (pref int, ok bool, err error) {
	raw := strings.TrimSpace(p.Params.Get(ParamPref))
	if raw == "" {
		return 0, false, nil
	}

	pref, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid PREF %q: %w", raw, err)
	}

	return pref, true, nil
}

// Types returns the lower-cased TYPE tokens, splitting comma-joined values.
func (p Property) Types() []string {
	var out []string

	for _, v := range p.Params[ParamType] {
		for _, t := range SplitList(v) {
			t = strings.ToLower(strings.TrimSpace(Unescape(t)))
			if t != "" {
				out = append(out, t)
			}
		}
	}

	return out
}

// ValueType returns the lower-cased VALUE parameter.
func (p Property) ValueType() string {
	return strings.ToLower(p.Params.Get(ParamValue))
}

// Text returns the unescaped value.
func (p Property) Text() string {
	return Unescape(p.Value)
}

// Get returns the first value of the named parameter, or "".
func (ps Params) Get(name string) string {
	vs := ps[strings.ToUpper(name)]
	if len(vs) == 0 {
		return ""
	}

	return vs[0]
}

// Joined returns all values of the named parameter joined with commas.
func (ps Params) Joined(name string) string {
	return strings.Join(ps[strings.ToUpper(name)], ",")
}

// Names returns the parameter names in ascending order.
func (ps Params) Names() []string {
	names := make([]string, 0, len(ps))
	for k := range ps {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// Clone returns a deep copy.
func (ps Params) Clone() Params {
	if ps == nil {
		return nil
	}

	out := make(Params, len(ps))
	for k, v := range ps {
		out[k] = append([]string(nil), v...)
	}

	return out
}

// Indexed is a property together with its 1-based position among the
// properties of the same name in the source record.
type Indexed struct {
	Property
	Index int
}

// ByName buckets the properties by name, preserving input order, and returns
// the bucket names in order of first appearance.
func (r Record) ByName() (map[string][]Indexed, []string) {
	buckets := make(map[string][]Indexed)

	var order []string

	for _, p := range r.Properties {
		name := strings.ToUpper(p.Name)
		if _, seen := buckets[name]; !seen {
			order = append(order, name)
		}

		p.Name = name
		buckets[name] = append(buckets[name], Indexed{Property: p, Index: len(buckets[name]) + 1})
	}

	return buckets, order
}

// First returns the first property with the given name.
func (r Record) First(name string) (Property, bool) {
	name = strings.ToUpper(name)
	for _, p := range r.Properties {
		if strings.ToUpper(p.Name) == name {
			return p, true
		}
	}

	return Property{}, false
}

// Add appends a property.
func (r *Record) Add(p Property) {
	r.Properties = append(r.Properties, p)
}
