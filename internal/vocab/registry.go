package vocab

import (
	"sort"

	"jscard/internal/common"
)

// Tag names one enumerated token set.
type Tag string

const (
	Contexts          Tag = "contexts"
	PhoneFeatures     Tag = "features"
	RelationTypes     Tag = "relation"
	CardKinds         Tag = "kind"
	AnniversaryKinds  Tag = "anniversaryKind"
	PersonalInfoKinds Tag = "personalInfoKind"
	Levels            Tag = "level"
	NameComponents    Tag = "nameComponentKind"
	AddressComponents Tag = "addressComponentKind"
	GrammaticalGender Tag = "grammaticalGender"
)

var tables = map[Tag][]string{
	Contexts:      {"private", "work", "billing", "delivery"},
	PhoneFeatures: {"mobile", "voice", "text", "video", "main-number", "textphone", "fax", "pager"},
	RelationTypes: {
		"acquaintance", "agent", "child", "co-resident", "co-worker", "colleague",
		"contact", "crush", "date", "emergency", "friend", "kin", "me", "met",
		"muse", "neighbor", "parent", "sibling", "spouse", "sweetheart",
	},
	CardKinds:         {"individual", "group", "org", "location", "device", "application"},
	AnniversaryKinds:  {"birth", "death", "wedding"},
	PersonalInfoKinds: {"expertise", "hobby", "interest"},
	Levels:            {"high", "medium", "low"},
	NameComponents: {
		"title", "given", "given2", "surname", "surname2", "credential", "generation", "separator",
	},
	AddressComponents: {
		"room", "apartment", "floor", "building", "number", "name", "block", "subdistrict",
		"district", "locality", "region", "postcode", "country", "direction", "landmark",
		"postOfficeBox", "separator",
	},
	GrammaticalGender: {"animate", "common", "feminine", "inanimate", "masculine", "neuter"},
}

// registry maps tag -> normalized token -> canonical spelling.
var registry = build()

func build() map[Tag]map[string]string {
	out := make(map[Tag]map[string]string, len(tables))

	for tag, values := range tables {
		set := make(map[string]string, len(values))
		for _, v := range values {
			set[NormalizeToken(v)] = v
		}

		out[tag] = set
	}

	return out
}

// Canonical returns the registered spelling of token in the tag's set.
func Canonical(tag Tag, token string) (string, bool) {
	v, ok := registry[tag][NormalizeToken(token)]
	return v, ok
}

// Allowed returns the canonical values registered for tag, sorted.
func Allowed(tag Tag) []string {
	out := make([]string, 0, len(registry[tag]))
	for _, v := range registry[tag] {
		out = append(out, v)
	}

	sort.Strings(out)

	return out
}

// Duplicates groups values that normalize to the same token. Only groups
// with more than one distinct spelling are returned, each sorted, ordered by
// their first member. Unregistered values are compared too, so a vendor
// token spelled two ways is still reported.
func Duplicates(values []string) [][]string {
	groups := make(map[string][]string)

	for _, v := range values {
		key := NormalizeToken(v)
		groups[key] = append(groups[key], v)
	}

	var out [][]string

	for _, key := range common.SortedKeys(groups) {
		g := groups[key]
		if len(g) < 2 {
			continue
		}

		sort.Strings(g)
		out = append(out, g)
	}

	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })

	return out
}

// SetKeys returns the keys of a JSContact boolean set.
func SetKeys(set map[string]bool) []string {
	return common.SortedKeys(set)
}
