// Package convert maps vCard records to JSContact cards and back.
//
// Every vCard property name belongs to exactly one Category. A lookup table
// selects the mapper for a category and each mapper receives all properties
// of its names at once, so related properties (ADR with GEO and TZ, ORG with
// TITLE) can be joined. Mappers run in Category order.
//
// Conversion state lives in a per-call value: two conversions never share
// identifier counters or extension maps, and the same input under the same
// configuration always yields the same card.
//
// # ALTID handling
//
// Properties of one name are grouped by ALTID. The primary member becomes the
// structured value, every other member becomes a patch in
// localizations[lang] keyed by the entity path ("phones/TEL-1",
// "name/full"). Members that cannot be filed are reported as warnings and
// kept as extension entries.
//
// # Extensions
//
// Data without a structured home is stored under extension paths of the
// form namespace/PROPERTY(/index)?(/PARAMETER)?:
//
//	ietf.org/rfc6350/X-FOO/1        whole property {value, parameters, group}
//	ietf.org/rfc6350/TEL/2/X-LABEL  unmapped parameter
//	ietf.org/rfc6350/TEL/2/GROUP    property group label
//	ietf.org/rfc6350/TEL/2/TYPE     unknown TYPE tokens
//
// The index is the 1-based position among properties of the same name and
// is omitted for single-cardinality properties that appear once. When a name
// occurs more than once, the card also records under SourcesKey which
// entity each indexed property with parameter entries was mapped to, so
// ToRecord puts the parameters back on the right property even though it
// emits ALTID variants next to their primary.
package convert
