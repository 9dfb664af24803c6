// Package jscontact defines the structured contact model: a JSContact Card
// with typed entities, keyed multi-valued collections, localization patches
// and an extension map.
//
// # Extensions
//
// Card.Extensions is keyed by extension path (see package pathcodec). On the
// wire the entries are flattened into the top-level JSON object, the way
// JSContact carries vendor-specific properties, and recovered on decode: any
// top-level key containing '/' or ':' is an extension.
//
// # Tree view
//
// Tree renders a card as a generic JSON tree (map[string]any, []any,
// scalars) so that paths can be resolved without reflection.
package jscontact
