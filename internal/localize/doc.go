// Package localize checks and applies the per-language patches of a card.
//
// A card's localizations map a language tag to patches keyed by path
// ("phones/TEL-1", "name/full"). Validate checks that every patch fits the
// node it replaces without touching the card. Apply produces the localized
// card for one language.
package localize
