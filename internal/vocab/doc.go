// Package vocab holds the registry of canonical tokens for every enumerated
// JSContact set (contexts, phone features, relation types, ...).
//
// The registry is built once from static tables. Canonical maps a free-form
// token to its registered spelling; Duplicates finds values that differ only
// in case or separators, which JSContact treats as the same token.
package vocab
