// Package pathcodec maps data without a structured home to path keys and
// resolves such paths inside a structured document.
//
// # Path Syntax
//
// Paths are segments joined by '/':
//   - Extension keys: "ietf.org/rfc6350/N/SORT-AS", "ietf.org/rfc6350/TEL/2/X-FOO"
//   - Document paths: "addresses/ADR-1/components/0/value"
//
// An object key may itself contain '/', which is how flattened extension keys
// live at the document root. Decode consumes the longest run of segments that
// names an existing key before descending.
//
// The segment "-" is the JSON Pointer "past the last element" token. It never
// addresses an existing node and is rejected wherever a concrete target is
// required.
package pathcodec
