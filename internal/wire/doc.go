// Package wire models the flat, ordered vCard property list consumed and
// produced by the converter.
//
// A Record is an ordered slice of Property values. Each property keeps its
// value text with vCard escapes intact; SplitComponents, SplitList and
// Unescape take it apart, Escape puts it back together.
//
// Lexical parsing is delegated to github.com/emersion/go-vcard: Decode turns
// a .vcf stream into Records and Encode writes them back.
package wire
