package localize

import (
	"fmt"
	"strings"

	"jscard/internal/common"
	"jscard/internal/diagnostic"
	"jscard/internal/jscontact"
	"jscard/internal/pathcodec"
	"jscard/internal/vocab"
)

// Violation codes.
const (
	CodeEncodeFailed    = "encode_failed"
	CodeWildcardPath    = "wildcard_path"
	CodeAmbiguousPath   = "ambiguous_path"
	CodeShapeMismatch   = "shape_mismatch"
	CodeTypeMismatch    = "type_mismatch"
	CodeDuplicateTokens = "duplicate_tokens"
)

// NodeKind is the JSON category of a node.
type NodeKind string

const (
	KindObject NodeKind = "object"
	KindArray  NodeKind = "array"
	KindScalar NodeKind = "scalar"
)

// KindOf returns the JSON category of a generic JSON node.
func KindOf(node any) NodeKind {
	switch node.(type) {
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	default:
		return KindScalar
	}
}

// tokenSets are the object keys whose members are case-insensitive tokens.
var tokenSets = map[string]bool{
	"contexts": true,
	"features": true,
	"relation": true,
	"keywords": true,
}

// Validate checks every localization patch of card and returns one
// violation per offending path. The card is not modified.
func Validate(card *jscontact.Card) []diagnostic.Diagnostic {
	tree, err := jscontact.Tree(card)
	if err != nil {
		return []diagnostic.Diagnostic{diagnostic.Violation(CodeEncodeFailed, err.Error(), card.UID, "")}
	}

	var out []diagnostic.Diagnostic

	for _, lang := range common.SortedKeys(card.Localizations) {
		out = append(out, validateLanguage(card.UID, lang, card.Localizations[lang], tree)...)
	}

	return append(out, duplicateTokens(card.UID, "", tree)...)
}

func validateLanguage(uid, lang string, patches map[string]any, tree map[string]any) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic

	paths := common.SortedKeys(patches)
	field := func(path string) string { return "localizations/" + lang + "/" + path }

	for _, path := range paths {
		if pathcodec.HasWildcard(path) {
			out = append(out, diagnostic.Violation(CodeWildcardPath,
				fmt.Sprintf("%s: path %q uses the wildcard index", lang, path), uid, field(path)))

			continue
		}

		if prefix, ok := prefixOf(path, paths); ok {
			out = append(out, diagnostic.Violation(CodeAmbiguousPath,
				fmt.Sprintf("%s: path %q is nested under %q", lang, path, prefix), uid, field(path)))

			continue
		}

		base, ok := pathcodec.Decode(path, tree)
		if !ok {
			continue
		}

		fragment, err := jscontact.ToTree(patches[path])
		if err != nil {
			out = append(out, diagnostic.Violation(CodeEncodeFailed,
				fmt.Sprintf("%s: patch %q: %v", lang, path, err), uid, field(path)))

			continue
		}

		if msg := compare(base, fragment); msg != "" {
			code := CodeShapeMismatch
			if KindOf(base) == KindOf(fragment) {
				code = CodeTypeMismatch
			}

			out = append(out, diagnostic.Violation(code, fmt.Sprintf("%s: path %q: %s", lang, path, msg), uid, field(path)))
		}
	}

	return out
}

// prefixOf returns another path of the same language that is a strict
// prefix of path.
func prefixOf(path string, paths []string) (string, bool) {
	for _, other := range paths {
		if pathcodec.IsPrefix(other, path) {
			return other, true
		}
	}

	return "", false
}

// compare returns why fragment cannot replace base, or "".
func compare(base, fragment any) string {
	if fragment == nil {
		return ""
	}

	bk, fk := KindOf(base), KindOf(fragment)

	if bk != fk {
		return fmt.Sprintf("patch is %s but base is %s", fk, bk)
	}

	if bk != KindObject {
		return ""
	}

	bt, bok := base.(map[string]any)["@type"].(string)
	ft, fok := fragment.(map[string]any)["@type"].(string)

	if bok && fok && bt != ft {
		return fmt.Sprintf("patch @type %q differs from base @type %q", ft, bt)
	}

	return ""
}

// duplicateTokens walks the tree and reports token sets with keys that
// differ only in case or separators.
func duplicateTokens(uid, path string, node any) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic

	switch n := node.(type) {
	case map[string]any:
		for _, key := range common.SortedKeys(n) {
			child := pathcodec.Join(key)
			if path != "" {
				child = pathcodec.Join(path, key)
			}

			if set, ok := n[key].(map[string]any); ok && tokenSets[key] {
				for _, dup := range vocab.Duplicates(common.SortedKeys(set)) {
					out = append(out, diagnostic.Violation(CodeDuplicateTokens,
						"tokens differ only in case: "+strings.Join(dup, ", "), uid, child))
				}

				continue
			}

			out = append(out, duplicateTokens(uid, child, n[key])...)
		}
	case []any:
		for i, item := range n {
			out = append(out, duplicateTokens(uid, pathcodec.Join(path, fmt.Sprint(i)), item)...)
		}
	}

	return out
}
