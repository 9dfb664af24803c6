package localize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"jscard/internal/common"
	"jscard/internal/jscontact"
	"jscard/internal/pathcodec"
)

// ErrMissingParent is returned when a patch targets a node whose parent
// does not exist.
var ErrMissingParent = errors.New("patch parent does not exist")

// Apply returns the card localized to lang: the language's patches are
// applied to a copy, in path order, and the copy carries no localizations.
// A card without patches for lang is returned as a plain copy.
func Apply(card *jscontact.Card, lang string) (*jscontact.Card, error) {
	patches := card.Localizations[lang]

	data, err := json.Marshal(card)
	if err != nil {
		return nil, fmt.Errorf("failed to encode card %s: %w", card.UID, err)
	}

	data, err = sjson.DeleteBytes(data, "localizations")
	if err != nil {
		return nil, fmt.Errorf("failed to strip localizations of %s: %w", card.UID, err)
	}

	for _, path := range common.SortedKeys(patches) {
		if err := pathcodec.Validate(path); err != nil {
			return nil, fmt.Errorf("%s: %w", lang, err)
		}

		target, err := resolve(data, pathcodec.Split(path))
		if err != nil {
			return nil, fmt.Errorf("%s: patch %q: %w", lang, path, err)
		}

		if patches[path] == nil {
			data, err = sjson.DeleteBytes(data, target)
		} else {
			data, err = sjson.SetBytes(data, target, patches[path])
		}

		if err != nil {
			return nil, fmt.Errorf("%s: patch %q: %w", lang, path, err)
		}
	}

	var out jscontact.Card
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode localized card %s: %w", card.UID, err)
	}

	if len(patches) > 0 {
		out.Language = lang
	}

	return &out, nil
}

// resolve turns path segments into a gjson path. At each level the longest
// run of segments naming an existing member is consumed; what remains must
// be a single new member of an existing object.
func resolve(data []byte, segs []string) (string, error) {
	var parts []string

	for len(segs) > 0 {
		found := false

		for end := len(segs); end > 0; end-- {
			candidate := append(append([]string(nil), parts...), gjson.Escape(pathcodec.Join(segs[:end]...)))
			if gjson.GetBytes(data, strings.Join(candidate, ".")).Exists() {
				parts = candidate
				segs = segs[end:]
				found = true

				break
			}
		}

		if found {
			continue
		}

		parent := gjson.ParseBytes(data)
		if len(parts) > 0 {
			parent = gjson.GetBytes(data, strings.Join(parts, "."))
		}

		if !parent.IsObject() || len(segs) > 1 {
			return "", fmt.Errorf("%w: %s", ErrMissingParent, pathcodec.Join(segs...))
		}

		parts = append(parts, gjson.Escape(segs[0]))

		break
	}

	return strings.Join(parts, "."), nil
}
