package jscontact

import (
	"encoding/json"
	"fmt"
	"strings"
)

type cardAlias Card

// MarshalJSON encodes the card with its extensions flattened into the
// top-level object.
func (c Card) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(cardAlias(c))
	if err != nil {
		return nil, err
	}

	if len(c.Extensions) == 0 {
		return base, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}

	for path, v := range c.Extensions {
		if _, clash := fields[path]; clash {
			return nil, fmt.Errorf("extension %q collides with a card property", path)
		}

		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("extension %q: %w", path, err)
		}

		fields[path] = raw
	}

	return json.Marshal(fields)
}

// UnmarshalJSON decodes a card, collecting extension keys into Extensions.
func (c *Card) UnmarshalJSON(data []byte) error {
	var a cardAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*c = Card(a)
	c.Extensions = nil

	for key, raw := range fields {
		if !IsExtensionKey(key) {
			continue
		}

		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("extension %q: %w", key, err)
		}

		c.SetExtension(key, v)
	}

	return nil
}

// IsExtensionKey reports whether a top-level key names an extension rather
// than a JSContact property.
func IsExtensionKey(key string) bool {
	return strings.ContainsAny(key, "/:")
}

// Tree renders the card as a generic JSON object.
func Tree(c *Card) (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode card %s: %w", c.UID, err)
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode card %s: %w", c.UID, err)
	}

	return tree, nil
}

// ToTree renders any value as a generic JSON node.
func ToTree(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var node any
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	return node, nil
}
