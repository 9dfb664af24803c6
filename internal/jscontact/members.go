package jscontact

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MemberSet is the ordered set of member uids of a group card. It is
// encoded as the JSContact object form {"uid": true, ...} with insertion
// order kept on both encode and decode.
type MemberSet []string

// Add appends uid unless it is already present.
func (m *MemberSet) Add(uid string) {
	if m.Contains(uid) {
		return
	}

	*m = append(*m, uid)
}

// Contains reports whether uid is a member.
func (m MemberSet) Contains(uid string) bool {
	for _, u := range m {
		if u == uid {
			return true
		}
	}

	return false
}

// MarshalJSON writes the object form.
func (m MemberSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, uid := range m {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(uid)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteString(":true")
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form, skipping members set to false.
func (m *MemberSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to parse members: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("members must be an object, got %v", tok)
	}

	var out MemberSet

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to parse members: %w", err)
		}

		key, _ := keyTok.(string)

		var included bool
		if err := dec.Decode(&included); err != nil {
			return fmt.Errorf("member %q: %w", key, err)
		}

		if included {
			out.Add(key)
		}
	}

	*m = out

	return nil
}
