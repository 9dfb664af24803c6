package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitComponents(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Doe;John;;Dr.;", []string{"Doe", "John", "", "Dr.", ""}},
		{`a\;b;c`, []string{`a\;b`, "c"}},
		{"", []string{""}},
		{`a\\;b`, []string{`a\\`, "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitComponents(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"home", "work"}, SplitList("home,work"))
	assert.Equal(t, []string{`a\,b`, "c"}, SplitList(`a\,b,c`))
}

func TestUnescapeEscape(t *testing.T) {
	tests := []struct {
		raw  string
		text string
	}{
		{`Line 1\nLine 2`, "Line 1\nLine 2"},
		{`a\,b\;c`, "a,b;c"},
		{`back\\slash`, `back\slash`},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.text, Unescape(tt.raw))
			assert.Equal(t, tt.text, Unescape(Escape(tt.text)))
		})
	}
}

func TestJoinComponents(t *testing.T) {
	assert.Equal(t, `Doe;John;a\;b`, JoinComponents([]string{"Doe", "John", "a;b"}))
	assert.Equal(t, `x,y\,z`, JoinList([]string{"x", "y,z"}))
}
