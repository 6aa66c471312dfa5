package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIdentifier(t *testing.T) {
	id, ok := ParseIdentifier("42")
	assert.True(t, ok)
	assert.Equal(t, Identifier{ID: 42}, id)
	assert.True(t, id.Matches(42, "whatever"))

	id, ok = ParseIdentifier("3F2504E0-4F89-11D3-9A0C-0305E82C3301")
	assert.True(t, ok)
	assert.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", id.PublicID)
	assert.True(t, id.Matches(0, "3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.False(t, id.Matches(42, "other"))

	for _, raw := range []string{"", "0", "-3", "abc", "42abc"} {
		_, ok := ParseIdentifier(raw)
		assert.False(t, ok, raw)
	}
}
