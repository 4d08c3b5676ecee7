package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abc", TruncateString("abcdef", 3))
	assert.Equal(t, "", TruncateString("", 5))
}

func TestTruncateString_KeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("héllo wörld ", 20)

	out := TruncateString(s, 50)
	assert.True(t, utf8.ValidString(out), "truncation must not split a multi-byte rune")
	assert.Equal(t, 50, utf8.RuneCountInString(out))
	assert.True(t, strings.HasPrefix(s, out))

	emoji := "chat 🎉🎉🎉"
	out = TruncateString(emoji, 6)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "chat 🎉", out)
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("yemmy_fan-01"))
	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername("has space"))
	assert.False(t, ValidateUsername(strings.Repeat("x", 31)))
}
