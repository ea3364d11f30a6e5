package greyrockfetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", normalizeWhitespace("  a\n\t b \r\n c  "))
	assert.Equal(t, "", normalizeWhitespace(" \n\t "))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Office", capitalizeFirst("OFFICE"))
	assert.Equal(t, "Mixed-use", capitalizeFirst("mixed-use"))
	assert.Equal(t, "", capitalizeFirst("  "))
}

func TestParseMoney(t *testing.T) {
	v, ok := parseMoney("1,234.56")
	assert.True(t, ok)
	assert.Equal(t, 1234.56, v)

	_, ok = parseMoney("")
	assert.False(t, ok)

	_, ok = parseMoney("abc")
	assert.False(t, ok)
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", truncateWithEllipsis("short", 10))

	got := truncateWithEllipsis("abcdefghij", 5)
	assert.Equal(t, "abcde…", got)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcd1234", shortID("abcd1234-0001-ffff"))
	assert.Equal(t, "ab", shortID("ab"))
}
