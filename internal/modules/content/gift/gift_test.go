package gift

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSlugStripsInvalidCharacters(t *testing.T) {
	require.Equal(t, "for-sam", NormalizeSlug("  For-Sam!  "))
	require.Equal(t, "mypage2026", NormalizeSlug("My_Page 2026"))
	require.Equal(t, "abc123", NormalizeSlug("abc123"))
}

func TestNormalizeSlugGeneratesFallback(t *testing.T) {
	slug := NormalizeSlug("")
	require.True(t, strings.HasPrefix(slug, "gift-"))
	require.Greater(t, len(slug), len("gift-"))

	// All-invalid input also falls back.
	require.True(t, strings.HasPrefix(NormalizeSlug("!!!"), "gift-"))
}
