package httpfetch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ab", truncate("abc", 2))
	require.Equal(t, "žl", truncate("žluť", 2))
	require.Equal(t, "", truncate("abc", 0))
}

func TestCollapseSpace(t *testing.T) {
	require.Equal(t, "a b c", collapseSpace("  a\n\t b   c \r\n"))
	require.Equal(t, "", collapseSpace(" \n "))
}
