package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashUserID(t *testing.T) {
	t.Parallel()

	h1 := HashUserID(123456)
	h2 := HashUserID(123456)
	h3 := HashUserID(654321)

	require.Len(t, h1, 8)
	require.Equal(t, h1, h2, "same ID hashes identically")
	require.NotEqual(t, h1, h3, "different IDs hash differently")
	require.NotContains(t, h1, "123456", "raw ID must not leak")
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<empty>", SanitizeText(""))
	require.Equal(t, "<5 chars>", SanitizeText("hello"))

	long := SanitizeText("350 groceries and a very long note")
	require.Contains(t, long, "350")
	require.Contains(t, long, "chars>")
	require.NotContains(t, long, "groceries")
}
