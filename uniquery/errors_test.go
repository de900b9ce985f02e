package uniquery_test

import (
	"errors"
	"testing"

	"github.com/deepakr2k1/uniquery/uniquery"

	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	err := uniquery.ParseErrorf("unexpected token %q", "FROM")
	require.True(t, uniquery.Is(err, uniquery.KindParseError))
	require.False(t, uniquery.Is(err, uniquery.KindTranslationError))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := uniquery.ConnectionErrorf(cause, "dial failed")
	require.ErrorIs(t, err, cause)
}

func TestError_NeverBothKindsAtOnce(t *testing.T) {
	err := uniquery.UnsupportedJoinOnf("compound ON clause")
	require.True(t, uniquery.Is(err, uniquery.KindUnsupportedJoinOn))
	require.False(t, uniquery.Is(err, uniquery.KindUnsupportedHaving))
}

func TestSuggestKeyword(t *testing.T) {
	require.Equal(t, "SELECT", uniquery.SuggestKeyword("SELCT"))
	require.Equal(t, "WHERE", uniquery.SuggestKeyword("WHER"))
	require.Equal(t, "", uniquery.SuggestKeyword("ZZZZZZZZZZ"))
}
