package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustMeta(t *testing.T, s string) *Meta {
	t.Helper()
	m, err := ParseMeta([]byte(s))
	require.NoError(t, err)
	return m
}
