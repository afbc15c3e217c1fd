package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveChainContext(t *testing.T) {
	require := require.New(t)

	base := []byte("nft-marketplace/message: v1")
	ctx := DeriveChainContext(base, []byte("genesis hash"))

	require.True(strings.HasPrefix(string(ctx), string(base)+chainContextSeparator))
	require.Len(ctx, len(base)+len(chainContextSeparator)+64, "chain context should carry a hex encoded hash")

	// Different chains must yield different contexts.
	other := DeriveChainContext(base, []byte("other genesis hash"))
	require.NotEqual(ctx, other)

	// The derivation must be stable.
	require.Equal(ctx, DeriveChainContext(base, []byte("genesis hash")))
}
