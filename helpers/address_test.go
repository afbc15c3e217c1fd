package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdkTesting "github.com/gear-dapps/nft-marketplace/testing"
)

func TestResolveActorID(t *testing.T) {
	require := require.New(t)

	id, err := ResolveActorID("test:alice")
	require.NoError(err)
	require.True(id.Equal(sdkTesting.Alice.Address))

	id, err = ResolveActorID(sdkTesting.Bob.Address.String())
	require.NoError(err)
	require.True(id.Equal(sdkTesting.Bob.Address))

	for _, malformed := range []string{
		"",
		"alice",
		"test:eve",
		"pool:rewards",
		"0x1234",
	} {
		_, err = ResolveActorID(malformed)
		require.Error(err, malformed)
	}
}

func TestResolveTestKey(t *testing.T) {
	require := require.New(t)

	key, err := ResolveTestKey("test:dave")
	require.NoError(err)
	require.True(key.Address.Equal(sdkTesting.Dave.Address))

	for _, malformed := range []string{
		"",
		"dave",
		"test:eve",
		sdkTesting.Dave.Address.String(),
	} {
		_, err = ResolveTestKey(malformed)
		require.Error(err, malformed)
	}
}
