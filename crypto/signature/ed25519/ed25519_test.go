package ed25519

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

func TestSignerRoundTrip(t *testing.T) {
	require := require.New(t)

	signer := NewTestSigner("nft-marketplace/ed25519: test signer")
	ctx := []byte("test context")
	message := []byte("test message")

	sig, err := signer.ContextSign(ctx, message)
	require.NoError(err)

	pk := signer.Public()
	require.True(pk.Verify(ctx, message, sig))
	require.False(pk.Verify([]byte("wrong context"), message, sig))
	require.False(pk.Verify(ctx, []byte("wrong message"), sig))
	require.False(pk.Verify(ctx, message, sig[:len(sig)-1]))

	other := NewTestSigner("nft-marketplace/ed25519: other signer")
	require.False(other.Public().Verify(ctx, message, sig))
	require.False(pk.Equal(other.Public()))
	require.True(pk.Equal(signer.Public()))
}

func TestPublicKeySerialization(t *testing.T) {
	require := require.New(t)

	signer := NewTestSigner("nft-marketplace/ed25519: serialization")
	pk := signer.Public().(PublicKey)

	// On the wire the key is tagged with its scheme.
	var tagged serializedPublicKey
	err := cbor.Unmarshal(cbor.Marshal(pk), &tagged)
	require.NoError(err, "serialization should round-trip")
	var dec PublicKey
	require.NoError(dec.UnmarshalBinary(tagged.Ed25519))
	require.True(pk.Equal(dec))

	text, err := pk.MarshalText()
	require.NoError(err)
	var dec2 PublicKey
	require.NoError(dec2.UnmarshalText(text))
	require.True(pk.Equal(dec2))
	require.Equal(string(text), pk.String())

	require.ErrorIs(dec2.UnmarshalBinary([]byte{0x01, 0x02}), ErrMalformedPublicKey, "truncated keys should be rejected")
}
