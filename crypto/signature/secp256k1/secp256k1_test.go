package secp256k1

import (
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

func newTestSigner(seed string) *signer {
	sk := sha512.Sum512_256([]byte(seed))
	return NewSigner(sk[:]).(*signer)
}

func TestSignerRoundTrip(t *testing.T) {
	require := require.New(t)

	signer := newTestSigner("nft-marketplace/secp256k1: test signer")
	ctx := []byte("test context")
	message := []byte("test message")

	sig, err := signer.ContextSign(ctx, message)
	require.NoError(err)

	pk := signer.Public()
	require.True(pk.Verify(ctx, message, sig))
	require.False(pk.Verify([]byte("wrong context"), message, sig))
	require.False(pk.Verify(ctx, []byte("wrong message"), sig))
	require.False(pk.Verify(ctx, message, []byte("not a DER signature")))

	other := newTestSigner("nft-marketplace/secp256k1: other signer")
	require.False(other.Public().Verify(ctx, message, sig))
	require.False(pk.Equal(other.Public()))
}

func TestPublicKeySerialization(t *testing.T) {
	require := require.New(t)

	pk := newTestSigner("nft-marketplace/secp256k1: serialization").Public().(PublicKey)

	var tagged serializedPublicKey
	err := cbor.Unmarshal(cbor.Marshal(pk), &tagged)
	require.NoError(err, "serialization should round-trip")
	require.Len(tagged.Secp256k1, 33, "keys should serialize compressed")

	var dec PublicKey
	require.NoError(dec.UnmarshalBinary(tagged.Secp256k1))
	require.True(pk.Equal(dec))

	text, err := pk.MarshalText()
	require.NoError(err)
	var dec2 PublicKey
	require.NoError(dec2.UnmarshalText(text))
	require.True(pk.Equal(dec2))

	require.Error(dec2.UnmarshalBinary([]byte{0x02, 0x03}), "truncated keys should be rejected")
}
