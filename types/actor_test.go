package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gear-dapps/nft-marketplace/crypto/signature/ed25519"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

func TestActorIDDerivation(t *testing.T) {
	require := require.New(t)

	signer := ed25519.NewTestSigner("nft-marketplace/types: actor derivation test")
	id := NewActorID(signer.Public())
	require.False(id.IsZero())

	// The derivation must be stable for a given public key.
	id2 := NewActorID(signer.Public())
	require.True(id.Equal(id2))

	other := ed25519.NewTestSigner("nft-marketplace/types: some other key")
	require.False(id.Equal(NewActorID(other.Public())))
}

func TestActorIDText(t *testing.T) {
	require := require.New(t)

	signer := ed25519.NewTestSigner("nft-marketplace/types: actor text test")
	id := NewActorID(signer.Public())

	text := id.String()
	require.Len(text, 2+2*32)
	require.Equal("0x", text[:2])

	var dec ActorID
	err := dec.UnmarshalText([]byte(text))
	require.NoError(err, "text serialization should round-trip")
	require.True(id.Equal(dec))

	require.True(id.Equal(NewActorIDFromHex(text)))

	for _, malformed := range []string{
		"",
		"0x",
		"0xabc",
		"xx0000000000000000000000000000000000000000000000000000000000000000",
		"0x00000000000000000000000000000000000000000000000000000000000000zz",
	} {
		var bad ActorID
		require.Error(bad.UnmarshalText([]byte(malformed)), "malformed: %s", malformed)
	}
}

func TestActorIDSerialization(t *testing.T) {
	require := require.New(t)

	signer := ed25519.NewTestSigner("nft-marketplace/types: actor cbor test")
	id := NewActorID(signer.Public())

	var dec ActorID
	err := cbor.Unmarshal(cbor.Marshal(id), &dec)
	require.NoError(err, "serialization should round-trip")
	require.True(id.Equal(dec))

	err = dec.UnmarshalCBOR(cbor.Marshal([]byte{0x01, 0x02}))
	require.ErrorIs(err, ErrMalformedActorID)
}

func TestProgramIDDerivation(t *testing.T) {
	require := require.New(t)

	code := []byte("\x00asm pretend this is a wasm blob")
	codeID := NewHash(code)

	id := NewProgramID(codeID, []byte("salt-1"))
	require.False(id.IsZero())
	require.True(id.Equal(NewProgramID(codeID, []byte("salt-1"))), "derivation must be deterministic")
	require.False(id.Equal(NewProgramID(codeID, []byte("salt-2"))), "salt must change the derived ID")

	otherCode := NewHash([]byte("another blob"))
	require.False(id.Equal(NewProgramID(otherCode, []byte("salt-1"))), "code must change the derived ID")

	// Program and account ID derivations are domain separated.
	signer := ed25519.NewTestSigner("nft-marketplace/types: program id test")
	require.False(NewActorID(signer.Public()).Equal(NewProgramID(codeID, nil)))
}
