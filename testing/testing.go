// Package testing provides deterministic keys for use in tests.
package testing

import (
	"crypto/sha512"

	"github.com/gear-dapps/nft-marketplace/crypto/signature"
	"github.com/gear-dapps/nft-marketplace/crypto/signature/ed25519"
	"github.com/gear-dapps/nft-marketplace/crypto/signature/secp256k1"
	"github.com/gear-dapps/nft-marketplace/types"
)

// TestKey is a key used for testing.
type TestKey struct {
	Signer  signature.Signer
	Address types.ActorID
}

func newEd25519TestKey(seed string) TestKey {
	signer := ed25519.NewTestSigner(seed)
	return TestKey{
		Signer:  signer,
		Address: types.NewActorID(signer.Public()),
	}
}

func newSecp256k1TestKey(seed string) TestKey {
	sk := sha512.Sum512_256([]byte(seed))
	signer := secp256k1.NewSigner(sk[:])
	return TestKey{
		Signer:  signer,
		Address: types.NewActorID(signer.Public()),
	}
}

var (
	// Alice is the test key A. Scenarios use it as the marketplace admin.
	Alice = newEd25519TestKey("nft-marketplace/test-keys: alice")
	// Bob is the test key B.
	Bob = newEd25519TestKey("nft-marketplace/test-keys: bob")
	// Charlie is the test key C.
	Charlie = newEd25519TestKey("nft-marketplace/test-keys: charlie")
	// Dave is the test key D.
	Dave = newSecp256k1TestKey("nft-marketplace/test-keys: dave")

	// TestAccounts contains all test keys.
	TestAccounts = map[string]TestKey{
		"alice":   Alice,
		"bob":     Bob,
		"charlie": Charlie,
		"dave":    Dave,
	}
)
