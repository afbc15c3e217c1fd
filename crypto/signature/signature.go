// Package signature contains the cryptographic signature types.
package signature

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const chainContextSeparator = " for chain "

// PublicKey is a public key.
type PublicKey interface {
	// String returns a string representation of the public key.
	String() string

	// Equal compares vs another public key for equality.
	Equal(other PublicKey) bool

	// Verify returns true iff the signature is valid for the public key over the context and
	// message.
	Verify(context, message, signature []byte) bool
}

// Signer is an opaque interface for private keys that is capable of producing
// signatures, in the spirit of `crypto.Signer`.
type Signer interface {
	// Public returns the PublicKey corresponding to the signer.
	Public() PublicKey

	// ContextSign generates a signature with the private key over the context
	// and message.
	ContextSign(context, message []byte) ([]byte, error)

	// String returns the string representation of a Signer, which MUST not
	// include any sensitive information.
	String() string

	// Reset tears down the Signer and obliterates any sensitive state if any.
	Reset()
}

// Context is the chain domain separation context used for signing messages.
type Context []byte

// DeriveChainContext derives the chain domain separation context for the
// given base context and genesis hash.
func DeriveChainContext(base, genesisHash []byte) Context {
	sum := blake2b.Sum256(genesisHash)
	ctx := append([]byte{}, base...)
	ctx = append(ctx, []byte(chainContextSeparator)...)
	ctx = append(ctx, []byte(hex.EncodeToString(sum[:]))...)
	return ctx
}
