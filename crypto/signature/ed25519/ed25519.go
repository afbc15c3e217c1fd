// Package ed25519 provides Ed25519 signers and public keys.
package ed25519

import (
	"crypto/sha512"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"

	sdkSignature "github.com/gear-dapps/nft-marketplace/crypto/signature"
)

// ErrMalformedPublicKey is the error returned when a public key is
// malformed.
var ErrMalformedPublicKey = errors.New("ed25519: malformed public key")

var (
	_ encoding.BinaryMarshaler   = PublicKey{}
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.TextMarshaler     = PublicKey{}
	_ encoding.TextUnmarshaler   = (*PublicKey)(nil)
)

// PublicKey is an Ed25519 public key.
type PublicKey [ed25519.PublicKeySize]byte

type serializedPublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

func (pk PublicKey) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(serializedPublicKey{Ed25519: pk[:]}), nil
}

func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(serializedPublicKey{Ed25519: pk[:]})
}

// MarshalBinary encodes a public key into binary form.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return pk[:], nil
}

// UnmarshalBinary decodes a binary marshaled public key.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	if len(data) != ed25519.PublicKeySize {
		return ErrMalformedPublicKey
	}
	copy(pk[:], data)
	return nil
}

// MarshalText encodes a public key into text form.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(base64.StdEncoding.EncodeToString(pk[:])), nil
}

// UnmarshalText decodes a text marshaled public key.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	data, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return err
	}
	return pk.UnmarshalBinary(data)
}

// String returns a string representation of the public key.
func (pk PublicKey) String() string {
	return base64.StdEncoding.EncodeToString(pk[:])
}

// Equal compares vs another public key for equality.
func (pk PublicKey) Equal(other sdkSignature.PublicKey) bool {
	opk, ok := other.(PublicKey)
	if !ok {
		return false
	}
	return pk == opk
}

// Verify returns true iff the signature is valid for the public key over the
// context and message.
func (pk PublicKey) Verify(context, message, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pk[:]), digest(context, message), sig)
}

// NewPublicKey creates a new public key from the given Base64 representation
// or panics.
func NewPublicKey(text string) (pk PublicKey) {
	if err := pk.UnmarshalText([]byte(text)); err != nil {
		panic(err)
	}
	return
}

type signer struct {
	privateKey ed25519.PrivateKey
}

func (s *signer) Public() sdkSignature.PublicKey {
	var pk PublicKey
	copy(pk[:], s.privateKey.Public().(ed25519.PublicKey))
	return pk
}

func (s *signer) ContextSign(context, message []byte) ([]byte, error) {
	return ed25519.Sign(s.privateKey, digest(context, message)), nil
}

func (s *signer) String() string {
	return s.Public().String()
}

func (s *signer) Reset() {
	for i := range s.privateKey {
		s.privateKey[i] = 0
	}
	s.privateKey = nil
}

// NewSigner creates a new Ed25519 signer using the given private key seed.
func NewSigner(seed []byte) sdkSignature.Signer {
	return &signer{privateKey: ed25519.NewKeyFromSeed(seed)}
}

// NewTestSigner generates a deterministic Ed25519 signer from the given seed
// string. It must only be used for testing.
func NewTestSigner(seed string) sdkSignature.Signer {
	sk := sha512.Sum512_256([]byte(seed))
	return NewSigner(sk[:])
}

// Messages are pre-hashed with the signature context to bind every signature
// to a single chain.
func digest(context, message []byte) []byte {
	h := sha512.New512_256()
	_, _ = h.Write(context)
	_, _ = h.Write(message)
	return h.Sum(nil)
}
