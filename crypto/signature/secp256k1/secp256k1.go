// Package secp256k1 provides Secp256k1 signers and public keys.
package secp256k1

import (
	"crypto/sha512"
	"encoding"
	"encoding/base64"
	"encoding/json"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"

	sdkSignature "github.com/gear-dapps/nft-marketplace/crypto/signature"
)

var (
	_ encoding.BinaryMarshaler   = PublicKey{}
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.TextMarshaler     = PublicKey{}
	_ encoding.TextUnmarshaler   = (*PublicKey)(nil)
)

// PublicKey is a Secp256k1 public key.
type PublicKey btcec.PublicKey

type serializedPublicKey struct {
	Secp256k1 []byte `json:"secp256k1"`
}

func (pk PublicKey) MarshalCBOR() ([]byte, error) {
	bpk := btcec.PublicKey(pk)
	return cbor.Marshal(serializedPublicKey{Secp256k1: bpk.SerializeCompressed()}), nil
}

func (pk PublicKey) MarshalJSON() ([]byte, error) {
	bpk := btcec.PublicKey(pk)
	return json.Marshal(serializedPublicKey{Secp256k1: bpk.SerializeCompressed()})
}

// MarshalBinary encodes a public key into binary form.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	bpk := btcec.PublicKey(pk)
	return bpk.SerializeCompressed(), nil
}

// UnmarshalBinary decodes a binary marshaled public key.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	parsedPK, err := btcec.ParsePubKey(data)
	if err != nil {
		return err
	}
	*pk = PublicKey(*parsedPK)
	return nil
}

// MarshalText encodes a public key into text form.
func (pk PublicKey) MarshalText() ([]byte, error) {
	serialized, _ := pk.MarshalBinary()
	return []byte(base64.StdEncoding.EncodeToString(serialized)), nil
}

// UnmarshalText decodes a text marshaled public key.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	decodedPK, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return err
	}
	return pk.UnmarshalBinary(decodedPK)
}

// String returns a string representation of the public key.
func (pk PublicKey) String() string {
	data, _ := pk.MarshalText()
	return string(data)
}

// Equal compares vs another public key for equality.
func (pk PublicKey) Equal(other sdkSignature.PublicKey) bool {
	opk, ok := other.(PublicKey)
	if !ok {
		return false
	}
	bpk := btcec.PublicKey(pk)
	bopk := btcec.PublicKey(opk)
	return bpk.IsEqual(&bopk)
}

// Verify returns true iff the signature is valid for the public key over the
// context and message.
func (pk PublicKey) Verify(context, message, signature []byte) bool {
	sig, err := btcecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	bpk := btcec.PublicKey(pk)
	return sig.Verify(digest(context, message), &bpk)
}

type signer struct {
	privateKey *btcec.PrivateKey
}

func (s *signer) Public() sdkSignature.PublicKey {
	return PublicKey(*s.privateKey.PubKey())
}

func (s *signer) ContextSign(context, message []byte) ([]byte, error) {
	sig := btcecdsa.Sign(s.privateKey, digest(context, message))
	return sig.Serialize(), nil
}

func (s *signer) String() string {
	return s.Public().String()
}

func (s *signer) Reset() {
	s.privateKey.Zero()
	s.privateKey = nil
}

// NewSigner creates a new Secp256k1 signer using the given private key bytes.
func NewSigner(pk []byte) sdkSignature.Signer {
	privKey, _ := btcec.PrivKeyFromBytes(pk)
	return &signer{privateKey: privKey}
}

func digest(context, message []byte) []byte {
	h := sha512.New512_256()
	_, _ = h.Write(context)
	_, _ = h.Write(message)
	return h.Sum(nil)
}
