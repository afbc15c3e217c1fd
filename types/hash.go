package types

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

// HashSize is the size of a hash in bytes.
const HashSize = 32

// ErrMalformedHash is the error returned when a hash is malformed.
var ErrMalformedHash = fmt.Errorf("types: malformed hash")

var (
	_ encoding.BinaryMarshaler   = Hash{}
	_ encoding.BinaryUnmarshaler = (*Hash)(nil)
	_ encoding.TextMarshaler     = Hash{}
	_ encoding.TextUnmarshaler   = (*Hash)(nil)
)

// Hash is a 32-byte BLAKE2b digest.
type Hash [HashSize]byte

// CodeID is the hash identifying uploaded program code.
type CodeID = Hash

// MessageID is the hash identifying a submitted message.
type MessageID = Hash

// NewHash computes a hash over the concatenation of the given byte slices.
func NewHash(data ...[]byte) (h Hash) {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	for _, d := range data {
		_, _ = hasher.Write(d)
	}
	copy(h[:], hasher.Sum(nil))
	return
}

// MarshalBinary encodes a hash into binary form.
func (h Hash) MarshalBinary() ([]byte, error) {
	return h[:], nil
}

// UnmarshalBinary decodes a binary marshaled hash.
func (h *Hash) UnmarshalBinary(data []byte) error {
	if len(data) != HashSize {
		return ErrMalformedHash
	}
	copy(h[:], data)
	return nil
}

// MarshalText encodes a hash into 0x-prefixed hex form.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(h[:])), nil
}

// UnmarshalText decodes a text marshaled hash.
func (h *Hash) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return ErrMalformedHash
	}
	return h.UnmarshalBinary(data)
}

// MarshalCBOR encodes a hash as a CBOR byte string.
func (h Hash) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(h[:]), nil
}

// UnmarshalCBOR decodes a CBOR byte string into a hash.
func (h *Hash) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	return h.UnmarshalBinary(b)
}

// String returns the 0x-prefixed hex representation of the hash.
func (h Hash) String() string {
	data, _ := h.MarshalText()
	return string(data)
}

// Equal compares vs another hash for equality.
func (h Hash) Equal(other Hash) bool {
	return h == other
}
