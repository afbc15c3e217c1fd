package types

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/gear-dapps/nft-marketplace/crypto/signature"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

// ActorIDSize is the size of an actor identifier in bytes.
const ActorIDSize = 32

var (
	// ErrMalformedActorID is the error returned when an actor identifier is malformed.
	ErrMalformedActorID = fmt.Errorf("types: malformed actor ID")

	actorIDAccountContext = []byte("nft-marketplace/actor-id: account")
	programIDContext      = []byte("nft-marketplace/actor-id: program")

	_ encoding.BinaryMarshaler   = ActorID{}
	_ encoding.BinaryUnmarshaler = (*ActorID)(nil)
	_ encoding.TextMarshaler     = ActorID{}
	_ encoding.TextUnmarshaler   = (*ActorID)(nil)
)

// ActorID is a 32-byte account or program identifier.
type ActorID [ActorIDSize]byte

// ContractID is an actor identifier of a deployed program.
type ContractID = ActorID

// MarshalBinary encodes an actor ID into binary form.
func (id ActorID) MarshalBinary() ([]byte, error) {
	return id[:], nil
}

// UnmarshalBinary decodes a binary marshaled actor ID.
func (id *ActorID) UnmarshalBinary(data []byte) error {
	if len(data) != ActorIDSize {
		return ErrMalformedActorID
	}
	copy(id[:], data)
	return nil
}

// MarshalText encodes an actor ID into 0x-prefixed hex form.
func (id ActorID) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(id[:])), nil
}

// UnmarshalText decodes a text marshaled actor ID.
func (id *ActorID) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return ErrMalformedActorID
	}
	return id.UnmarshalBinary(data)
}

// MarshalCBOR encodes an actor ID as a CBOR byte string.
func (id ActorID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(id[:]), nil
}

// UnmarshalCBOR decodes a CBOR byte string into an actor ID.
func (id *ActorID) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	return id.UnmarshalBinary(b)
}

// String returns the 0x-prefixed hex representation of the actor ID.
func (id ActorID) String() string {
	data, _ := id.MarshalText()
	return string(data)
}

// Equal compares vs another actor ID for equality.
func (id ActorID) Equal(other ActorID) bool {
	return id == other
}

// IsZero returns true iff the actor ID is the all-zero reserved identifier.
func (id ActorID) IsZero() bool {
	return id == ActorID{}
}

// NewActorID creates a new actor ID from the given public key.
func NewActorID(pk signature.PublicKey) ActorID {
	var id ActorID
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	_, _ = h.Write(actorIDAccountContext)
	_, _ = h.Write([]byte(pk.String()))
	copy(id[:], h.Sum(nil))
	return id
}

// NewActorIDFromHex creates a new actor ID from the given hex representation
// or panics.
func NewActorIDFromHex(text string) (id ActorID) {
	if err := id.UnmarshalText([]byte(text)); err != nil {
		panic(err)
	}
	return
}

// NewProgramID derives the actor ID a program deployed with the given code
// identifier and salt will be assigned. The derivation matches the one the
// node performs on upload.
func NewProgramID(code CodeID, salt []byte) ActorID {
	var id ActorID
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	_, _ = h.Write(programIDContext)
	_, _ = h.Write(code[:])
	_, _ = h.Write(salt)
	copy(id[:], h.Sum(nil))
	return id
}
