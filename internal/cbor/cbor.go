// Package cbor provides helpers for canonical CBOR serialization.
//
// All on-wire payloads exchanged with the node and the deployed programs use
// the canonical encoding produced by this package so that payload hashes are
// stable across implementations.
package cbor

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// RawMessage is a raw encoded CBOR value.
type RawMessage = cbor.RawMessage

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	encOpts := cbor.CanonicalEncOptions()
	encOpts.Time = cbor.TimeUnix
	var err error
	if encMode, err = encOpts.EncMode(); err != nil {
		panic(err)
	}

	decOpts := cbor.DecOptions{
		// Reject cyclic structures and absurdly deep payloads early.
		MaxNestedLevels: 32,
	}
	if decMode, err = decOpts.DecMode(); err != nil {
		panic(err)
	}
}

// Marshal serializes a given type into a CBOR byte vector.
func Marshal(src interface{}) []byte {
	b, err := encMode.Marshal(src)
	if err != nil {
		panic("cbor: failed to marshal: " + err.Error())
	}
	return b
}

// Unmarshal deserializes a CBOR byte vector into a given type.
func Unmarshal(data []byte, dst interface{}) error {
	if data == nil {
		return nil
	}
	return decMode.Unmarshal(data, dst)
}

// MustUnmarshal deserializes a CBOR byte vector into a given type.
// Panics if unmarshal fails.
func MustUnmarshal(data []byte, dst interface{}) {
	if err := Unmarshal(data, dst); err != nil {
		panic(err)
	}
}

// NewEncoder creates a new CBOR encoder over the given writer.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a new CBOR decoder over the given reader.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
