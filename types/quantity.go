package types

import (
	"encoding"
	"fmt"
	"math/big"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

// ErrInsufficientBalance is the error returned when a subtraction would
// underflow.
var ErrInsufficientBalance = fmt.Errorf("types: insufficient balance")

var (
	_ encoding.TextMarshaler   = Quantity{}
	_ encoding.TextUnmarshaler = (*Quantity)(nil)
)

// Quantity is an arbitrary precision unsigned integer used for token amounts
// and prices. On the wire it is a big-endian byte string; the contracts bound
// it to 128 bits.
type Quantity struct {
	inner big.Int
}

// TokenID is a non-fungible token identifier (U256 on the wire).
type TokenID = Quantity

// Price is a token amount used as an item price.
type Price = Quantity

// NewQuantity creates a new zero quantity.
func NewQuantity() *Quantity {
	return &Quantity{}
}

// NewFromUint64 creates a new quantity from an uint64.
func NewFromUint64(n uint64) *Quantity {
	var q Quantity
	q.inner.SetUint64(n)
	return &q
}

// NewTokenID creates a new token ID from an uint64.
func NewTokenID(n uint64) TokenID {
	return *NewFromUint64(n)
}

// FromBigInt converts from a big.Int to a Quantity.
func (q *Quantity) FromBigInt(n *big.Int) error {
	if n == nil || n.Sign() < 0 {
		return fmt.Errorf("types: invalid quantity")
	}
	q.inner.Set(n)
	return nil
}

// ToBigInt returns the quantity as a big.Int copy.
func (q *Quantity) ToBigInt() *big.Int {
	return new(big.Int).Set(&q.inner)
}

// Clone copies a quantity.
func (q *Quantity) Clone() *Quantity {
	var c Quantity
	c.inner.Set(&q.inner)
	return &c
}

// Add adds n to q.
func (q *Quantity) Add(n *Quantity) {
	q.inner.Add(&q.inner, &n.inner)
}

// Sub subtracts exactly n from q, failing when that would underflow.
func (q *Quantity) Sub(n *Quantity) error {
	if q.inner.Cmp(&n.inner) < 0 {
		return ErrInsufficientBalance
	}
	q.inner.Sub(&q.inner, &n.inner)
	return nil
}

// Cmp compares q to n: -1 if q < n, 0 if q == n and 1 if q > n.
func (q *Quantity) Cmp(n *Quantity) int {
	return q.inner.Cmp(&n.inner)
}

// IsZero returns true iff the quantity is zero.
func (q *Quantity) IsZero() bool {
	return q.inner.Sign() == 0
}

// Uint64 returns the quantity as an uint64, failing when it does not fit.
func (q *Quantity) Uint64() (uint64, error) {
	if !q.inner.IsUint64() {
		return 0, fmt.Errorf("types: quantity out of uint64 range")
	}
	return q.inner.Uint64(), nil
}

// MarshalCBOR encodes a quantity as a big-endian CBOR byte string.
func (q Quantity) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(q.inner.Bytes()), nil
}

// UnmarshalCBOR decodes a big-endian CBOR byte string into a quantity.
func (q *Quantity) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	q.inner.SetBytes(b)
	return nil
}

// MarshalText encodes a quantity into decimal text form.
func (q Quantity) MarshalText() ([]byte, error) {
	return q.inner.MarshalText()
}

// UnmarshalText decodes a text marshaled quantity.
func (q *Quantity) UnmarshalText(text []byte) error {
	var n big.Int
	if err := n.UnmarshalText(text); err != nil {
		return err
	}
	return q.FromBigInt(&n)
}

// String returns the decimal representation of the quantity.
func (q Quantity) String() string {
	return q.inner.String()
}
