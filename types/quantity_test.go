package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

func TestQuantityArithmetic(t *testing.T) {
	require := require.New(t)

	q := NewFromUint64(100)
	q.Add(NewFromUint64(23))
	require.EqualValues("123", q.String())

	err := q.Sub(NewFromUint64(23))
	require.NoError(err)
	require.EqualValues("100", q.String())

	err = q.Sub(NewFromUint64(1000))
	require.ErrorIs(err, ErrInsufficientBalance)
	require.EqualValues("100", q.String(), "failed subtraction should not change the quantity")

	require.Equal(0, q.Cmp(NewFromUint64(100)))
	require.Equal(-1, q.Cmp(NewFromUint64(101)))
	require.Equal(1, q.Cmp(NewFromUint64(99)))

	require.False(q.IsZero())
	require.True(NewQuantity().IsZero())

	n, err := q.Uint64()
	require.NoError(err)
	require.EqualValues(100, n)

	c := q.Clone()
	c.Add(NewFromUint64(1))
	require.EqualValues("100", q.String(), "clone should not alias the original")
}

func TestQuantityFromBigInt(t *testing.T) {
	require := require.New(t)

	var q Quantity
	err := q.FromBigInt(big.NewInt(-1))
	require.Error(err, "negative quantities should be rejected")

	err = q.FromBigInt(nil)
	require.Error(err, "nil quantities should be rejected")

	err = q.FromBigInt(new(big.Int).Lsh(big.NewInt(1), 100))
	require.NoError(err)
	_, err = q.Uint64()
	require.Error(err, "out of range quantities should not fit an uint64")
}

func TestQuantitySerialization(t *testing.T) {
	require := require.New(t)

	for _, n := range []uint64{0, 1, 255, 256, 65535, 1_000_000_000_000} {
		q := NewFromUint64(n)

		var dec Quantity
		err := cbor.Unmarshal(cbor.Marshal(q), &dec)
		require.NoError(err, "serialization should round-trip")
		require.Zero(q.Cmp(&dec), "serialization should round-trip")
	}

	// The wire form is a big-endian byte string without leading zeros.
	raw := cbor.Marshal(NewFromUint64(256))
	var b []byte
	err := cbor.Unmarshal(raw, &b)
	require.NoError(err)
	require.EqualValues([]byte{0x01, 0x00}, b)

	var text Quantity
	err = text.UnmarshalText([]byte("42"))
	require.NoError(err)
	require.EqualValues("42", text.String())

	err = text.UnmarshalText([]byte("-42"))
	require.Error(err, "negative text quantities should be rejected")
}
