package ft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	sdkTesting "github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

func TestActionSerialization(t *testing.T) {
	require := require.New(t)

	action := Action{Transfer: &Transfer{
		From:   sdkTesting.Alice.Address,
		To:     sdkTesting.Bob.Address,
		Amount: *types.NewFromUint64(1_000),
	}}

	var dec Action
	err := cbor.Unmarshal(cbor.Marshal(action), &dec)
	require.NoError(err, "serialization should round-trip")
	require.NotNil(dec.Transfer)
	require.True(dec.Transfer.From.Equal(sdkTesting.Alice.Address))
	require.Zero(dec.Transfer.Amount.Cmp(types.NewFromUint64(1_000)))
	require.Nil(dec.Mint)
	require.Nil(dec.Burn)
}

func TestDecodeEvent(t *testing.T) {
	require := require.New(t)

	evs := []*Event{{Transfer: &TransferEvent{
		From:   sdkTesting.Alice.Address,
		To:     sdkTesting.Bob.Address,
		Amount: *types.NewFromUint64(42),
	}}}

	decoded, err := DecodeEvent(&types.Event{
		Module: ModuleName,
		Code:   1,
		Value:  cbor.Marshal(evs),
	})
	require.NoError(err)
	require.Len(decoded, 1)
	require.NotNil(decoded[0].(*Event).Transfer)

	decoded, err = DecodeEvent(&types.Event{Module: "market", Code: 1, Value: cbor.Marshal(evs)})
	require.NoError(err)
	require.Nil(decoded, "events of other modules should be skipped")
}
