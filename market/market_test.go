package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	sdkTesting "github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

// mockNode serves canned state replies and events.
type mockNode struct {
	client.Node

	reply  StateReply
	events []*types.Event

	lastQuery cbor.RawMessage
}

func (m *mockNode) Query(ctx context.Context, round uint64, method string, args, rsp interface{}) error {
	m.lastQuery = cbor.Marshal(args)
	return cbor.Unmarshal(cbor.Marshal(m.reply), rsp)
}

func (m *mockNode) GetEvents(ctx context.Context, round uint64) ([]*types.Event, error) {
	return m.events, nil
}

func TestActionMessages(t *testing.T) {
	require := require.New(t)

	program := sdkTesting.Alice.Address
	m := NewV1(&mockNode{}, program)
	require.True(m.Program().Equal(program))

	nftContract := sdkTesting.Bob.Address
	mb := m.AddNftContract(nftContract)
	require.Equal("program.Send", mb.GetMessage().Call.Method)

	// The payload is the destination program and the encoded action.
	var body struct {
		Destination types.ActorID   `json:"destination"`
		Payload     cbor.RawMessage `json:"payload"`
	}
	require.NoError(cbor.Unmarshal(mb.GetMessage().Call.Body, &body))
	require.True(body.Destination.Equal(program))

	var action Action
	require.NoError(cbor.Unmarshal(body.Payload, &action))
	require.NotNil(action.AddNftContract)
	require.True(action.AddNftContract.Equal(nftContract))
}

func TestQueries(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	nc := &mockNode{}
	m := NewV1(nc, sdkTesting.Alice.Address)

	item := Item{
		Owner: sdkTesting.Bob.Address,
		Price: types.NewFromUint64(1_000),
	}
	nc.reply = StateReply{ItemInfo: &item}
	got, err := m.Item(ctx, client.RoundLatest, sdkTesting.Alice.Address, types.NewTokenID(1))
	require.NoError(err)
	require.True(got.Owner.Equal(sdkTesting.Bob.Address))

	// The query names the item.
	var req client.StateRequest
	require.NoError(cbor.Unmarshal(nc.lastQuery, &req))
	var query StateQuery
	require.NoError(cbor.Unmarshal(req.Payload, &query))
	require.NotNil(query.ItemInfo)
	require.Zero(query.ItemInfo.TokenID.Cmp(types.NewFromUint64(1)))

	nc.reply = StateReply{AllItems: []Item{item}}
	items, err := m.AllItems(ctx, client.RoundLatest)
	require.NoError(err)
	require.Len(items, 1)

	nc.reply = StateReply{Info: &Info{
		AdminID:     sdkTesting.Alice.Address,
		TreasuryFee: 3,
	}}
	info, err := m.Info(ctx, client.RoundLatest)
	require.NoError(err)
	require.EqualValues(3, info.TreasuryFee)

	// Missing items surface as errors.
	nc.reply = StateReply{}
	_, err = m.Item(ctx, client.RoundLatest, sdkTesting.Alice.Address, types.NewTokenID(9))
	require.Error(err)
}

func TestGetEvents(t *testing.T) {
	require := require.New(t)

	nc := &mockNode{events: []*types.Event{
		{
			Module: ModuleName,
			Code:   1,
			Value: cbor.Marshal([]*Event{
				{NftContractAdded: &sdkTesting.Bob.Address},
			}),
		},
		{
			Module: "nft",
			Code:   1,
			Value:  cbor.Marshal([]*Event{{TransactionFailed: &Empty{}}}),
		},
	}}
	m := NewV1(nc, sdkTesting.Alice.Address)

	evs, err := m.GetEvents(context.Background(), 5)
	require.NoError(err)
	require.Len(evs, 1, "foreign module events should be skipped")
	require.NotNil(evs[0].NftContractAdded)
}
