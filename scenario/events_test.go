package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/market"
	sdkTesting "github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

func soldEvent(owner types.ActorID, token uint64) *market.Event {
	return &market.Event{ItemSold: &market.ItemSold{
		Owner:         owner,
		NftContractID: sdkTesting.Alice.Address,
		TokenID:       types.NewTokenID(token),
	}}
}

func TestWaitForEventUntil(t *testing.T) {
	require := require.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch := make(chan *client.BlockEvents, 3)
	ch <- &client.BlockEvents{Round: 1, Events: []client.DecodedEvent{
		&market.Event{MarketDataAdded: &market.MarketDataAdded{TokenID: types.NewTokenID(1)}},
	}}
	ch <- &client.BlockEvents{Round: 2, Events: []client.DecodedEvent{
		soldEvent(sdkTesting.Bob.Address, 1),
		soldEvent(sdkTesting.Charlie.Address, 2),
	}}

	// The first matching event wins; earlier non-matching ones are skipped.
	ev, err := WaitForEventUntil(ctx, ch, func(e *market.Event) bool {
		return e.ItemSold != nil && e.ItemSold.Owner.Equal(sdkTesting.Charlie.Address)
	})
	require.NoError(err)
	require.NotNil(ev.ItemSold)
	require.Zero(ev.ItemSold.TokenID.Cmp(types.NewFromUint64(2)))

	// Context cancellation unblocks the wait.
	cancelCtx, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = WaitForNextEvent[*market.Event](cancelCtx, ch)
	require.ErrorIs(err, context.Canceled)
}

func TestEnsureMarketEvent(t *testing.T) {
	require := require.New(t)

	ch := make(chan *client.BlockEvents, 1)
	ch <- &client.BlockEvents{Round: 9, Events: []client.DecodedEvent{
		soldEvent(sdkTesting.Bob.Address, 5),
	}}

	round, err := EnsureMarketEvent(zaptest.NewLogger(t), ch,
		MakeItemSoldCheck(sdkTesting.Bob.Address, sdkTesting.Alice.Address, types.NewTokenID(5)),
	)
	require.NoError(err)
	require.EqualValues(9, round)

	// A closed channel fails the wait.
	close(ch)
	_, err = EnsureMarketEvent(zaptest.NewLogger(t), ch, func(*market.Event) bool { return true })
	require.Error(err)
}
