package scenario

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/market"
	"github.com/gear-dapps/nft-marketplace/types"
)

const eventTimeout = 2 * time.Minute

// WaitForNextEvent waits for the next event of the given kind and returns it.
//
// All of the other events are discarded.
func WaitForNextEvent[T client.DecodedEvent](ctx context.Context, ch <-chan *client.BlockEvents) (T, error) {
	return WaitForEventUntil[T](ctx, ch, func(T) bool { return true })
}

// WaitForEventUntil waits for the event of the given kind to satisfy the
// given condition and then returns the event.
//
// All of the other events are discarded.
func WaitForEventUntil[T client.DecodedEvent](
	ctx context.Context,
	ch <-chan *client.BlockEvents,
	condFn func(T) bool,
) (T, error) {
	var empty T
	for {
		select {
		case <-ctx.Done():
			return empty, ctx.Err()
		case <-time.After(eventTimeout):
			return empty, fmt.Errorf("timeout waiting for event")
		case bev := <-ch:
			if bev == nil {
				return empty, fmt.Errorf("event channel closed")
			}

			for _, ev := range bev.Events {
				re, ok := ev.(T)
				if !ok {
					continue
				}

				if !condFn(re) {
					continue
				}
				return re, nil
			}
		}
	}
}

// EnsureMarketEvent waits for a marketplace event matching the given check.
// It returns the round the event was emitted in.
func EnsureMarketEvent(logger *zap.Logger, ch <-chan *client.BlockEvents, check func(*market.Event) bool) (uint64, error) {
	logger.Info("waiting for expected marketplace event")
	for {
		select {
		case bev, ok := <-ch:
			if !ok {
				return 0, fmt.Errorf("event channel closed")
			}
			for _, ev := range bev.Events {
				me, isMarket := ev.(*market.Event)
				if !isMarket {
					continue
				}
				if check(me) {
					return bev.Round, nil
				}
			}
		case <-time.After(eventTimeout):
			return 0, fmt.Errorf("timeout waiting for event")
		}
	}
}

// MakeItemSoldCheck matches an ItemSold event for the given item and buyer.
func MakeItemSoldCheck(owner types.ActorID, nftContractID types.ContractID, tokenID types.TokenID) func(*market.Event) bool {
	return func(e *market.Event) bool {
		if e.ItemSold == nil {
			return false
		}
		if !e.ItemSold.Owner.Equal(owner) {
			return false
		}
		if !e.ItemSold.NftContractID.Equal(nftContractID) {
			return false
		}
		return e.ItemSold.TokenID.Cmp(&tokenID) == 0
	}
}

// MakeAuctionSettledCheck matches an AuctionSettled event for the given item
// settled at the given price.
func MakeAuctionSettledCheck(nftContractID types.ContractID, tokenID types.TokenID, price types.Price) func(*market.Event) bool {
	return func(e *market.Event) bool {
		if e.AuctionSettled == nil {
			return false
		}
		if !e.AuctionSettled.NftContractID.Equal(nftContractID) {
			return false
		}
		if e.AuctionSettled.TokenID.Cmp(&tokenID) != 0 {
			return false
		}
		return e.AuctionSettled.Price.Cmp(&price) == 0
	}
}
