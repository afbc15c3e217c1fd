package e2e

import (
	"context"
	"fmt"
	"time"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/market"
	"github.com/gear-dapps/nft-marketplace/scenario"
	"github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

const (
	// auctionDuration keeps auction tests short while staying comfortably
	// above a round time.
	auctionDuration  = 10 * time.Second
	auctionBidPeriod = 2 * time.Second
)

func startAuction(ctx context.Context, env *scenario.Env, owner testing.TestKey, minPrice uint64) (types.TokenID, error) {
	tokenID, err := mintAndApprove(ctx, env, owner)
	if err != nil {
		return tokenID, err
	}

	mb := env.Market.CreateAuction(market.CreateAuction{
		NftContractID: env.NFT.Program(),
		TokenID:       tokenID,
		MinPrice:      *types.NewFromUint64(minPrice),
		BidPeriod:     uint64(auctionBidPeriod.Milliseconds()),
		Duration:      uint64(auctionDuration.Milliseconds()),
	})
	if err = submit(ctx, mb, owner); err != nil {
		return tokenID, fmt.Errorf("failed to create auction: %w", err)
	}
	return tokenID, nil
}

// waitAuctionOver polls the item until its auction end passes.
func waitAuctionOver(ctx context.Context, env *scenario.Env, tokenID types.TokenID) error {
	item, err := env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID)
	if err != nil {
		return err
	}
	if item.Auction == nil {
		return fmt.Errorf("no auction on item")
	}

	deadline := time.UnixMilli(int64(item.Auction.EndedAt))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Until(deadline) + time.Second):
	}
	return nil
}

// AuctionTest runs an auction through its full lifecycle: create, a losing
// and a winning bid, and settlement to the highest bidder.
func AuctionTest(ctx context.Context, env *scenario.Env) error {
	ch, err := watchMarketEvents(ctx, env)
	if err != nil {
		return err
	}

	tokenID, err := startAuction(ctx, env, testing.Bob, 1_000)
	if err != nil {
		return err
	}
	if _, err = scenario.WaitForEventUntil(ctx, ch, func(e *market.Event) bool {
		return e.AuctionCreated != nil && e.AuctionCreated.TokenID.Cmp(&tokenID) == 0
	}); err != nil {
		return fmt.Errorf("failed to wait for auction creation: %w", err)
	}

	losing := types.NewFromUint64(2_000)
	winning := types.NewFromUint64(3_000)
	for _, bid := range []struct {
		key   testing.TestKey
		price *types.Price
	}{
		{testing.Charlie, losing},
		{testing.Dave, winning},
	} {
		mb := env.Market.AddBid(market.AddBid{
			NftContractID: env.NFT.Program(),
			TokenID:       tokenID,
			Price:         *bid.price,
		}).SetValue(*bid.price)
		if err = submit(ctx, mb, bid.key); err != nil {
			return fmt.Errorf("failed to place bid: %w", err)
		}
	}

	item, err := env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID)
	if err != nil {
		return err
	}
	if item.Auction == nil {
		return fmt.Errorf("no auction on item")
	}
	if item.Auction.CurrentPrice.Cmp(winning) != 0 {
		return fmt.Errorf("unexpected current price (expected: %s got: %s)", winning, &item.Auction.CurrentPrice)
	}
	if !item.Auction.CurrentWinner.Equal(testing.Dave.Address) {
		return fmt.Errorf("unexpected current winner: %s", item.Auction.CurrentWinner)
	}
	if len(item.Bids) != 2 {
		return fmt.Errorf("unexpected number of bids: %d", len(item.Bids))
	}

	if err = waitAuctionOver(ctx, env, tokenID); err != nil {
		return err
	}
	if err = submit(ctx, env.Market.SettleAuction(env.NFT.Program(), tokenID), testing.Bob); err != nil {
		return fmt.Errorf("failed to settle auction: %w", err)
	}
	if _, err = scenario.EnsureMarketEvent(env.Logger, ch,
		scenario.MakeAuctionSettledCheck(env.NFT.Program(), tokenID, *winning),
	); err != nil {
		return err
	}

	owner, err := env.NFT.OwnerOf(ctx, client.RoundLatest, tokenID)
	if err != nil {
		return err
	}
	if !owner.Equal(testing.Dave.Address) {
		return fmt.Errorf("unexpected token owner after settlement: %s", owner)
	}
	return nil
}

// AuctionCancellationTest settles an auction that received no bids and
// checks the item stays with the seller.
func AuctionCancellationTest(ctx context.Context, env *scenario.Env) error {
	ch, err := watchMarketEvents(ctx, env)
	if err != nil {
		return err
	}

	tokenID, err := startAuction(ctx, env, testing.Bob, 1_000)
	if err != nil {
		return err
	}
	if err = waitAuctionOver(ctx, env, tokenID); err != nil {
		return err
	}

	if err = submit(ctx, env.Market.SettleAuction(env.NFT.Program(), tokenID), testing.Bob); err != nil {
		return fmt.Errorf("failed to settle auction: %w", err)
	}
	if _, err = scenario.WaitForEventUntil(ctx, ch, func(e *market.Event) bool {
		return e.AuctionCancelled != nil && e.AuctionCancelled.TokenID.Cmp(&tokenID) == 0
	}); err != nil {
		return fmt.Errorf("failed to wait for cancellation event: %w", err)
	}

	item, err := env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID)
	if err != nil {
		return err
	}
	if !item.Owner.Equal(testing.Bob.Address) {
		return fmt.Errorf("unexpected item owner after cancellation: %s", item.Owner)
	}
	if item.Auction != nil {
		return fmt.Errorf("auction still present after cancellation")
	}

	owner, err := env.NFT.OwnerOf(ctx, client.RoundLatest, tokenID)
	if err != nil {
		return err
	}
	if !owner.Equal(testing.Bob.Address) {
		return fmt.Errorf("unexpected token owner after cancellation: %s", owner)
	}
	return nil
}
