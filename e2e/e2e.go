// Package e2e implements the marketplace end-to-end test functions.
package e2e

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/scenario"
	"github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

// Marketplace is the default scenario covering every marketplace operation.
var Marketplace = scenario.NewScenario("marketplace", []scenario.RunTestFunction{
	MarketInfoTest,
	ListingTest,
	BuyItemTest,
	BuyItemWithFTTest,
	AuctionTest,
	AuctionCancellationTest,
	OfferTest,
	OfferWithdrawTest,
})

// nextToken hands out a fresh token ID so test functions never collide on an
// item.
var nextToken atomic.Uint64

func newTokenID() types.TokenID {
	return types.NewTokenID(nextToken.Add(1))
}

// submit signs the message with the given key and waits for it to be
// dispatched.
func submit(ctx context.Context, mb *client.MessageBuilder, key testing.TestKey) error {
	if err := mb.AppendSign(ctx, key.Signer); err != nil {
		return err
	}
	return mb.SubmitTx(ctx, nil)
}

// mintAndApprove mints a fresh token to the owner and approves the
// marketplace program to transfer it.
func mintAndApprove(ctx context.Context, env *scenario.Env, owner testing.TestKey) (types.TokenID, error) {
	tokenID := newTokenID()

	if err := submit(ctx, env.NFT.Mint(nftMetadata(tokenID)), owner); err != nil {
		return tokenID, fmt.Errorf("failed to mint token %s: %w", tokenID, err)
	}
	if err := submit(ctx, env.NFT.Approve(0, env.Market.Program(), tokenID), owner); err != nil {
		return tokenID, fmt.Errorf("failed to approve marketplace for token %s: %w", tokenID, err)
	}
	return tokenID, nil
}

// mintAndList mints a fresh token to the owner and lists it on the
// marketplace at the given price, in the given fungible token contract (nil
// for native value).
func mintAndList(
	ctx context.Context,
	env *scenario.Env,
	owner testing.TestKey,
	ft *types.ContractID,
	price *types.Price,
) (types.TokenID, error) {
	tokenID, err := mintAndApprove(ctx, env, owner)
	if err != nil {
		return tokenID, err
	}

	mb := env.Market.AddMarketData(marketData(env, tokenID, ft, price))
	if err = submit(ctx, mb, owner); err != nil {
		return tokenID, fmt.Errorf("failed to list token %s: %w", tokenID, err)
	}
	return tokenID, nil
}

// mintFT mints the given amount of fungible tokens to the key and approves
// the marketplace to spend them.
func mintFT(ctx context.Context, env *scenario.Env, key testing.TestKey, amount uint64) error {
	if err := submit(ctx, env.FT.Mint(*types.NewFromUint64(amount)), key); err != nil {
		return fmt.Errorf("failed to mint fungible tokens: %w", err)
	}
	if err := submit(ctx, env.FT.Approve(env.Market.Program(), *types.NewFromUint64(amount)), key); err != nil {
		return fmt.Errorf("failed to approve fungible tokens: %w", err)
	}
	return nil
}

func watchMarketEvents(ctx context.Context, env *scenario.Env) (<-chan *client.BlockEvents, error) {
	return env.Client.WatchEvents(ctx, []client.EventDecoder{env.Market})
}
