package e2e

import (
	"context"
	"fmt"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/market"
	"github.com/gear-dapps/nft-marketplace/scenario"
	"github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

func addOffer(ctx context.Context, env *scenario.Env, key testing.TestKey, tokenID types.TokenID, price *types.Price) error {
	mb := env.Market.AddOffer(market.AddOffer{
		NftContractID: env.NFT.Program(),
		TokenID:       tokenID,
		Price:         *price,
	}).SetValue(*price)
	if err := submit(ctx, mb, key); err != nil {
		return fmt.Errorf("failed to add offer: %w", err)
	}
	return nil
}

// OfferTest adds an offer on a listed item and accepts it as the owner.
func OfferTest(ctx context.Context, env *scenario.Env) error {
	ch, err := watchMarketEvents(ctx, env)
	if err != nil {
		return err
	}

	tokenID, err := mintAndList(ctx, env, testing.Bob, nil, types.NewFromUint64(10_000))
	if err != nil {
		return err
	}

	offerPrice := types.NewFromUint64(7_000)
	if err = addOffer(ctx, env, testing.Charlie, tokenID, offerPrice); err != nil {
		return err
	}
	if _, err = scenario.WaitForEventUntil(ctx, ch, func(e *market.Event) bool {
		return e.OfferAdded != nil && e.OfferAdded.TokenID.Cmp(&tokenID) == 0
	}); err != nil {
		return fmt.Errorf("failed to wait for offer event: %w", err)
	}

	item, err := env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID)
	if err != nil {
		return err
	}
	if len(item.Offers) != 1 {
		return fmt.Errorf("unexpected number of offers: %d", len(item.Offers))
	}
	offer := item.Offers[0]
	if !offer.ID.Equal(testing.Charlie.Address) {
		return fmt.Errorf("unexpected offer creator: %s", offer.ID)
	}
	if offer.Price.Cmp(offerPrice) != 0 {
		return fmt.Errorf("unexpected offer price: %s", &offer.Price)
	}
	if expected := market.OfferHash(nil, *offerPrice); !offer.Hash.Equal(expected) {
		return fmt.Errorf("unexpected offer hash (expected: %s got: %s)", expected, offer.Hash)
	}

	mb := env.Market.AcceptOffer(market.AcceptOffer{
		NftContractID: env.NFT.Program(),
		TokenID:       tokenID,
		Price:         *offerPrice,
	})
	if err = submit(ctx, mb, testing.Bob); err != nil {
		return fmt.Errorf("failed to accept offer: %w", err)
	}
	ev, err := scenario.WaitForEventUntil(ctx, ch, func(e *market.Event) bool {
		return e.OfferAccepted != nil && e.OfferAccepted.TokenID.Cmp(&tokenID) == 0
	})
	if err != nil {
		return fmt.Errorf("failed to wait for acceptance event: %w", err)
	}
	if !ev.OfferAccepted.NewOwner.Equal(testing.Charlie.Address) {
		return fmt.Errorf("unexpected new owner: %s", ev.OfferAccepted.NewOwner)
	}

	owner, err := env.NFT.OwnerOf(ctx, client.RoundLatest, tokenID)
	if err != nil {
		return err
	}
	if !owner.Equal(testing.Charlie.Address) {
		return fmt.Errorf("unexpected token owner after acceptance: %s", owner)
	}
	return nil
}

// OfferWithdrawTest adds an offer and withdraws it, checking the offer is
// removed from the item.
func OfferWithdrawTest(ctx context.Context, env *scenario.Env) error {
	ch, err := watchMarketEvents(ctx, env)
	if err != nil {
		return err
	}

	tokenID, err := mintAndList(ctx, env, testing.Bob, nil, types.NewFromUint64(10_000))
	if err != nil {
		return err
	}

	offerPrice := types.NewFromUint64(4_000)
	if err = addOffer(ctx, env, testing.Charlie, tokenID, offerPrice); err != nil {
		return err
	}

	mb := env.Market.Withdraw(market.Withdraw{
		NftContractID: env.NFT.Program(),
		TokenID:       tokenID,
		Price:         *offerPrice,
	})
	if err = submit(ctx, mb, testing.Charlie); err != nil {
		return fmt.Errorf("failed to withdraw offer: %w", err)
	}
	if _, err = scenario.WaitForEventUntil(ctx, ch, func(e *market.Event) bool {
		return e.Withdraw != nil && e.Withdraw.TokenID.Cmp(&tokenID) == 0
	}); err != nil {
		return fmt.Errorf("failed to wait for withdrawal event: %w", err)
	}

	item, err := env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID)
	if err != nil {
		return err
	}
	if len(item.Offers) != 0 {
		return fmt.Errorf("offer still present after withdrawal")
	}
	return nil
}
