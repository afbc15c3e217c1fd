package e2e

import (
	"context"
	"fmt"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/market"
	"github.com/gear-dapps/nft-marketplace/market/nft"
	"github.com/gear-dapps/nft-marketplace/scenario"
	"github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

func nftMetadata(tokenID types.TokenID) nft.TokenMetadata {
	return nft.TokenMetadata{
		Name:        fmt.Sprintf("Token %s", tokenID),
		Description: "marketplace test token",
		Media:       fmt.Sprintf("ipfs://market-nft/%s", tokenID),
	}
}

func marketData(env *scenario.Env, tokenID types.TokenID, ft *types.ContractID, price *types.Price) market.AddMarketData {
	return market.AddMarketData{
		NftContractID: env.NFT.Program(),
		FTContractID:  ft,
		TokenID:       tokenID,
		Price:         price,
	}
}

// MarketInfoTest verifies the deployed marketplace configuration: the admin,
// the treasury and the approved contracts set up by the harness.
func MarketInfoTest(ctx context.Context, env *scenario.Env) error {
	info, err := env.Market.Info(ctx, client.RoundLatest)
	if err != nil {
		return err
	}

	if !info.AdminID.Equal(testing.Alice.Address) {
		return fmt.Errorf("unexpected admin (expected: %s got: %s)", testing.Alice.Address, info.AdminID)
	}
	if !info.TreasuryID.Equal(testing.Dave.Address) {
		return fmt.Errorf("unexpected treasury (expected: %s got: %s)", testing.Dave.Address, info.TreasuryID)
	}
	if info.TreasuryFee != env.Config.Market.TreasuryFee {
		return fmt.Errorf("unexpected treasury fee (expected: %d got: %d)", env.Config.Market.TreasuryFee, info.TreasuryFee)
	}

	var nftApproved, ftApproved bool
	for _, id := range info.ApprovedNftContracts {
		if id.Equal(env.NFT.Program()) {
			nftApproved = true
		}
	}
	for _, id := range info.ApprovedFtContracts {
		if id.Equal(env.FT.Program()) {
			ftApproved = true
		}
	}
	if !nftApproved {
		return fmt.Errorf("nft contract %s not approved", env.NFT.Program())
	}
	if !ftApproved {
		return fmt.Errorf("ft contract %s not approved", env.FT.Program())
	}
	return nil
}

// ListingTest lists an item, checks the emitted event and the item state,
// then changes the price and suspends the sale.
func ListingTest(ctx context.Context, env *scenario.Env) error {
	ch, err := watchMarketEvents(ctx, env)
	if err != nil {
		return err
	}

	price := types.NewFromUint64(1_000)
	tokenID, err := mintAndList(ctx, env, testing.Bob, nil, price)
	if err != nil {
		return err
	}

	ev, err := scenario.WaitForEventUntil(ctx, ch, func(e *market.Event) bool {
		return e.MarketDataAdded != nil && e.MarketDataAdded.TokenID.Cmp(&tokenID) == 0
	})
	if err != nil {
		return fmt.Errorf("failed to wait for listing event: %w", err)
	}
	if !ev.MarketDataAdded.Owner.Equal(testing.Bob.Address) {
		return fmt.Errorf("unexpected listing owner: %s", ev.MarketDataAdded.Owner)
	}
	if ev.MarketDataAdded.Price == nil || ev.MarketDataAdded.Price.Cmp(price) != 0 {
		return fmt.Errorf("unexpected listing price: %v", ev.MarketDataAdded.Price)
	}

	item, err := env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID)
	if err != nil {
		return err
	}
	if !item.Owner.Equal(testing.Bob.Address) {
		return fmt.Errorf("unexpected item owner: %s", item.Owner)
	}
	if item.Price == nil || item.Price.Cmp(price) != 0 {
		return fmt.Errorf("unexpected item price: %v", item.Price)
	}

	// Change the price.
	newPrice := types.NewFromUint64(2_000)
	if err = submit(ctx, env.Market.AddMarketData(marketData(env, tokenID, nil, newPrice)), testing.Bob); err != nil {
		return fmt.Errorf("failed to change price: %w", err)
	}
	if item, err = env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID); err != nil {
		return err
	}
	if item.Price == nil || item.Price.Cmp(newPrice) != 0 {
		return fmt.Errorf("unexpected item price after change: %v", item.Price)
	}

	// Suspend the sale.
	if err = submit(ctx, env.Market.AddMarketData(marketData(env, tokenID, nil, nil)), testing.Bob); err != nil {
		return fmt.Errorf("failed to suspend sale: %w", err)
	}
	if item, err = env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID); err != nil {
		return err
	}
	if item.Price != nil {
		return fmt.Errorf("item still on sale after suspension: %s", item.Price)
	}

	items, err := env.Market.AllItems(ctx, client.RoundLatest)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("expected at least one listed item")
	}
	return nil
}

// BuyItemTest buys an item traded for native value and verifies the token
// changed hands on the NFT contract.
func BuyItemTest(ctx context.Context, env *scenario.Env) error {
	ch, err := watchMarketEvents(ctx, env)
	if err != nil {
		return err
	}

	price := types.NewFromUint64(5_000)
	tokenID, err := mintAndList(ctx, env, testing.Bob, nil, price)
	if err != nil {
		return err
	}

	mb := env.Market.BuyItem(env.NFT.Program(), tokenID).SetValue(*price)
	if err = submit(ctx, mb, testing.Charlie); err != nil {
		return fmt.Errorf("failed to buy item: %w", err)
	}

	if _, err = scenario.EnsureMarketEvent(env.Logger, ch,
		scenario.MakeItemSoldCheck(testing.Charlie.Address, env.NFT.Program(), tokenID),
	); err != nil {
		return err
	}

	owner, err := env.NFT.OwnerOf(ctx, client.RoundLatest, tokenID)
	if err != nil {
		return err
	}
	if !owner.Equal(testing.Charlie.Address) {
		return fmt.Errorf("unexpected token owner after sale (expected: %s got: %s)", testing.Charlie.Address, owner)
	}

	item, err := env.Market.Item(ctx, client.RoundLatest, env.NFT.Program(), tokenID)
	if err != nil {
		return err
	}
	if !item.Owner.Equal(testing.Charlie.Address) {
		return fmt.Errorf("unexpected item owner after sale: %s", item.Owner)
	}
	if item.Price != nil {
		return fmt.Errorf("item still on sale after purchase: %s", item.Price)
	}
	return nil
}

// BuyItemWithFTTest buys an item traded in a fungible token and verifies the
// seller received the payout net of the treasury fee.
func BuyItemWithFTTest(ctx context.Context, env *scenario.Env) error {
	const amount = 100_000
	if err := mintFT(ctx, env, testing.Charlie, amount); err != nil {
		return err
	}

	ftID := env.FT.Program()
	price := types.NewFromUint64(10_000)
	tokenID, err := mintAndList(ctx, env, testing.Bob, &ftID, price)
	if err != nil {
		return err
	}

	before, err := env.FT.Balance(ctx, client.RoundLatest, testing.Bob.Address)
	if err != nil {
		return err
	}

	if err = submit(ctx, env.Market.BuyItem(env.NFT.Program(), tokenID), testing.Charlie); err != nil {
		return fmt.Errorf("failed to buy item with fungible tokens: %w", err)
	}

	owner, err := env.NFT.OwnerOf(ctx, client.RoundLatest, tokenID)
	if err != nil {
		return err
	}
	if !owner.Equal(testing.Charlie.Address) {
		return fmt.Errorf("unexpected token owner after sale: %s", owner)
	}

	after, err := env.FT.Balance(ctx, client.RoundLatest, testing.Bob.Address)
	if err != nil {
		return err
	}
	gained := after.Clone()
	if err = gained.Sub(before); err != nil {
		return fmt.Errorf("seller balance decreased: %w", err)
	}
	if gained.IsZero() {
		return fmt.Errorf("seller received no payout")
	}
	// The seller's cut is bounded by the price less the treasury fee.
	if gained.Cmp(price) > 0 {
		return fmt.Errorf("seller payout %s exceeds price %s", gained, price)
	}
	return nil
}
