// Package market provides a client for the NFT marketplace program.
package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	"github.com/gear-dapps/nft-marketplace/types"
)

// V1 is the v1 marketplace program interface.
type V1 interface {
	client.EventDecoder

	// Program returns the actor ID of the marketplace program.
	Program() types.ActorID

	// AddNftContract generates a message approving an NFT contract for
	// listing. Only the admin may submit it.
	AddNftContract(id types.ContractID) *client.MessageBuilder

	// AddFTContract generates a message approving a fungible token contract
	// as a means of payment. Only the admin may submit it.
	AddFTContract(id types.ContractID) *client.MessageBuilder

	// AddMarketData generates a message listing an item, changing its price
	// or suspending its sale.
	AddMarketData(data AddMarketData) *client.MessageBuilder

	// BuyItem generates a message buying an item. For items traded in native
	// value the buyer must attach the price via SetValue.
	BuyItem(nftContractID types.ContractID, tokenID types.TokenID) *client.MessageBuilder

	// CreateAuction generates a message starting an auction on an item.
	CreateAuction(auction CreateAuction) *client.MessageBuilder

	// AddBid generates a message placing a bid on an ongoing auction. For
	// auctions in native value the bidder must attach the price via SetValue.
	AddBid(bid AddBid) *client.MessageBuilder

	// SettleAuction generates a message settling an auction that is over.
	SettleAuction(nftContractID types.ContractID, tokenID types.TokenID) *client.MessageBuilder

	// AddOffer generates a message adding a price offer to an item. For
	// offers in native value the creator must attach the price via SetValue.
	AddOffer(offer AddOffer) *client.MessageBuilder

	// Withdraw generates a message withdrawing the tokens locked by a
	// previously made offer.
	Withdraw(withdraw Withdraw) *client.MessageBuilder

	// AcceptOffer generates a message accepting an offer on an item.
	AcceptOffer(accept AcceptOffer) *client.MessageBuilder

	// Item queries the market data of the given item.
	Item(ctx context.Context, round uint64, nftContractID types.ContractID, tokenID types.TokenID) (*Item, error)

	// AllItems queries all items listed on the marketplace.
	AllItems(ctx context.Context, round uint64) ([]Item, error)

	// Info queries the marketplace configuration.
	Info(ctx context.Context, round uint64) (*Info, error)

	// GetEvents returns the marketplace events emitted in the given round.
	GetEvents(ctx context.Context, round uint64) ([]*Event, error)
}

type v1 struct {
	nc      client.Node
	program types.ActorID
}

// Implements V1.
func (a *v1) Program() types.ActorID {
	return a.program
}

func (a *v1) send(action *Action) *client.MessageBuilder {
	return client.SendMessage(a.nc, a.program, action)
}

// Implements V1.
func (a *v1) AddNftContract(id types.ContractID) *client.MessageBuilder {
	return a.send(&Action{AddNftContract: &id})
}

// Implements V1.
func (a *v1) AddFTContract(id types.ContractID) *client.MessageBuilder {
	return a.send(&Action{AddFTContract: &id})
}

// Implements V1.
func (a *v1) AddMarketData(data AddMarketData) *client.MessageBuilder {
	return a.send(&Action{AddMarketData: &data})
}

// Implements V1.
func (a *v1) BuyItem(nftContractID types.ContractID, tokenID types.TokenID) *client.MessageBuilder {
	return a.send(&Action{BuyItem: &BuyItem{
		NftContractID: nftContractID,
		TokenID:       tokenID,
	}})
}

// Implements V1.
func (a *v1) CreateAuction(auction CreateAuction) *client.MessageBuilder {
	return a.send(&Action{CreateAuction: &auction})
}

// Implements V1.
func (a *v1) AddBid(bid AddBid) *client.MessageBuilder {
	return a.send(&Action{AddBid: &bid})
}

// Implements V1.
func (a *v1) SettleAuction(nftContractID types.ContractID, tokenID types.TokenID) *client.MessageBuilder {
	return a.send(&Action{SettleAuction: &SettleAuction{
		NftContractID: nftContractID,
		TokenID:       tokenID,
	}})
}

// Implements V1.
func (a *v1) AddOffer(offer AddOffer) *client.MessageBuilder {
	return a.send(&Action{AddOffer: &offer})
}

// Implements V1.
func (a *v1) Withdraw(withdraw Withdraw) *client.MessageBuilder {
	return a.send(&Action{Withdraw: &withdraw})
}

// Implements V1.
func (a *v1) AcceptOffer(accept AcceptOffer) *client.MessageBuilder {
	return a.send(&Action{AcceptOffer: &accept})
}

// Implements V1.
func (a *v1) Item(ctx context.Context, round uint64, nftContractID types.ContractID, tokenID types.TokenID) (*Item, error) {
	var rsp StateReply
	err := client.QueryState(ctx, a.nc, round, a.program, &StateQuery{
		ItemInfo: &ItemInfoQuery{
			NftContractID: nftContractID,
			TokenID:       tokenID,
		},
	}, &rsp)
	if err != nil {
		return nil, err
	}
	if rsp.ItemInfo == nil {
		return nil, fmt.Errorf("market: item does not exist")
	}
	return rsp.ItemInfo, nil
}

// Implements V1.
func (a *v1) AllItems(ctx context.Context, round uint64) ([]Item, error) {
	var rsp StateReply
	err := client.QueryState(ctx, a.nc, round, a.program, &StateQuery{AllItems: &Empty{}}, &rsp)
	if err != nil {
		return nil, err
	}
	return rsp.AllItems, nil
}

// Implements V1.
func (a *v1) Info(ctx context.Context, round uint64) (*Info, error) {
	var rsp StateReply
	err := client.QueryState(ctx, a.nc, round, a.program, &StateQuery{Info: &Empty{}}, &rsp)
	if err != nil {
		return nil, err
	}
	if rsp.Info == nil {
		return nil, fmt.Errorf("market: malformed info reply")
	}
	return rsp.Info, nil
}

// Implements V1.
func (a *v1) GetEvents(ctx context.Context, round uint64) ([]*Event, error) {
	rawEvs, err := a.nc.GetEvents(ctx, round)
	if err != nil {
		return nil, err
	}

	evs := make([]*Event, 0)
	for _, rawEv := range rawEvs {
		ev, err := a.DecodeEvent(rawEv)
		if err != nil {
			return nil, err
		}
		for _, e := range ev {
			evs = append(evs, e.(*Event))
		}
	}
	return evs, nil
}

// Implements client.EventDecoder.
func (a *v1) DecodeEvent(event *types.Event) ([]client.DecodedEvent, error) {
	return DecodeEvent(event)
}

// DecodeEvent decodes a marketplace event.
func DecodeEvent(event *types.Event) ([]client.DecodedEvent, error) {
	// "market" or "market.<...>".
	if event.Module != ModuleName && !strings.HasPrefix(event.Module, ModuleName+".") {
		return nil, nil
	}
	var evs []*Event
	if err := cbor.Unmarshal(event.Value, &evs); err != nil {
		return nil, fmt.Errorf("market: decode event value: %w", err)
	}
	events := make([]client.DecodedEvent, len(evs))
	for i, ev := range evs {
		events[i] = ev
	}
	return events, nil
}

// NewV1 generates a V1 client helper for the marketplace program deployed at
// the given actor ID.
func NewV1(nc client.Node, program types.ActorID) V1 {
	return &v1{nc: nc, program: program}
}
