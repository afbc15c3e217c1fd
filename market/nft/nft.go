// Package nft provides a client for the NFT program fixture the marketplace
// trades items of.
package nft

import (
	"context"
	"fmt"
	"strings"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	"github.com/gear-dapps/nft-marketplace/types"
)

// ModuleName is the NFT module name used in emitted events.
const ModuleName = "nft"

// Payout maps accounts to the royalty amounts owed to them on a sale.
type Payout map[types.ActorID]types.Quantity

// InitNFT is the NFT program init payload.
type InitNFT struct {
	// Name is the collection name.
	Name string `json:"name"`
	// Symbol is the collection symbol.
	Symbol string `json:"symbol"`
	// BaseURI is the prefix of the per-token metadata URIs.
	BaseURI string `json:"base_uri"`
	// RoyaltyToOwner is the royalty in percent paid to the original minter on
	// each sale.
	RoyaltyToOwner uint8 `json:"royalty_to_owner,omitempty"`
}

// TokenMetadata is the metadata of a minted token.
type TokenMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Media       string `json:"media,omitempty"`
	Reference   string `json:"reference,omitempty"`
}

// Mint mints a new token to the message source.
type Mint struct {
	TokenMetadata TokenMetadata `json:"token_metadata"`
}

// Transfer transfers a token.
type Transfer struct {
	TransactionID types.TransactionID `json:"transaction_id"`
	To            types.ActorID       `json:"to"`
	TokenID       types.TokenID       `json:"token_id"`
}

// Approve approves an account to transfer a token.
type Approve struct {
	TransactionID types.TransactionID `json:"transaction_id"`
	To            types.ActorID       `json:"to"`
	TokenID       types.TokenID       `json:"token_id"`
}

// Owner queries the owner of a token.
type Owner struct {
	TokenID types.TokenID `json:"token_id"`
}

// NFTPayout queries the payout split for selling the given owner's token at
// the given amount.
type NFTPayout struct {
	Owner  types.ActorID  `json:"owner"`
	Amount types.Quantity `json:"amount"`
}

// Action is an NFT program request. Exactly one variant must be set.
type Action struct {
	Mint      *Mint      `json:"mint,omitempty"`
	Transfer  *Transfer  `json:"transfer,omitempty"`
	Approve   *Approve   `json:"approve,omitempty"`
	Owner     *Owner     `json:"owner,omitempty"`
	NFTPayout *NFTPayout `json:"nft_payout,omitempty"`
}

// TransferEvent notifies a token changed hands.
type TransferEvent struct {
	From    types.ActorID `json:"from"`
	To      types.ActorID `json:"to"`
	TokenID types.TokenID `json:"token_id"`
}

// ApprovalEvent notifies an account was approved for a token.
type ApprovalEvent struct {
	Owner      types.ActorID `json:"owner"`
	ApprovedTo types.ActorID `json:"approved_to"`
	TokenID    types.TokenID `json:"token_id"`
}

// OwnerEvent is the reply to an Owner query.
type OwnerEvent struct {
	Owner   types.ActorID `json:"owner"`
	TokenID types.TokenID `json:"token_id"`
}

// Event is an NFT program reply or event. Exactly one variant is set.
type Event struct {
	Transfer  *TransferEvent `json:"transfer,omitempty"`
	Approval  *ApprovalEvent `json:"approval,omitempty"`
	Owner     *OwnerEvent    `json:"owner,omitempty"`
	NFTPayout Payout         `json:"nft_payout,omitempty"`
}

// V1 is the v1 NFT program interface.
type V1 interface {
	client.EventDecoder

	// Program returns the actor ID of the NFT program.
	Program() types.ActorID

	// Mint generates a message minting a token to the message source.
	Mint(metadata TokenMetadata) *client.MessageBuilder

	// Transfer generates a message transferring a token.
	Transfer(txID types.TransactionID, to types.ActorID, tokenID types.TokenID) *client.MessageBuilder

	// Approve generates a message approving an account for a token.
	Approve(txID types.TransactionID, to types.ActorID, tokenID types.TokenID) *client.MessageBuilder

	// OwnerOf queries the owner of a token.
	OwnerOf(ctx context.Context, round uint64, tokenID types.TokenID) (types.ActorID, error)

	// Payouts queries the payout split for selling the given owner's token.
	Payouts(ctx context.Context, round uint64, owner types.ActorID, amount types.Quantity) (Payout, error)
}

type v1 struct {
	nc      client.Node
	program types.ActorID
}

// Implements V1.
func (a *v1) Program() types.ActorID {
	return a.program
}

// Implements V1.
func (a *v1) Mint(metadata TokenMetadata) *client.MessageBuilder {
	return client.SendMessage(a.nc, a.program, &Action{Mint: &Mint{TokenMetadata: metadata}})
}

// Implements V1.
func (a *v1) Transfer(txID types.TransactionID, to types.ActorID, tokenID types.TokenID) *client.MessageBuilder {
	return client.SendMessage(a.nc, a.program, &Action{Transfer: &Transfer{
		TransactionID: txID,
		To:            to,
		TokenID:       tokenID,
	}})
}

// Implements V1.
func (a *v1) Approve(txID types.TransactionID, to types.ActorID, tokenID types.TokenID) *client.MessageBuilder {
	return client.SendMessage(a.nc, a.program, &Action{Approve: &Approve{
		TransactionID: txID,
		To:            to,
		TokenID:       tokenID,
	}})
}

// Implements V1.
func (a *v1) OwnerOf(ctx context.Context, round uint64, tokenID types.TokenID) (types.ActorID, error) {
	var rsp Event
	err := client.QueryState(ctx, a.nc, round, a.program, &Action{Owner: &Owner{TokenID: tokenID}}, &rsp)
	if err != nil {
		return types.ActorID{}, err
	}
	if rsp.Owner == nil {
		return types.ActorID{}, fmt.Errorf("nft: malformed owner reply")
	}
	return rsp.Owner.Owner, nil
}

// Implements V1.
func (a *v1) Payouts(ctx context.Context, round uint64, owner types.ActorID, amount types.Quantity) (Payout, error) {
	var rsp Event
	err := client.QueryState(ctx, a.nc, round, a.program, &Action{NFTPayout: &NFTPayout{
		Owner:  owner,
		Amount: amount,
	}}, &rsp)
	if err != nil {
		return nil, err
	}
	return rsp.NFTPayout, nil
}

// Implements client.EventDecoder.
func (a *v1) DecodeEvent(event *types.Event) ([]client.DecodedEvent, error) {
	return DecodeEvent(event)
}

// DecodeEvent decodes an NFT program event.
func DecodeEvent(event *types.Event) ([]client.DecodedEvent, error) {
	if event.Module != ModuleName && !strings.HasPrefix(event.Module, ModuleName+".") {
		return nil, nil
	}
	var evs []*Event
	if err := cbor.Unmarshal(event.Value, &evs); err != nil {
		return nil, fmt.Errorf("nft: decode event value: %w", err)
	}
	events := make([]client.DecodedEvent, len(evs))
	for i, ev := range evs {
		events[i] = ev
	}
	return events, nil
}

// NewV1 generates a V1 client helper for the NFT program deployed at the
// given actor ID.
func NewV1(nc client.Node, program types.ActorID) V1 {
	return &v1{nc: nc, program: program}
}
