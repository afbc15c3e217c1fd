// Package ft provides a client for the fungible token program fixture used
// to pay for marketplace items.
package ft

import (
	"context"
	"fmt"
	"strings"

	"github.com/gear-dapps/nft-marketplace/client"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	"github.com/gear-dapps/nft-marketplace/types"
)

// ModuleName is the fungible token module name used in emitted events.
const ModuleName = "ft"

// InitFT is the fungible token program init payload.
type InitFT struct {
	// Name is the name of the token.
	Name string `json:"name"`
	// Symbol is the token symbol.
	Symbol string `json:"symbol"`
	// Decimals is the number of token decimals.
	Decimals uint8 `json:"decimals"`
}

// Mint mints tokens to the message source.
type Mint struct {
	Amount types.Quantity `json:"amount"`
}

// Burn burns tokens of the message source.
type Burn struct {
	Amount types.Quantity `json:"amount"`
}

// Transfer moves tokens between accounts. The source must be the from
// account or approved by it.
type Transfer struct {
	From   types.ActorID  `json:"from"`
	To     types.ActorID  `json:"to"`
	Amount types.Quantity `json:"amount"`
}

// Approve allows an account to transfer tokens of the message source.
type Approve struct {
	To     types.ActorID  `json:"to"`
	Amount types.Quantity `json:"amount"`
}

// BalanceOf queries the balance of an account.
type BalanceOf struct {
	Account types.ActorID `json:"account"`
}

// Action is a fungible token program request. Exactly one variant must be
// set.
type Action struct {
	Mint        *Mint      `json:"mint,omitempty"`
	Burn        *Burn      `json:"burn,omitempty"`
	Transfer    *Transfer  `json:"transfer,omitempty"`
	Approve     *Approve   `json:"approve,omitempty"`
	TotalSupply *Empty     `json:"total_supply,omitempty"`
	BalanceOf   *BalanceOf `json:"balance_of,omitempty"`
}

// Empty is the body of an action or event variant without fields.
type Empty struct{}

// TransferEvent notifies tokens moved.
type TransferEvent struct {
	From   types.ActorID  `json:"from"`
	To     types.ActorID  `json:"to"`
	Amount types.Quantity `json:"amount"`
}

// ApproveEvent notifies an allowance changed.
type ApproveEvent struct {
	From   types.ActorID  `json:"from"`
	To     types.ActorID  `json:"to"`
	Amount types.Quantity `json:"amount"`
}

// Event is a fungible token program reply or event. Exactly one variant is
// set.
type Event struct {
	Transfer    *TransferEvent  `json:"transfer,omitempty"`
	Approve     *ApproveEvent   `json:"approve,omitempty"`
	TotalSupply *types.Quantity `json:"total_supply,omitempty"`
	Balance     *types.Quantity `json:"balance,omitempty"`
}

// V1 is the v1 fungible token program interface.
type V1 interface {
	client.EventDecoder

	// Program returns the actor ID of the fungible token program.
	Program() types.ActorID

	// Mint generates a message minting tokens to the message source.
	Mint(amount types.Quantity) *client.MessageBuilder

	// Burn generates a message burning tokens of the message source.
	Burn(amount types.Quantity) *client.MessageBuilder

	// Transfer generates a message moving tokens between accounts.
	Transfer(from, to types.ActorID, amount types.Quantity) *client.MessageBuilder

	// Approve generates a message allowing an account to transfer tokens of
	// the message source.
	Approve(to types.ActorID, amount types.Quantity) *client.MessageBuilder

	// Balance queries the balance of an account.
	Balance(ctx context.Context, round uint64, account types.ActorID) (*types.Quantity, error)

	// TotalSupply queries the total token supply.
	TotalSupply(ctx context.Context, round uint64) (*types.Quantity, error)
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
func (a *v1) Mint(amount types.Quantity) *client.MessageBuilder {
	return client.SendMessage(a.nc, a.program, &Action{Mint: &Mint{Amount: amount}})
}

// Implements V1.
func (a *v1) Burn(amount types.Quantity) *client.MessageBuilder {
	return client.SendMessage(a.nc, a.program, &Action{Burn: &Burn{Amount: amount}})
}

// Implements V1.
func (a *v1) Transfer(from, to types.ActorID, amount types.Quantity) *client.MessageBuilder {
	return client.SendMessage(a.nc, a.program, &Action{Transfer: &Transfer{
		From:   from,
		To:     to,
		Amount: amount,
	}})
}

// Implements V1.
func (a *v1) Approve(to types.ActorID, amount types.Quantity) *client.MessageBuilder {
	return client.SendMessage(a.nc, a.program, &Action{Approve: &Approve{
		To:     to,
		Amount: amount,
	}})
}

// Implements V1.
func (a *v1) Balance(ctx context.Context, round uint64, account types.ActorID) (*types.Quantity, error) {
	var rsp Event
	err := client.QueryState(ctx, a.nc, round, a.program, &Action{BalanceOf: &BalanceOf{Account: account}}, &rsp)
	if err != nil {
		return nil, err
	}
	if rsp.Balance == nil {
		return nil, fmt.Errorf("ft: malformed balance reply")
	}
	return rsp.Balance, nil
}

// Implements V1.
func (a *v1) TotalSupply(ctx context.Context, round uint64) (*types.Quantity, error) {
	var rsp Event
	err := client.QueryState(ctx, a.nc, round, a.program, &Action{TotalSupply: &Empty{}}, &rsp)
	if err != nil {
		return nil, err
	}
	if rsp.TotalSupply == nil {
		return nil, fmt.Errorf("ft: malformed total supply reply")
	}
	return rsp.TotalSupply, nil
}

// Implements client.EventDecoder.
func (a *v1) DecodeEvent(event *types.Event) ([]client.DecodedEvent, error) {
	return DecodeEvent(event)
}

// DecodeEvent decodes a fungible token program event.
func DecodeEvent(event *types.Event) ([]client.DecodedEvent, error) {
	if event.Module != ModuleName && !strings.HasPrefix(event.Module, ModuleName+".") {
		return nil, nil
	}
	var evs []*Event
	if err := cbor.Unmarshal(event.Value, &evs); err != nil {
		return nil, fmt.Errorf("ft: decode event value: %w", err)
	}
	events := make([]client.DecodedEvent, len(evs))
	for i, ev := range evs {
		events[i] = ev
	}
	return events, nil
}

// NewV1 generates a V1 client helper for the fungible token program deployed
// at the given actor ID.
func NewV1(nc client.Node, program types.ActorID) V1 {
	return &v1{nc: nc, program: program}
}
