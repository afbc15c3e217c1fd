package market

import (
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	"github.com/gear-dapps/nft-marketplace/types"
)

// ModuleName is the marketplace module name used in emitted events.
const ModuleName = "market"

// MaxTreasuryFee is the maximum treasury fee in percent.
const MaxTreasuryFee = 100

// InitMarket is the marketplace init payload.
type InitMarket struct {
	// AdminID is the account allowed to approve NFT and FT contracts.
	AdminID types.ActorID `json:"admin_id"`
	// TreasuryID is the account receiving the treasury fee on each sale.
	TreasuryID types.ActorID `json:"treasury_id"`
	// TreasuryFee is the fee in percent (0..=100).
	TreasuryFee uint8 `json:"treasury_fee"`
}

// Auction is an ongoing English auction on an item.
type Auction struct {
	// BidPeriod is the interval the auction is extended by when a bid
	// arrives close to its end, in milliseconds.
	BidPeriod uint64 `json:"bid_period"`
	// StartedAt is the auction start, in milliseconds since the epoch.
	StartedAt uint64 `json:"started_at"`
	// EndedAt is the auction end, in milliseconds since the epoch.
	EndedAt uint64 `json:"ended_at"`
	// CurrentPrice is the highest bid so far.
	CurrentPrice types.Price `json:"current_price"`
	// CurrentWinner is the highest bidder so far.
	CurrentWinner types.ActorID `json:"current_winner"`
}

// Offer is a price offer on an item.
type Offer struct {
	// Hash identifies the offer by its fungible token contract and price.
	Hash types.Hash `json:"hash"`
	// ID is the account that made the offer.
	ID types.ActorID `json:"id"`
	// FTContractID is the fungible token contract the offer is made in, or
	// nil when the offer is in native value.
	FTContractID *types.ContractID `json:"ft_contract_id,omitempty"`
	// Price is the offered price.
	Price types.Price `json:"price"`
}

// Bid is a bid placed on an auction.
type Bid struct {
	// ID is the bidder account.
	ID types.ActorID `json:"id"`
	// Price is the bid price.
	Price types.Price `json:"price"`
}

// Item is a market item.
type Item struct {
	// Owner is the current item owner.
	Owner types.ActorID `json:"owner"`
	// FTContractID is the fungible token contract the item is traded in, or
	// nil when the item is traded for native value.
	FTContractID *types.ContractID `json:"ft_contract_id,omitempty"`
	// Price is the sale price; nil means the item is not on sale.
	Price *types.Price `json:"price,omitempty"`
	// Auction is the ongoing auction, if any.
	Auction *Auction `json:"auction,omitempty"`
	// Offers are the price offers on the item.
	Offers []Offer `json:"offers,omitempty"`
	// Bids are the bids placed during the ongoing auction.
	Bids []Bid `json:"bids,omitempty"`
	// TransactionID is the identifier of an in-flight cross-contract
	// transaction on the item, if any.
	TransactionID *types.TransactionID `json:"transaction_id,omitempty"`
}

// OfferHash derives the identifying hash of an offer made in the given
// fungible token contract (nil for native value) at the given price.
func OfferHash(ftContractID *types.ContractID, price types.Price) types.Hash {
	var ft types.ContractID
	if ftContractID != nil {
		ft = *ftContractID
	}
	return types.NewHash([]byte("market/offer"), ft[:], cbor.Marshal(price))
}

// AddMarketData lists an item, changes its price or suspends its sale.
type AddMarketData struct {
	NftContractID types.ContractID  `json:"nft_contract_id"`
	FTContractID  *types.ContractID `json:"ft_contract_id,omitempty"`
	TokenID       types.TokenID     `json:"token_id"`
	Price         *types.Price      `json:"price,omitempty"`
}

// BuyItem buys an item on sale.
type BuyItem struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
}

// CreateAuction starts an auction on an item.
type CreateAuction struct {
	NftContractID types.ContractID  `json:"nft_contract_id"`
	FTContractID  *types.ContractID `json:"ft_contract_id,omitempty"`
	TokenID       types.TokenID     `json:"token_id"`
	MinPrice      types.Price       `json:"min_price"`
	// BidPeriod is the interval the auction is extended by when a bid
	// arrives close to its end, in milliseconds.
	BidPeriod uint64 `json:"bid_period"`
	// Duration is the auction duration in milliseconds.
	Duration uint64 `json:"duration"`
}

// AddBid places a bid on an ongoing auction.
type AddBid struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
	Price         types.Price      `json:"price"`
}

// SettleAuction settles an auction that is over.
type SettleAuction struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
}

// AddOffer adds a price offer to an item.
type AddOffer struct {
	NftContractID types.ContractID  `json:"nft_contract_id"`
	FTContractID  *types.ContractID `json:"ft_contract_id,omitempty"`
	TokenID       types.TokenID     `json:"token_id"`
	Price         types.Price       `json:"price"`
}

// Withdraw withdraws the tokens locked by a previously made offer.
type Withdraw struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
	Price         types.Price      `json:"price"`
}

// AcceptOffer accepts an offer on an item.
type AcceptOffer struct {
	NftContractID types.ContractID  `json:"nft_contract_id"`
	TokenID       types.TokenID     `json:"token_id"`
	FTContractID  *types.ContractID `json:"ft_contract_id,omitempty"`
	Price         types.Price       `json:"price"`
}

// Empty is the body of an action or event variant without fields.
type Empty struct{}

// Action is a marketplace request. Exactly one variant must be set.
type Action struct {
	AddNftContract *types.ContractID `json:"add_nft_contract,omitempty"`
	AddFTContract  *types.ContractID `json:"add_ft_contract,omitempty"`
	AddMarketData  *AddMarketData    `json:"add_market_data,omitempty"`
	BuyItem        *BuyItem          `json:"buy_item,omitempty"`
	CreateAuction  *CreateAuction    `json:"create_auction,omitempty"`
	AddBid         *AddBid           `json:"add_bid,omitempty"`
	SettleAuction  *SettleAuction    `json:"settle_auction,omitempty"`
	AddOffer       *AddOffer         `json:"add_offer,omitempty"`
	Withdraw       *Withdraw         `json:"withdraw,omitempty"`
	AcceptOffer    *AcceptOffer      `json:"accept_offer,omitempty"`
}

// MarketDataAdded notifies the sale data of an item changed.
type MarketDataAdded struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	Owner         types.ActorID    `json:"owner"`
	TokenID       types.TokenID    `json:"token_id"`
	Price         *types.Price     `json:"price,omitempty"`
}

// ItemSold notifies an item changed hands.
type ItemSold struct {
	Owner         types.ActorID    `json:"owner"`
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
}

// BidAdded notifies a bid was placed.
type BidAdded struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
	Price         types.Price      `json:"price"`
}

// AuctionCreated notifies an auction started.
type AuctionCreated struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
	Price         types.Price      `json:"price"`
}

// AuctionSettled notifies an auction finished with a winner.
type AuctionSettled struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
	Price         types.Price      `json:"price"`
}

// AuctionCancelled notifies an auction finished without bids.
type AuctionCancelled struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
}

// NFTListed notifies an item was listed on the marketplace.
type NFTListed struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	Owner         types.ActorID    `json:"owner"`
	TokenID       types.TokenID    `json:"token_id"`
	Price         *types.Price     `json:"price,omitempty"`
}

// OfferAdded notifies an offer was added.
type OfferAdded struct {
	NftContractID types.ContractID  `json:"nft_contract_id"`
	FTContractID  *types.ContractID `json:"ft_contract_id,omitempty"`
	TokenID       types.TokenID     `json:"token_id"`
	Price         types.Price       `json:"price"`
}

// OfferAccepted notifies an offer was accepted.
type OfferAccepted struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
	NewOwner      types.ActorID    `json:"new_owner"`
	Price         types.Price      `json:"price"`
}

// Withdrawn notifies the tokens of an offer were withdrawn.
type Withdrawn struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
	Price         types.Price      `json:"price"`
}

// Event is a marketplace event. Exactly one variant is set.
type Event struct {
	NftContractAdded *types.ContractID `json:"nft_contract_added,omitempty"`
	FtContractAdded  *types.ContractID `json:"ft_contract_added,omitempty"`
	MarketDataAdded  *MarketDataAdded  `json:"market_data_added,omitempty"`
	ItemSold         *ItemSold         `json:"item_sold,omitempty"`
	BidAdded         *BidAdded         `json:"bid_added,omitempty"`
	AuctionCreated   *AuctionCreated   `json:"auction_created,omitempty"`
	AuctionSettled   *AuctionSettled   `json:"auction_settled,omitempty"`
	AuctionCancelled *AuctionCancelled `json:"auction_cancelled,omitempty"`
	NFTListed        *NFTListed        `json:"nft_listed,omitempty"`
	OfferAdded       *OfferAdded       `json:"offer_added,omitempty"`
	OfferAccepted    *OfferAccepted    `json:"offer_accepted,omitempty"`
	Withdraw         *Withdrawn        `json:"withdraw,omitempty"`

	TransactionFailed *Empty `json:"transaction_failed,omitempty"`
	RerunTransaction  *Empty `json:"rerun_transaction,omitempty"`
	TransferValue     *Empty `json:"transfer_value,omitempty"`
}

// ItemInfoQuery is the item info state query payload.
type ItemInfoQuery struct {
	NftContractID types.ContractID `json:"nft_contract_id"`
	TokenID       types.TokenID    `json:"token_id"`
}

// StateQuery is a marketplace state query. Exactly one variant must be set.
type StateQuery struct {
	ItemInfo *ItemInfoQuery `json:"item_info,omitempty"`
	AllItems *Empty         `json:"all_items,omitempty"`
	Info     *Empty         `json:"info,omitempty"`
}

// Info is the marketplace configuration state.
type Info struct {
	AdminID              types.ActorID      `json:"admin_id"`
	TreasuryID           types.ActorID      `json:"treasury_id"`
	TreasuryFee          uint8              `json:"treasury_fee"`
	ApprovedNftContracts []types.ContractID `json:"approved_nft_contracts,omitempty"`
	ApprovedFtContracts  []types.ContractID `json:"approved_ft_contracts,omitempty"`
}

// StateReply is a marketplace state query reply. The variant matching the
// query is set.
type StateReply struct {
	ItemInfo *Item  `json:"item_info,omitempty"`
	AllItems []Item `json:"all_items,omitempty"`
	Info     *Info  `json:"info,omitempty"`
}
