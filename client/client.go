// Package client provides the node client used to deploy programs and
// exchange messages with them.
package client

import (
	"context"
	"fmt"
	"math"
	"time"

	"google.golang.org/grpc"

	"github.com/gear-dapps/nft-marketplace/crypto/signature"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	"github.com/gear-dapps/nft-marketplace/types"
)

// RoundLatest is a special round number always referring to the latest round.
const RoundLatest = math.MaxUint64

// Full gRPC method names of the node service.
const (
	methodGetInfo             = "/gear.v1.Node/GetInfo"
	methodLatestRound         = "/gear.v1.Node/LatestRound"
	methodAccountNonce        = "/gear.v1.Node/AccountNonce"
	methodSubmitMessage       = "/gear.v1.Node/SubmitMessage"
	methodSubmitMessageNoWait = "/gear.v1.Node/SubmitMessageNoWait"
	methodGetEvents           = "/gear.v1.Node/GetEvents"
	methodQuery               = "/gear.v1.Node/Query"
)

// watchEventsInterval is the poll interval used by WatchEvents.
const watchEventsInterval = 250 * time.Millisecond

// NodeInfo is the static information about the connected node.
type NodeInfo struct {
	// ChainName is the human readable chain name.
	ChainName string `json:"chain_name"`
	// GenesisHash is the hash of the genesis block.
	GenesisHash []byte `json:"genesis_hash"`

	// ChainContext is the domain separation context derived from the genesis
	// hash. It is computed locally and never transmitted.
	ChainContext signature.Context `json:"-"`
}

// DecodedEvent is a module-specific decoded event.
type DecodedEvent interface{}

// EventDecoder is an event decoder interface.
type EventDecoder interface {
	// DecodeEvent decodes an event. In case the event is not known to this
	// decoder, return (nil, nil).
	DecodeEvent(*types.Event) ([]DecodedEvent, error)
}

// BlockEvents are the events emitted in a specific round.
type BlockEvents struct {
	// Round is the round the events were emitted in.
	Round uint64

	// Events are the decoded events.
	Events []DecodedEvent
}

// Node is a client interface to the node the programs are deployed on.
type Node interface {
	// GetInfo returns information about the connected node.
	GetInfo(ctx context.Context) (*NodeInfo, error)

	// LatestRound returns the number of the latest finalized round.
	LatestRound(ctx context.Context) (uint64, error)

	// AccountNonce returns the current nonce of the given account.
	AccountNonce(ctx context.Context, id types.ActorID) (uint64, error)

	// SubmitMessage submits a signed message and waits for it to be
	// dispatched, returning the raw reply payload.
	SubmitMessage(ctx context.Context, msg *types.SignedMessage) (cbor.RawMessage, error)

	// SubmitMessageNoWait submits a signed message without waiting for its
	// dispatch.
	SubmitMessageNoWait(ctx context.Context, msg *types.SignedMessage) error

	// GetEvents returns all events emitted in the given round.
	GetEvents(ctx context.Context, round uint64) ([]*types.Event, error)

	// Query makes a node query at the given round.
	Query(ctx context.Context, round uint64, method string, args, rsp interface{}) error

	// WatchEvents subscribes to events decoded with the given decoders,
	// starting from the latest round. The returned channel is closed when the
	// context is canceled.
	WatchEvents(ctx context.Context, decoders []EventDecoder) (<-chan *BlockEvents, error)
}

type getEventsRequest struct {
	Round uint64 `json:"round"`
}

type queryRequest struct {
	Round  uint64          `json:"round"`
	Method string          `json:"method"`
	Args   cbor.RawMessage `json:"args,omitempty"`
}

type queryResponse struct {
	Data cbor.RawMessage `json:"data"`
}

type accountNonceRequest struct {
	Account types.ActorID `json:"account"`
}

type nodeClient struct {
	conn *grpc.ClientConn

	info *NodeInfo
}

// Implements Node.
func (nc *nodeClient) GetInfo(ctx context.Context) (*NodeInfo, error) {
	if nc.info != nil {
		return nc.info, nil
	}

	var info NodeInfo
	if err := nc.conn.Invoke(ctx, methodGetInfo, nil, &info); err != nil {
		return nil, fmt.Errorf("client: failed to fetch node info: %w", err)
	}
	info.ChainContext = signature.DeriveChainContext(types.SignatureContextBase, info.GenesisHash)
	nc.info = &info
	return nc.info, nil
}

// Implements Node.
func (nc *nodeClient) LatestRound(ctx context.Context) (uint64, error) {
	var round uint64
	if err := nc.conn.Invoke(ctx, methodLatestRound, nil, &round); err != nil {
		return 0, err
	}
	return round, nil
}

// Implements Node.
func (nc *nodeClient) AccountNonce(ctx context.Context, id types.ActorID) (uint64, error) {
	var nonce uint64
	if err := nc.conn.Invoke(ctx, methodAccountNonce, &accountNonceRequest{Account: id}, &nonce); err != nil {
		return 0, err
	}
	return nonce, nil
}

// Implements Node.
func (nc *nodeClient) SubmitMessage(ctx context.Context, msg *types.SignedMessage) (cbor.RawMessage, error) {
	var result types.CallResult
	if err := nc.conn.Invoke(ctx, methodSubmitMessage, msg, &result); err != nil {
		return nil, err
	}
	if !result.IsSuccess() {
		return nil, result.Failed
	}
	return result.Ok, nil
}

// Implements Node.
func (nc *nodeClient) SubmitMessageNoWait(ctx context.Context, msg *types.SignedMessage) error {
	return nc.conn.Invoke(ctx, methodSubmitMessageNoWait, msg, nil)
}

// Implements Node.
func (nc *nodeClient) GetEvents(ctx context.Context, round uint64) ([]*types.Event, error) {
	var events []*types.Event
	if err := nc.conn.Invoke(ctx, methodGetEvents, &getEventsRequest{Round: round}, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Implements Node.
func (nc *nodeClient) Query(ctx context.Context, round uint64, method string, args, rsp interface{}) error {
	req := queryRequest{
		Round:  round,
		Method: method,
		Args:   cbor.Marshal(args),
	}
	var raw queryResponse
	if err := nc.conn.Invoke(ctx, methodQuery, &req, &raw); err != nil {
		return err
	}
	if err := cbor.Unmarshal(raw.Data, rsp); err != nil {
		return fmt.Errorf("client: failed to unmarshal query response: %w", err)
	}
	return nil
}

// Implements Node.
func (nc *nodeClient) WatchEvents(ctx context.Context, decoders []EventDecoder) (<-chan *BlockEvents, error) {
	next, err := nc.LatestRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("client: failed to fetch latest round: %w", err)
	}
	next++

	ch := make(chan *BlockEvents)
	go func() {
		defer close(ch)

		ticker := time.NewTicker(watchEventsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			latest, err := nc.LatestRound(ctx)
			if err != nil {
				continue
			}

			for ; next <= latest; next++ {
				events, err := nc.GetEvents(ctx, next)
				if err != nil {
					return
				}

				be := &BlockEvents{Round: next}
				for _, ev := range events {
					for _, decoder := range decoders {
						decoded, err := decoder.DecodeEvent(ev)
						if err != nil {
							continue
						}
						be.Events = append(be.Events, decoded...)
					}
				}

				select {
				case <-ctx.Done():
					return
				case ch <- be:
				}
			}
		}
	}()
	return ch, nil
}

// New creates a new node client over the given connection.
func New(conn *grpc.ClientConn) Node {
	return &nodeClient{conn: conn}
}
