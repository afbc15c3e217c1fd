package client

import (
	"context"
	"fmt"

	"github.com/gear-dapps/nft-marketplace/crypto/signature"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	"github.com/gear-dapps/nft-marketplace/types"
)

// DefaultGasLimit is the gas limit used for messages that do not set one.
const DefaultGasLimit = 100_000_000_000

// MessageBuilder is a helper for building, signing and submitting messages.
type MessageBuilder struct {
	nc  Node
	msg *types.Message
	sm  *types.SignedMessage
}

// NewMessageBuilder creates a new message builder.
func NewMessageBuilder(nc Node, method string, body interface{}) *MessageBuilder {
	mb := &MessageBuilder{
		nc:  nc,
		msg: types.NewMessage(method, body),
	}
	mb.msg.GasLimit = DefaultGasLimit
	return mb
}

// SetValue configures the amount of native value attached to the message.
func (mb *MessageBuilder) SetValue(value types.Quantity) *MessageBuilder {
	mb.msg.Value = value
	return mb
}

// SetGasLimit configures the maximum amount of gas the dispatch may consume.
func (mb *MessageBuilder) SetGasLimit(gas uint64) *MessageBuilder {
	mb.msg.GasLimit = gas
	return mb
}

// GetMessage returns the underlying unsigned message.
func (mb *MessageBuilder) GetMessage() *types.Message {
	return mb.msg
}

// AppendSign fetches the signer's nonce, signs the message and stores the
// signed envelope for submission.
func (mb *MessageBuilder) AppendSign(ctx context.Context, signer signature.Signer) error {
	info, err := mb.nc.GetInfo(ctx)
	if err != nil {
		return fmt.Errorf("client: failed to retrieve node info: %w", err)
	}
	nonce, err := mb.nc.AccountNonce(ctx, types.NewActorID(signer.Public()))
	if err != nil {
		return fmt.Errorf("client: failed to retrieve account nonce: %w", err)
	}
	mb.msg.Nonce = nonce

	sm, err := mb.msg.Sign(info.ChainContext, signer)
	if err != nil {
		return err
	}
	mb.sm = sm
	return nil
}

// SubmitTx submits the message and waits for its dispatch, decoding the
// reply payload into rsp when non-nil.
func (mb *MessageBuilder) SubmitTx(ctx context.Context, rsp interface{}) error {
	if mb.sm == nil {
		return fmt.Errorf("client: unable to submit unsigned message")
	}

	raw, err := mb.nc.SubmitMessage(ctx, mb.sm)
	if err != nil {
		return err
	}
	if rsp != nil {
		if err := cbor.Unmarshal(raw, rsp); err != nil {
			return fmt.Errorf("client: failed to unmarshal reply: %w", err)
		}
	}
	return nil
}

// SubmitTxNoWait submits the message without waiting for its dispatch.
func (mb *MessageBuilder) SubmitTxNoWait(ctx context.Context) error {
	if mb.sm == nil {
		return fmt.Errorf("client: unable to submit unsigned message")
	}
	return mb.nc.SubmitMessageNoWait(ctx, mb.sm)
}
