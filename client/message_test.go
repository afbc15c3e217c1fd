package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gear-dapps/nft-marketplace/crypto/signature"
	"github.com/gear-dapps/nft-marketplace/crypto/signature/ed25519"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	"github.com/gear-dapps/nft-marketplace/types"
)

func newTestSigner(seed string) signature.Signer {
	return ed25519.NewTestSigner(seed)
}

// mockNode is an in-process Node used to exercise the message flow without a
// node.
type mockNode struct {
	info      NodeInfo
	nonce     uint64
	reply     interface{}
	submitted []*types.SignedMessage

	latest uint64
	events map[uint64][]*types.Event
}

func newMockNode() *mockNode {
	genesisHash := types.NewHash([]byte("mock genesis"))
	return &mockNode{
		info: NodeInfo{
			ChainName:    "mock",
			GenesisHash:  genesisHash[:],
			ChainContext: signature.DeriveChainContext(types.SignatureContextBase, genesisHash[:]),
		},
		events: make(map[uint64][]*types.Event),
	}
}

func (m *mockNode) GetInfo(ctx context.Context) (*NodeInfo, error) {
	return &m.info, nil
}

func (m *mockNode) LatestRound(ctx context.Context) (uint64, error) {
	return m.latest, nil
}

func (m *mockNode) AccountNonce(ctx context.Context, id types.ActorID) (uint64, error) {
	return m.nonce, nil
}

func (m *mockNode) SubmitMessage(ctx context.Context, msg *types.SignedMessage) (cbor.RawMessage, error) {
	m.submitted = append(m.submitted, msg)
	return cbor.Marshal(m.reply), nil
}

func (m *mockNode) SubmitMessageNoWait(ctx context.Context, msg *types.SignedMessage) error {
	m.submitted = append(m.submitted, msg)
	return nil
}

func (m *mockNode) GetEvents(ctx context.Context, round uint64) ([]*types.Event, error) {
	return m.events[round], nil
}

func (m *mockNode) Query(ctx context.Context, round uint64, method string, args, rsp interface{}) error {
	return cbor.Unmarshal(cbor.Marshal(m.reply), rsp)
}

func (m *mockNode) WatchEvents(ctx context.Context, decoders []EventDecoder) (<-chan *BlockEvents, error) {
	ch := make(chan *BlockEvents)
	close(ch)
	return ch, nil
}

func TestMessageBuilder(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	nc := newMockNode()
	nc.nonce = 7
	nc.reply = "done"

	mb := NewMessageBuilder(nc, "program.Send", map[string]string{"ping": "pong"})

	// Unsigned messages must not be submitted.
	require.Error(mb.SubmitTx(ctx, nil))
	require.Error(mb.SubmitTxNoWait(ctx))

	mb.SetGasLimit(555).SetValue(*types.NewFromUint64(10))
	signer := newTestSigner("nft-marketplace/client: message builder test")
	require.NoError(mb.AppendSign(ctx, signer))

	var reply string
	require.NoError(mb.SubmitTx(ctx, &reply))
	require.Equal("done", reply)
	require.Len(nc.submitted, 1)

	sm := nc.submitted[0]
	require.True(signer.Public().Verify(nc.info.ChainContext, sm.Body, sm.Auth.Signature))

	var msg types.Message
	require.NoError(cbor.Unmarshal(sm.Body, &msg))
	require.Equal("program.Send", msg.Call.Method)
	require.EqualValues(555, msg.GasLimit)
	require.EqualValues(7, msg.Nonce, "the account nonce should be picked up on signing")
	require.Zero(msg.Value.Cmp(types.NewFromUint64(10)))
}

func TestMessageBuilderDefaults(t *testing.T) {
	require := require.New(t)

	mb := NewMessageBuilder(newMockNode(), "program.Send", nil)
	require.EqualValues(DefaultGasLimit, mb.GetMessage().GasLimit)
	require.True(mb.GetMessage().Value.IsZero())
}
