package types

import (
	"fmt"

	"github.com/gear-dapps/nft-marketplace/crypto/signature"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

// SignatureContextBase is the message signature context base string.
var SignatureContextBase = []byte("nft-marketplace/message: v1")

// TransactionID identifies a cross-contract transaction a program runs on
// behalf of a dispatched message.
type TransactionID uint64

// Call is a method call to the node together with its encoded body.
type Call struct {
	// Method is the called method name.
	Method string `json:"method"`
	// Body is the CBOR encoded method call body.
	Body cbor.RawMessage `json:"body"`
}

// Message is an unsigned message envelope.
type Message struct {
	// Call is the method call.
	Call Call `json:"call"`
	// GasLimit is the maximum amount of gas the dispatch may consume.
	GasLimit uint64 `json:"gas_limit"`
	// Value is the amount of native value attached to the message.
	Value Quantity `json:"value"`
	// Nonce is the signer's account nonce.
	Nonce uint64 `json:"nonce"`
}

// NewMessage creates a new unsigned message.
func NewMessage(method string, body interface{}) *Message {
	return &Message{
		Call: Call{
			Method: method,
			Body:   cbor.Marshal(body),
		},
	}
}

// Sign signs the message under the given chain domain separation context.
func (m *Message) Sign(sigCtx signature.Context, signer signature.Signer) (*SignedMessage, error) {
	body := cbor.Marshal(m)
	sig, err := signer.ContextSign(sigCtx, body)
	if err != nil {
		return nil, fmt.Errorf("types: failed to sign message: %w", err)
	}
	return &SignedMessage{
		Body: body,
		Auth: AuthProof{
			PublicKey: cbor.Marshal(signer.Public()),
			Signature: sig,
		},
	}, nil
}

// AuthProof is a scheme-tagged public key together with a signature.
type AuthProof struct {
	// PublicKey is the CBOR encoded, scheme-tagged public key of the signer.
	PublicKey cbor.RawMessage `json:"public_key"`
	// Signature is the signature over the context and the message body.
	Signature []byte `json:"signature"`
}

// SignedMessage is a signed message envelope.
type SignedMessage struct {
	// Body is the CBOR encoded message.
	Body cbor.RawMessage `json:"body"`
	// Auth authenticates the message.
	Auth AuthProof `json:"auth"`
}

// Hash returns the message identifier of the signed message.
func (sm *SignedMessage) Hash() MessageID {
	return NewHash(sm.Body, sm.Auth.PublicKey, sm.Auth.Signature)
}

// CallResult is the result of a message dispatch.
type CallResult struct {
	// Ok is the CBOR encoded reply payload on success.
	Ok cbor.RawMessage `json:"ok,omitempty"`
	// Failed carries the dispatch failure.
	Failed *FailedCallResult `json:"fail,omitempty"`
}

// IsSuccess checks whether the call result indicates success.
func (cr *CallResult) IsSuccess() bool {
	return cr.Failed == nil
}

// FailedCallResult is a failed call result.
type FailedCallResult struct {
	// Module is the name of the module that produced the error.
	Module string `json:"module"`
	// Code is the module-specific error code.
	Code uint32 `json:"code"`
	// Message is the error message.
	Message string `json:"message,omitempty"`
}

// Error is a trivial implementation of error.
func (cr FailedCallResult) Error() string {
	return cr.String()
}

// String returns the string representation of a failed call result.
func (cr FailedCallResult) String() string {
	return fmt.Sprintf("module: %s code: %d message: %s", cr.Module, cr.Code, cr.Message)
}
