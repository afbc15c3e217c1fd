package client

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/gear-dapps/nft-marketplace/crypto/signature"
	"github.com/gear-dapps/nft-marketplace/internal/cbor"
	"github.com/gear-dapps/nft-marketplace/types"
)

// Program module method names.
const (
	methodProgramUpload = "program.Upload"
	methodProgramSend   = "program.Send"

	// methodProgramState is the program state query.
	methodProgramState = "program.State"
)

// Upload is the body of the program.Upload call.
type Upload struct {
	// Code is the Snappy-compressed WASM code of the program.
	Code []byte `json:"code"`
	// Salt disambiguates multiple deployments of the same code.
	Salt []byte `json:"salt"`
	// Payload is the CBOR encoded init payload.
	Payload cbor.RawMessage `json:"payload,omitempty"`
}

// UploadResult is the result of the program.Upload call.
type UploadResult struct {
	// Code is the identifier of the uploaded code.
	Code types.CodeID `json:"code"`
	// Program is the actor ID assigned to the deployed program.
	Program types.ActorID `json:"program"`
}

// Send is the body of the program.Send call.
type Send struct {
	// Destination is the target program.
	Destination types.ActorID `json:"destination"`
	// Payload is the CBOR encoded message payload.
	Payload cbor.RawMessage `json:"payload"`
}

// StateRequest is the body of the program.State query.
type StateRequest struct {
	// Program is the queried program.
	Program types.ActorID `json:"program"`
	// Payload is the CBOR encoded state query payload.
	Payload cbor.RawMessage `json:"payload,omitempty"`
}

// UploadProgram generates a program.Upload message with the given init
// payload. The code is transparently compressed with Snappy.
func UploadProgram(nc Node, code, salt []byte, init interface{}) *MessageBuilder {
	return NewMessageBuilder(nc, methodProgramUpload, &Upload{
		Code:    CompressCode(code),
		Salt:    salt,
		Payload: cbor.Marshal(init),
	})
}

// SendMessage generates a program.Send message with the given payload.
func SendMessage(nc Node, dest types.ActorID, payload interface{}) *MessageBuilder {
	return NewMessageBuilder(nc, methodProgramSend, &Send{
		Destination: dest,
		Payload:     cbor.Marshal(payload),
	})
}

// QueryState queries the state of the given program.
func QueryState(ctx context.Context, nc Node, round uint64, program types.ActorID, payload, rsp interface{}) error {
	return nc.Query(ctx, round, methodProgramState, &StateRequest{
		Program: program,
		Payload: cbor.Marshal(payload),
	}, rsp)
}

// DeployProgram uploads the given program code, waits for the deployment to
// be dispatched and returns the assigned actor ID.
//
// The returned ID is cross-checked against the deterministic derivation from
// the code hash and salt.
func DeployProgram(
	ctx context.Context,
	nc Node,
	signer signature.Signer,
	code, salt []byte,
	init interface{},
	gasLimit uint64,
) (types.ActorID, error) {
	mb := UploadProgram(nc, code, salt, init).SetGasLimit(gasLimit)
	if err := mb.AppendSign(ctx, signer); err != nil {
		return types.ActorID{}, err
	}

	var result UploadResult
	if err := mb.SubmitTx(ctx, &result); err != nil {
		return types.ActorID{}, fmt.Errorf("client: program deployment failed: %w", err)
	}

	expected := types.NewProgramID(types.NewHash(code), salt)
	if !result.Program.Equal(expected) {
		return types.ActorID{}, fmt.Errorf("client: deployed program ID mismatch (expected: %s got: %s)",
			expected, result.Program)
	}
	return result.Program, nil
}

// CompressCode performs code compression using Snappy.
func CompressCode(code []byte) []byte {
	var compressedCode bytes.Buffer
	encoder := snappy.NewBufferedWriter(&compressedCode)
	_, err := encoder.Write(code)
	if err != nil {
		panic(err)
	}
	encoder.Close()
	return compressedCode.Bytes()
}

// DecompressCode performs code decompression using Snappy.
func DecompressCode(compressed []byte) ([]byte, error) {
	return io.ReadAll(snappy.NewReader(bytes.NewReader(compressed)))
}
