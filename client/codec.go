package client

import (
	"google.golang.org/grpc/encoding"

	"github.com/gear-dapps/nft-marketplace/internal/cbor"
)

// CodecName is the name of the CBOR gRPC codec.
const CodecName = "cbor"

// codec is a gRPC codec that transparently serializes all messages with
// canonical CBOR. The node exposes a CBOR-over-gRPC surface, so no protobuf
// descriptors are involved.
type codec struct{}

func (codec) Marshal(v interface{}) ([]byte, error) {
	return cbor.Marshal(v), nil
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}

func (codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(codec{})
}
