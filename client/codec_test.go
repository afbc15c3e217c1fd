package client

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodec(t *testing.T) {
	require := require.New(t)

	c := codec{}
	require.Equal(CodecName, c.Name())
	require.NotNil(encoding.GetCodec(CodecName), "the codec should register itself")

	data, err := c.Marshal(map[string]uint64{"round": 42})
	require.NoError(err)

	var dec map[string]uint64
	require.NoError(c.Unmarshal(data, &dec))
	require.EqualValues(42, dec["round"])
}
