package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventKey(t *testing.T) {
	require := require.New(t)

	key := NewEventKey("market", 7)
	require.Len(key, len("market")+4)

	var ev Event
	err := ev.UnmarshalRaw(key, []byte{0xa0}, nil)
	require.NoError(err)
	require.Equal("market", ev.Module)
	require.EqualValues(7, ev.Code)
	require.True(ev.Key().IsEqual(key))

	err = ev.UnmarshalRaw([]byte{0x01}, nil, nil)
	require.Error(err, "short keys should be rejected")
}
