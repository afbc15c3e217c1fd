package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func TestConnect(t *testing.T) {
	require := require.New(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	srv := grpc.NewServer()
	defer srv.Stop()
	go func() { _ = srv.Serve(ln) }()

	conn, err := Connect(context.Background(), ln.Addr().String())
	require.NoError(err)
	require.NoError(conn.Close())
}

func TestConnectUnreachable(t *testing.T) {
	require := require.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	// Nothing listens on the endpoint, so the connection never becomes
	// ready and the context bounds the wait.
	_, err := Connect(ctx, "127.0.0.1:1")
	require.ErrorIs(err, context.DeadlineExceeded)
}
