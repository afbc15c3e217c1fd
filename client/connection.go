package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// dialTimeout bounds the wait for the connection to become ready.
const dialTimeout = 30 * time.Second

// Connect establishes a gRPC connection to the node at the given endpoint
// and waits for it to become ready.
//
// Endpoints of the form "unix:<path>" and plain "<host>:<port>" use an
// insecure channel, which is the usual setup for a local test node. Prefix
// the endpoint with "tls:" to enable transport security.
func Connect(ctx context.Context, endpoint string) (*grpc.ClientConn, error) {
	var creds credentials.TransportCredentials
	switch {
	case strings.HasPrefix(endpoint, "tls:"):
		endpoint = strings.TrimPrefix(endpoint, "tls:")
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	default:
		creds = insecure.NewCredentials()
	}

	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("client: failed to dial %s: %w", endpoint, err)
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return conn, nil
		}
		if !conn.WaitForStateChange(ctx, state) {
			_ = conn.Close()
			return nil, fmt.Errorf("client: failed to dial %s: %w", endpoint, ctx.Err())
		}
	}
}
