package helpers

import (
	"fmt"
	"strings"

	"github.com/gear-dapps/nft-marketplace/testing"
	"github.com/gear-dapps/nft-marketplace/types"
)

const (
	addressPrefixHex = "0x"

	addressExplicitSeparator = ":"
	addressExplicitTest      = "test"
)

// ResolveActorID resolves a string address into the corresponding actor ID.
//
// Accepted forms are a 0x-prefixed hex actor ID and "test:<name>" for the
// well-known test accounts.
func ResolveActorID(address string) (*types.ActorID, error) {
	switch {
	case strings.HasPrefix(address, addressPrefixHex):
		var id types.ActorID
		if err := id.UnmarshalText([]byte(address)); err != nil {
			return nil, fmt.Errorf("malformed actor ID '%s': %w", address, err)
		}
		return &id, nil
	case strings.Contains(address, addressExplicitSeparator):
		subs := strings.SplitN(address, addressExplicitSeparator, 2)
		switch kind, data := subs[0], subs[1]; kind {
		case addressExplicitTest:
			testKey, ok := testing.TestAccounts[data]
			if !ok {
				return nil, fmt.Errorf("unsupported test account: %s", data)
			}
			return &testKey.Address, nil
		default:
			return nil, fmt.Errorf("unsupported address kind: %s", kind)
		}
	default:
		return nil, fmt.Errorf("unsupported address format")
	}
}

// ResolveTestKey resolves a "test:<name>" address into the corresponding
// well-known test key.
func ResolveTestKey(address string) (*testing.TestKey, error) {
	name, ok := strings.CutPrefix(address, addressExplicitTest+addressExplicitSeparator)
	if !ok {
		return nil, fmt.Errorf("unsupported signer address format: %s", address)
	}
	testKey, ok := testing.TestAccounts[name]
	if !ok {
		return nil, fmt.Errorf("unsupported test account: %s", name)
	}
	return &testKey, nil
}
