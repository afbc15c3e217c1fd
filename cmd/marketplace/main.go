// The marketplace command manages the NFT marketplace contract workspace: it
// installs the toolchain, builds the release WASM, runs the formatting and
// lint checks, provisions the test fixtures and drives the integration tests
// against a node.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
