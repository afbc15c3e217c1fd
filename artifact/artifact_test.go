package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEnsure(t *testing.T) {
	require := require.New(t)

	payload := []byte("\x00asm fake wasm payload")
	var hits atomic.Uint64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	a := Artifact{
		Name: "fake",
		URL:  srv.URL + "/fake.wasm",
		Path: filepath.Join(t.TempDir(), "target", "fake.wasm"),
	}
	f := NewFetcher(zaptest.NewLogger(t))

	downloaded, err := f.Ensure(context.Background(), a)
	require.NoError(err)
	require.True(downloaded)

	data, err := os.ReadFile(a.Path)
	require.NoError(err)
	require.Equal(payload, data)

	// A second call finds the artifact and stays off the network.
	downloaded, err = f.Ensure(context.Background(), a)
	require.NoError(err)
	require.False(downloaded)
	require.EqualValues(1, hits.Load())
}

func TestEnsureDigest(t *testing.T) {
	require := require.New(t)

	payload := []byte("\x00asm fake wasm payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	digest := sha256.Sum256(payload)
	dir := t.TempDir()
	f := NewFetcher(zaptest.NewLogger(t), WithRetries(0))

	good := Artifact{
		Name:   "good",
		URL:    srv.URL + "/good.wasm",
		SHA256: hex.EncodeToString(digest[:]),
		Path:   filepath.Join(dir, "good.wasm"),
	}
	_, err := f.Ensure(context.Background(), good)
	require.NoError(err)

	bad := Artifact{
		Name:   "bad",
		URL:    srv.URL + "/bad.wasm",
		SHA256: hex.EncodeToString(make([]byte, sha256.Size)),
		Path:   filepath.Join(dir, "bad.wasm"),
	}
	_, err = f.Ensure(context.Background(), bad)
	require.Error(err, "digest mismatch should fail the fetch")
	_, err = os.Stat(bad.Path)
	require.True(os.IsNotExist(err), "a failed fetch should leave no artifact behind")
}

func TestEnsureRetry(t *testing.T) {
	require := require.New(t)

	payload := []byte("eventually consistent")
	var hits atomic.Uint64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	a := Artifact{
		Name: "flaky",
		URL:  srv.URL + "/flaky.wasm",
		Path: filepath.Join(t.TempDir(), "flaky.wasm"),
	}
	downloaded, err := NewFetcher(zaptest.NewLogger(t)).Ensure(context.Background(), a)
	require.NoError(err, "transient server errors should be retried")
	require.True(downloaded)
	require.EqualValues(3, hits.Load())
}

func TestEnsurePermanentFailure(t *testing.T) {
	require := require.New(t)

	var hits atomic.Uint64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := Artifact{
		Name: "missing",
		URL:  srv.URL + "/missing.wasm",
		Path: filepath.Join(t.TempDir(), "missing.wasm"),
	}
	_, err := NewFetcher(zaptest.NewLogger(t)).Ensure(context.Background(), a)
	require.Error(err)
	require.EqualValues(1, hits.Load(), "client errors should not be retried")
}

func TestDefaultFixtures(t *testing.T) {
	require := require.New(t)

	fixtures := DefaultFixtures("target")
	require.Len(fixtures, 2)
	require.Equal("fungible_token", fixtures[0].Name)
	require.Equal(filepath.Join("target", "fungible_token.wasm"), fixtures[0].Path)
	require.Equal("nft", fixtures[1].Name)
	require.Equal(filepath.Join("target", "nft.wasm"), fixtures[1].Path)
}
