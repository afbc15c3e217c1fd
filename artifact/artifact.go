// Package artifact provisions the prebuilt WASM contract binaries the
// integration tests deploy next to the marketplace program.
package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Default fixture release locations. The versions are pinned so that test
// runs are reproducible.
const (
	fungibleTokenURL = "https://github.com/gear-dapps/fungible-token/releases/download/0.1.4/fungible_token-0.1.4.opt.wasm"
	nftURL           = "https://github.com/gear-dapps/non-fungible-token/releases/download/0.2.5/nft-0.2.5.opt.wasm"
)

// Artifact is a versioned binary provisioned at a fixed local path.
type Artifact struct {
	// Name is the human readable artifact name.
	Name string `yaml:"name"`
	// URL is the remote release location.
	URL string `yaml:"url"`
	// SHA256 is the optional hex encoded digest the download must match.
	SHA256 string `yaml:"sha256,omitempty"`
	// Path is the local path the artifact is provisioned at.
	Path string `yaml:"path"`
}

// DefaultFixtures returns the two contract fixtures the integration tests
// depend on, rooted at the given target directory.
func DefaultFixtures(targetDir string) []Artifact {
	return []Artifact{
		{
			Name: "fungible_token",
			URL:  fungibleTokenURL,
			Path: filepath.Join(targetDir, "fungible_token.wasm"),
		},
		{
			Name: "nft",
			URL:  nftURL,
			Path: filepath.Join(targetDir, "nft.wasm"),
		},
	}
}

// Fetcher downloads artifacts that are not already present locally.
type Fetcher struct {
	client  *http.Client
	logger  *zap.Logger
	retries uint64
}

// Option is a fetcher option.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithRetries overrides the number of download retries.
func WithRetries(n uint64) Option {
	return func(f *Fetcher) {
		f.retries = n
	}
}

// NewFetcher creates a new artifact fetcher.
func NewFetcher(logger *zap.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: 5 * time.Minute},
		logger:  logger.Named("artifact"),
		retries: 4,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Ensure makes sure the artifact exists at its path, downloading it on a
// cache miss. A second call with the artifact already present performs no
// network transfer.
//
// It reports whether a download took place.
func (f *Fetcher) Ensure(ctx context.Context, a Artifact) (bool, error) {
	if _, err := os.Stat(a.Path); err == nil {
		f.logger.Debug("artifact already present",
			zap.String("name", a.Name),
			zap.String("path", a.Path),
		)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("artifact: failed to stat %s: %w", a.Path, err)
	}

	f.logger.Info("downloading artifact",
		zap.String("name", a.Name),
		zap.String("url", a.URL),
	)

	op := func() error {
		return f.download(ctx, a)
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.retries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return false, fmt.Errorf("artifact: failed to fetch %s: %w", a.Name, err)
	}
	return true, nil
}

// EnsureAll ensures every artifact in the given set.
func (f *Fetcher) EnsureAll(ctx context.Context, artifacts []Artifact) error {
	for _, a := range artifacts {
		if _, err := f.Ensure(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, a Artifact) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
	if err != nil {
		return backoff.Permanent(err)
	}

	rsp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	switch {
	case rsp.StatusCode == http.StatusOK:
	case rsp.StatusCode >= 400 && rsp.StatusCode < 500:
		// Client errors will not resolve on retry.
		return backoff.Permanent(fmt.Errorf("unexpected status: %s", rsp.Status))
	default:
		return fmt.Errorf("unexpected status: %s", rsp.Status)
	}

	if err = os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		return backoff.Permanent(err)
	}

	// Download into a temporary file and rename into place so that a partial
	// transfer never satisfies the presence check.
	tmp, err := os.CreateTemp(filepath.Dir(a.Path), "."+filepath.Base(a.Path)+".tmp*")
	if err != nil {
		return backoff.Permanent(err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	h := sha256.New()
	if _, err = io.Copy(io.MultiWriter(tmp, h), rsp.Body); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return backoff.Permanent(err)
	}

	if a.SHA256 != "" {
		if digest := hex.EncodeToString(h.Sum(nil)); digest != a.SHA256 {
			return backoff.Permanent(fmt.Errorf("digest mismatch (expected: %s got: %s)", a.SHA256, digest))
		}
	}

	if err = os.Rename(tmp.Name(), a.Path); err != nil {
		return backoff.Permanent(err)
	}

	f.logger.Info("artifact downloaded",
		zap.String("name", a.Name),
		zap.String("path", a.Path),
	)
	return nil
}
