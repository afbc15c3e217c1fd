package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeArtifact(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, ReleaseDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("\x00asm"), 0o644))
}

func TestBuild(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	var commands [][]string
	run := func(ctx context.Context, cmdDir, name string, args ...string) ([]byte, error) {
		require.Equal(dir, cmdDir)
		commands = append(commands, append([]string{name}, args...))
		writeArtifact(t, dir, "nft_marketplace.wasm")
		return nil, nil
	}

	b := New(dir, zaptest.NewLogger(t), WithRunFunc(run))
	artifacts, err := b.Build(context.Background())
	require.NoError(err)
	require.Len(artifacts, 1)
	require.Equal([][]string{{"cargo", "build", "--release", "--target", WASMTarget}}, commands)
}

func TestBuildFailure(t *testing.T) {
	require := require.New(t)

	run := func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		return []byte("compile error"), fmt.Errorf("exit status 101")
	}
	b := New(t.TempDir(), zaptest.NewLogger(t), WithRunFunc(run))

	_, err := b.Build(context.Background())
	require.ErrorContains(err, "compile error")
}

func TestBuildNoArtifacts(t *testing.T) {
	require := require.New(t)

	run := func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		return nil, nil
	}
	b := New(t.TempDir(), zaptest.NewLogger(t), WithRunFunc(run))

	_, err := b.Build(context.Background())
	require.ErrorContains(err, "no artifacts")
}

func TestArtifacts(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeArtifact(t, dir, "nft_marketplace.wasm")
	writeArtifact(t, dir, "nft_marketplace.opt.wasm")
	writeArtifact(t, dir, "other.wasm")

	b := New(dir, zaptest.NewLogger(t))
	artifacts, err := b.Artifacts()
	require.NoError(err)

	var names []string
	for _, path := range artifacts {
		names = append(names, filepath.Base(path))
	}
	require.ElementsMatch([]string{"nft_marketplace.opt.wasm", "other.wasm"}, names,
		"optimized artifacts should shadow unoptimized ones")
}

func TestFindArtifact(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeArtifact(t, dir, "nft_marketplace.opt.wasm")

	b := New(dir, zaptest.NewLogger(t))
	path, err := b.FindArtifact("nft_marketplace")
	require.NoError(err)
	require.Equal("nft_marketplace.opt.wasm", filepath.Base(path))

	_, err = b.FindArtifact("missing")
	require.Error(err)
}

func TestToolchainCommands(t *testing.T) {
	require := require.New(t)

	var commands [][]string
	run := func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
		commands = append(commands, append([]string{name}, args...))
		return nil, nil
	}
	b := New(t.TempDir(), zaptest.NewLogger(t), WithRunFunc(run))

	ctx := context.Background()
	require.NoError(b.Init(ctx))
	require.NoError(b.Fmt(ctx, false))
	require.NoError(b.Fmt(ctx, true))
	require.NoError(b.Lint(ctx))

	require.Equal([][]string{
		{"rustup", "target", "add", WASMTarget},
		{"cargo", "fmt", "--all"},
		{"cargo", "fmt", "--all", "--", "--check"},
		{"cargo", "clippy", "--workspace", "--all-targets", "--", "-D", "warnings"},
	}, commands)
}

func TestClean(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeArtifact(t, dir, "nft_marketplace.wasm")

	b := New(dir, zaptest.NewLogger(t))
	require.NoError(b.Clean())

	_, err := os.Stat(filepath.Join(dir, "target"))
	require.True(os.IsNotExist(err))
}

func TestTargetDirOverride(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "build-out", WASMTarget, "release", "nft_marketplace.wasm")
	require.NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(os.WriteFile(path, []byte("\x00asm"), 0o644))

	b := New(dir, zaptest.NewLogger(t), WithTargetDir("build-out"))
	found, err := b.FindArtifact("nft_marketplace")
	require.NoError(err)
	require.Equal(path, found)

	// The default location must not be consulted.
	writeArtifact(t, dir, "stale.wasm")
	artifacts, err := b.Artifacts()
	require.NoError(err)
	require.Equal([]string{path}, artifacts)

	require.NoError(b.Clean())
	_, err = os.Stat(filepath.Join(dir, "build-out"))
	require.True(os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "target"))
	require.NoError(err)
}
