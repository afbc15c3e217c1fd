// Package builder wraps the WASM toolchain invocations behind the CLI
// surface: release builds, formatting, linting and toolchain bootstrap.
package builder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// WASMTarget is the compilation target of release builds.
const WASMTarget = "wasm32-unknown-unknown"

// DefaultTargetDir is the default build output directory relative to the
// workspace root.
const DefaultTargetDir = "target"

// ReleaseDir is the default release output directory relative to the
// workspace root.
var ReleaseDir = filepath.Join(DefaultTargetDir, WASMTarget, "release")

// RunFunc executes an external command, returning its combined output.
type RunFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Builder drives the contract workspace toolchain.
type Builder struct {
	// Dir is the workspace root.
	Dir string

	targetDir string
	logger    *zap.Logger
	run       RunFunc
}

// Option is a builder option.
type Option func(*Builder)

// WithRunFunc overrides command execution. Used by tests.
func WithRunFunc(run RunFunc) Option {
	return func(b *Builder) {
		b.run = run
	}
}

// WithTargetDir overrides the build output directory relative to the
// workspace root.
func WithTargetDir(dir string) Option {
	return func(b *Builder) {
		b.targetDir = dir
	}
}

// New creates a new builder rooted at the given workspace directory.
func New(dir string, logger *zap.Logger, opts ...Option) *Builder {
	b := &Builder{
		Dir:       dir,
		targetDir: DefaultTargetDir,
		logger:    logger.Named("builder"),
		run:       runCommand,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build compiles the workspace to WASM with the release profile and returns
// the produced artifacts. Optimized artifacts (*.opt.wasm) shadow their
// unoptimized counterparts.
func (b *Builder) Build(ctx context.Context) ([]string, error) {
	b.logger.Info("building release artifacts", zap.String("target", WASMTarget))

	out, err := b.run(ctx, b.Dir, "cargo", "build", "--release", "--target", WASMTarget)
	if err != nil {
		return nil, fmt.Errorf("builder: release build failed: %w\n%s", err, out)
	}

	artifacts, err := b.Artifacts()
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("builder: release build produced no artifacts under %s", b.releaseDir())
	}

	b.logger.Info("release build finished", zap.Strings("artifacts", artifacts))
	return artifacts, nil
}

// Artifacts returns the WASM artifacts present under the release output
// directory, preferring optimized ones.
func (b *Builder) Artifacts() ([]string, error) {
	dir := filepath.Join(b.Dir, b.releaseDir())
	all, err := filepath.Glob(filepath.Join(dir, "*.wasm"))
	if err != nil {
		return nil, err
	}

	optimized := make(map[string]bool)
	for _, path := range all {
		if strings.HasSuffix(path, ".opt.wasm") {
			optimized[strings.TrimSuffix(path, ".opt.wasm")] = true
		}
	}

	var artifacts []string
	for _, path := range all {
		base := strings.TrimSuffix(path, ".wasm")
		if optimized[base] && !strings.HasSuffix(path, ".opt.wasm") {
			continue
		}
		artifacts = append(artifacts, path)
	}
	return artifacts, nil
}

// FindArtifact returns the release artifact with the given base name.
func (b *Builder) FindArtifact(name string) (string, error) {
	artifacts, err := b.Artifacts()
	if err != nil {
		return "", err
	}
	for _, path := range artifacts {
		base := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".wasm"), ".opt")
		if base == name {
			return path, nil
		}
	}
	return "", fmt.Errorf("builder: artifact %s not found under %s", name, b.releaseDir())
}

// releaseDir returns the release output directory relative to the workspace
// root.
func (b *Builder) releaseDir() string {
	return filepath.Join(b.targetDir, WASMTarget, "release")
}

// Init installs the WASM compilation target into the local toolchain.
func (b *Builder) Init(ctx context.Context) error {
	out, err := b.run(ctx, b.Dir, "rustup", "target", "add", WASMTarget)
	if err != nil {
		return fmt.Errorf("builder: toolchain init failed: %w\n%s", err, out)
	}
	return nil
}

// Fmt formats the workspace. With check set it only verifies formatting.
func (b *Builder) Fmt(ctx context.Context, check bool) error {
	args := []string{"fmt", "--all"}
	if check {
		args = append(args, "--", "--check")
	}
	out, err := b.run(ctx, b.Dir, "cargo", args...)
	if err != nil {
		return fmt.Errorf("builder: fmt failed: %w\n%s", err, out)
	}
	return nil
}

// Lint runs the linter over the workspace with warnings denied.
func (b *Builder) Lint(ctx context.Context) error {
	out, err := b.run(ctx, b.Dir, "cargo", "clippy", "--workspace", "--all-targets", "--", "-D", "warnings")
	if err != nil {
		return fmt.Errorf("builder: lint failed: %w\n%s", err, out)
	}
	return nil
}

// Clean removes the build output directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(filepath.Join(b.Dir, b.targetDir))
}
