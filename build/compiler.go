// Package build models the host side of a bundling pass: a compiler that runs
// emit hooks over a compilation and then writes the resulting assets to an
// output filesystem.
//
// Emit hooks follow a completion-callback convention. Each hook receives the
// compilation and a Callback it must invoke exactly once, with nil on success
// or the error that fails the build.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/internal/logging"
)

// Callback signals that an emit hook finished.
type Callback func(err error)

// EmitHandler runs after assets are produced and before they are written to
// the output filesystem. It must call done exactly once.
type EmitHandler func(ctx context.Context, c *Compilation, done Callback)

// Stats summarizes a finished build pass.
type Stats struct {
	// Assets is the number of assets left in the output set after emit hooks ran.
	Assets int

	// Written is the number of assets written to the output filesystem.
	Written int

	// Removed is the number of previously written assets removed from the output filesystem.
	Removed int

	// Duration is how long the pass took.
	Duration time.Duration
}

type tap struct {
	name string
	fn   EmitHandler
}

// Compiler runs emit hooks and finalizes output.
type Compiler struct {
	mu   sync.Mutex
	emit []tap

	output     billy.Filesystem
	outputRoot string
	logger     *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOutput sets the filesystem and root directory assets are written to.
// Without an output the compiler keeps assets in memory only.
func WithOutput(fsys billy.Filesystem, root string) Option {
	return func(c *Compiler) {
		c.output = fsys
		c.outputRoot = root
	}
}

// WithLogger sets the logger used for build pass diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCompiler creates a compiler with no hooks registered.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnEmit registers fn under name. Hooks run in registration order.
func (c *Compiler) OnEmit(name string, fn EmitHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.emit = append(c.emit, tap{name: name, fn: fn})
}

// Hooks returns the names of the registered emit hooks.
func (c *Compiler) Hooks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.emit))
	for i, t := range c.emit {
		names[i] = t.name
	}
	return names
}

// Run executes the emit hooks for comp and, when every hook succeeded, writes
// the remaining assets to the output filesystem. The first failing hook stops
// the pass and nothing is written.
func (c *Compiler) Run(ctx context.Context, comp *Compilation) (*Stats, error) {
	start := time.Now()
	logger := logging.WithCompilation(c.logger, comp.ID())

	c.mu.Lock()
	taps := make([]tap, len(c.emit))
	copy(taps, c.emit)
	c.mu.Unlock()

	for _, t := range taps {
		logger.Debug("running emit hook", slog.String("hook", t.name))
		if err := c.callEmit(ctx, logger, t, comp); err != nil {
			return nil, fmt.Errorf("emit hook %s: %w", t.name, err)
		}
	}

	stats, err := c.finalize(comp)
	if err != nil {
		return nil, err
	}
	stats.Duration = time.Since(start)

	logger.Debug("build pass finished",
		slog.Int("assets", stats.Assets),
		slog.Int("written", stats.Written),
		slog.Int("removed", stats.Removed),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

func (c *Compiler) callEmit(ctx context.Context, logger *slog.Logger, t tap, comp *Compilation) error {
	done := make(chan error, 1)
	var fired atomic.Bool

	t.fn(ctx, comp, func(err error) {
		if !fired.CompareAndSwap(false, true) {
			logger.Warn("emit callback invoked more than once", slog.String("hook", t.name))
			return
		}
		done <- err
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("waiting for emit hook: %w", ctx.Err())
	}
}

func (c *Compiler) finalize(comp *Compilation) (*Stats, error) {
	assets := comp.Assets()
	stats := &Stats{Assets: len(assets)}

	if c.output == nil {
		return stats, nil
	}

	for name, a := range assets {
		if a.ExistsAt() != "" {
			continue
		}

		target := c.output.Join(c.outputRoot, name)
		if dir := filepath.Dir(target); dir != "." && dir != "" {
			if err := c.output.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output directory %q: %w", dir, err)
			}
		}
		if err := util.WriteFile(c.output, target, a.Source(), 0o644); err != nil {
			return nil, fmt.Errorf("write asset %q: %w", name, err)
		}
		stats.Written++
	}

	for name, a := range comp.deletedAssets() {
		path := a.ExistsAt()
		if path == "" {
			continue
		}
		if err := c.output.Remove(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("remove asset %q: %w", name, err)
		}
		stats.Removed++
	}

	return stats, nil
}
