package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	goruntime "runtime"

	"github.com/imnyang/newsletter/internal/paths"
	"github.com/imnyang/newsletter/internal/runtime"
)

// Controls recipe execution.
type Options struct {
	Recipe   *Recipe // Recipe to execute.
	Output   string  // Directory for the exported image.
	Root     string  // Build context root, for resolving copy sources and lock files.
	Platform string  // Target platform (e.g. "linux/amd64"). Defaults to the host.
	CacheDir string  // Host directory holding dependency caches. Empty disables caching.
}

// Returned after successful recipe execution.
type Result struct {
	Output string // Directory containing the exported image.
}

// Executes a recipe against the container runtime.
//
// Stages are built in declaration order. Each stage starts a container from
// its base image and executes the stage's steps; the final stage is exported
// as an OCI image to the output directory. Any step failure aborts the whole
// build and nothing is exported.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*Result, error) {
	if opts.Platform == "" {
		opts.Platform = "linux/" + goruntime.GOARCH
	}

	slog.Info("executing recipe",
		"output", opts.Output,
		"stages", len(opts.Recipe.Stages),
		"platform", opts.Platform,
	)

	if err := os.MkdirAll(opts.Output, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	if err := newPipeline(rt, opts).build(ctx); err != nil {
		return nil, err
	}

	return &Result{Output: opts.Output}, nil
}
