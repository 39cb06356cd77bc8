package cli

import (
	"context"
	"log/slog"

	"github.com/imnyang/newsletter/internal/build"
	"github.com/imnyang/newsletter/internal/paths"
	"github.com/imnyang/newsletter/internal/runtime"
)

// Represents the 'newsletter build' command.
type BuildCmd struct {
	Recipe    string `short:"f" default:"build.toml" help:"Recipe file to execute." placeholder:"PATH"`
	Output    string `short:"o" default:"dist" help:"Output directory for the exported image." placeholder:"DIR"`
	Root      string `default:"." help:"Build context root for copy sources and lock files." placeholder:"DIR"`
	Platform  string `help:"Target platform (e.g. linux/amd64). Defaults to the host." placeholder:"OS/ARCH"`
	Address   string `default:"/run/containerd/containerd.sock" help:"Containerd socket address." placeholder:"PATH"`
	Namespace string `default:"newsletter" help:"Containerd namespace." placeholder:"NAME"`
}

// Executes the build command.
//
// Loads the recipe, connects to containerd, and runs the build pipeline.
// The exported image lands in the output directory as an OCI archive.
func (c *BuildCmd) Run(ctx context.Context) error {
	recipe, err := build.LoadRecipe(c.Recipe)
	if err != nil {
		return err
	}

	rt, err := runtime.New(c.Address, c.Namespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := build.Run(ctx, rt, build.Options{
		Recipe:   recipe,
		Output:   c.Output,
		Root:     c.Root,
		Platform: c.Platform,
		CacheDir: paths.BuildCache(),
	})
	if err != nil {
		return err
	}

	slog.Info("build complete", "output", result.Output)
	return nil
}
