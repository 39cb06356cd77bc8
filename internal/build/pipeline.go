package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imnyang/newsletter/internal/runtime"
)

// Holds shared state while building the stages of a recipe.
type pipeline struct {
	rt         *runtime.Runtime              // Container runtime for image and container operations.
	recipe     *Recipe                       // Recipe being executed.
	output     string                        // Output directory for the exported image.
	root       string                        // Build context root.
	platform   string                        // Target platform.
	cacheDir   string                        // Host cache directory. Empty disables caching.
	stages     map[string]*runtime.Container // Named stage containers for cross-stage copies.
	containers []*runtime.Container          // All stage containers, destroyed after the build.
}

// Creates a pipeline from the given options.
func newPipeline(rt *runtime.Runtime, opts Options) *pipeline {
	return &pipeline{
		rt:       rt,
		recipe:   opts.Recipe,
		output:   opts.Output,
		root:     opts.Root,
		platform: opts.Platform,
		cacheDir: opts.CacheDir,
		stages:   make(map[string]*runtime.Container),
	}
}

// Builds the recipe end-to-end against the container runtime.
//
// Stages are built in declaration order. The final stage is exported to the
// output directory. All stage containers are destroyed when the build
// completes, successfully or not.
func (p *pipeline) build(ctx context.Context) error {
	defer p.destroyContainers(ctx)

	for i, stage := range p.recipe.Stages {
		if err := p.buildStage(ctx, stage, i); err != nil {
			return fmt.Errorf("%w: stage %s: %w", ErrBuild, stageLabel(stage.Name, i), err)
		}
	}

	return nil
}

// Builds a single stage.
//
// Starts a build container from the stage's base image, restores the
// dependency cache when one is declared, executes the stage's steps, and
// harvests the cache back out. The non-transient stage is stopped and
// exported with its entrypoint.
func (p *pipeline) buildStage(ctx context.Context, stage Stage, index int) error {
	slog.Info(fmt.Sprintf("building stage %s", stageLabel(stage.Name, index)), "image", stage.Image)

	ctr, err := p.rt.StartContainer(ctx, stage.Image, p.containerID(stage.Name, index), p.platform)
	if err != nil {
		return err
	}

	p.containers = append(p.containers, ctr)
	if stage.Name != "" {
		p.stages[stage.Name] = ctr
	}

	cache := p.stageCache(stage)
	if err := cache.restore(ctx, ctr); err != nil {
		return err
	}

	if err := executeSteps(ctx, ctr, stage.Steps, initialState(stage), p.root, p.stages); err != nil {
		return err
	}

	if err := cache.harvest(ctx, ctr); err != nil {
		return err
	}

	if !stage.Transient {
		if err := ctr.Stop(ctx); err != nil {
			return err
		}
		if err := ctr.Export(ctx, p.output, stage.Entrypoint); err != nil {
			return err
		}
	}

	return nil
}

// Returns the cache binding for a stage, or an inert one when the stage
// declares no cache or caching is disabled.
func (p *pipeline) stageCache(stage Stage) *stageCache {
	if stage.Cache == nil || p.cacheDir == "" {
		return &stageCache{}
	}
	return newStageCache(stage.Cache, p.root, p.cacheDir)
}

// Destroys all stage containers.
func (p *pipeline) destroyContainers(ctx context.Context) {
	for _, ctr := range p.containers {
		ctr.Destroy(ctx)
	}
}

// Returns a unique container ID for a stage.
func (p *pipeline) containerID(name string, index int) string {
	if name != "" {
		return fmt.Sprintf("newsletter-stage-%s", name)
	}
	return fmt.Sprintf("newsletter-stage-%d", index+1)
}
