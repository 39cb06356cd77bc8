// Package build executes container build recipes.
//
// A recipe is an ordered sequence of stages, each backed by a container
// created from a base image. The pipeline starts a container for each
// stage, dispatches its steps (shell commands, file copies, and
// inter-stage transfers), and exports the final non-transient stage as an
// OCI image with the recipe's entrypoint. Transient stages exist only to
// produce artifacts; nothing from their filesystems reaches the exported
// image except what a later stage explicitly copies.
//
// A stage may declare a dependency cache: a host directory bound to a
// container path, keyed by the digest of the stage's lock file. Builds
// with the same lock state reuse downloaded dependencies; builds with a
// different lock state get a separate cache.
//
// Container operations are delegated to the runtime package. Step state
// (environment variables, working directory, shell) is accumulated across
// steps within a stage and reset between stages.
//
// Example usage:
//
//	recipe, err := build.LoadRecipe("build.toml")
//	if err != nil {
//	    return err
//	}
//
//	result, err := build.Run(ctx, rt, build.Options{
//	    Recipe:   recipe,
//	    Output:   "dist",
//	    Root:     ".",
//	    CacheDir: paths.BuildCache(),
//	})
//	if err != nil {
//	    return err
//	}
package build
