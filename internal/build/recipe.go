package build

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// An ordered list of build stages, usually loaded from build.toml.
type Recipe struct {
	Stages []Stage `toml:"stage"`
}

// One build stage: a base image plus the steps to run inside it.
type Stage struct {
	Name       string            `toml:"name"`       // Optional name, referenced by cross-stage copies.
	Image      string            `toml:"image"`      // Base image reference.
	Workdir    string            `toml:"workdir"`    // Initial working directory for steps.
	Env        map[string]string `toml:"env"`        // Initial environment for steps.
	Transient  bool              `toml:"transient"`  // Transient stages are not exported.
	Entrypoint []string          `toml:"entrypoint"` // OCI entrypoint for the exported image.
	Cache      *CacheSpec        `toml:"cache"`      // Optional dependency cache binding.
	Steps      []Step            `toml:"step"`       // Ordered steps.
}

// Binds a host dependency cache into the stage.
//
// The cache key is the digest of the lock file, so builds with different
// lock states never share cached dependencies.
type CacheSpec struct {
	Path string `toml:"path"` // Container path holding downloaded dependencies.
	Key  string `toml:"key"`  // Lock file path, relative to the build root.
}

// A single build step. Run and Copy are operations; shell, workdir, and env
// act as modifiers, either scoped to an operation on the same step or
// persisted for subsequent steps when the step carries no operation.
type Step struct {
	Run     string            `toml:"run"`     // Shell command to execute.
	Copy    string            `toml:"copy"`    // Copy operation: "src dest" or "stage:src dest".
	Shell   string            `toml:"shell"`   // Shell override.
	Workdir string            `toml:"workdir"` // Working directory override.
	Env     map[string]string `toml:"env"`     // Environment additions.
}

// Loads and validates a recipe from a TOML file.
func LoadRecipe(path string) (*Recipe, error) {
	var r Recipe
	if _, err := toml.DecodeFile(path, &r); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRecipe, path, err)
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRecipe, path, err)
	}

	return &r, nil
}

// Checks the structural rules the pipeline depends on.
//
// Exactly one stage may be exported and it must be the last, so that the
// build is a linear construction ending in the runtime image. Cross-stage
// copies may only reference earlier named stages, keeping the stage graph
// acyclic by construction.
func (r *Recipe) Validate() error {
	if len(r.Stages) == 0 {
		return fmt.Errorf("recipe has no stages")
	}

	names := make(map[string]bool)

	for i, stage := range r.Stages {
		label := stageLabel(stage.Name, i)

		if stage.Image == "" {
			return fmt.Errorf("stage %s: missing image", label)
		}

		if stage.Name != "" {
			if names[stage.Name] {
				return fmt.Errorf("stage %s: duplicate name", label)
			}
		}

		last := i == len(r.Stages)-1
		if !stage.Transient && !last {
			return fmt.Errorf("stage %s: only the last stage may be non-transient", label)
		}
		if stage.Transient && last {
			return fmt.Errorf("stage %s: the last stage must not be transient", label)
		}
		if stage.Transient && len(stage.Entrypoint) > 0 {
			return fmt.Errorf("stage %s: transient stages cannot set an entrypoint", label)
		}

		if stage.Cache != nil {
			if stage.Cache.Path == "" || stage.Cache.Key == "" {
				return fmt.Errorf("stage %s: cache requires both path and key", label)
			}
		}

		if err := validateSteps(stage.Steps, label, names); err != nil {
			return err
		}

		if stage.Name != "" {
			names[stage.Name] = true
		}
	}

	return nil
}

// Checks each step's copy syntax and cross-stage references.
//
// The names map holds the stages declared before the one being validated,
// so a forward or self reference fails here.
func validateSteps(steps []Step, label string, names map[string]bool) error {
	for j, step := range steps {
		if step.Run != "" && step.Copy != "" {
			return fmt.Errorf("stage %s, step %d: run and copy are mutually exclusive", label, j+1)
		}

		if step.Copy == "" {
			continue
		}

		if len(strings.Fields(step.Copy)) != 2 {
			return fmt.Errorf("stage %s, step %d: copy wants \"src dest\", got %q", label, j+1, step.Copy)
		}

		src := strings.Fields(step.Copy)[0]
		if from, _, ok := parseStageSource(src); ok && !names[from] {
			return fmt.Errorf("stage %s, step %d: copy references unknown stage %q", label, j+1, from)
		}
	}
	return nil
}

// Returns a label for a stage, preferring the name when available and falling
// back to the 1-based index.
func stageLabel(name string, index int) string {
	if name != "" {
		return fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("%d", index+1)
}
