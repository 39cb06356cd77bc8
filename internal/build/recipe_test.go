package build

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		recipe  Recipe
		wantErr bool
	}{
		{
			name:    "no stages",
			recipe:  Recipe{},
			wantErr: true,
		},
		{
			name: "single stage",
			recipe: Recipe{Stages: []Stage{
				{Name: "runtime", Image: "docker.io/library/alpine:3.22"},
			}},
		},
		{
			name: "missing image",
			recipe: Recipe{Stages: []Stage{
				{Name: "runtime"},
			}},
			wantErr: true,
		},
		{
			name: "duplicate names",
			recipe: Recipe{Stages: []Stage{
				{Name: "build", Image: "golang:1.25", Transient: true},
				{Name: "build", Image: "alpine:3.22"},
			}},
			wantErr: true,
		},
		{
			name: "non-transient before last",
			recipe: Recipe{Stages: []Stage{
				{Name: "build", Image: "golang:1.25"},
				{Name: "runtime", Image: "alpine:3.22"},
			}},
			wantErr: true,
		},
		{
			name: "transient last stage",
			recipe: Recipe{Stages: []Stage{
				{Name: "build", Image: "golang:1.25", Transient: true},
			}},
			wantErr: true,
		},
		{
			name: "transient entrypoint",
			recipe: Recipe{Stages: []Stage{
				{Name: "build", Image: "golang:1.25", Transient: true, Entrypoint: []string{"/bin/sh"}},
				{Name: "runtime", Image: "alpine:3.22"},
			}},
			wantErr: true,
		},
		{
			name: "cache missing key",
			recipe: Recipe{Stages: []Stage{
				{Name: "runtime", Image: "alpine:3.22", Cache: &CacheSpec{Path: "/go/pkg/mod"}},
			}},
			wantErr: true,
		},
		{
			name: "cache missing path",
			recipe: Recipe{Stages: []Stage{
				{Name: "runtime", Image: "alpine:3.22", Cache: &CacheSpec{Key: "go.sum"}},
			}},
			wantErr: true,
		},
		{
			name: "run and copy on one step",
			recipe: Recipe{Stages: []Stage{
				{Name: "runtime", Image: "alpine:3.22", Steps: []Step{
					{Run: "true", Copy: "a /b"},
				}},
			}},
			wantErr: true,
		},
		{
			name: "malformed copy",
			recipe: Recipe{Stages: []Stage{
				{Name: "runtime", Image: "alpine:3.22", Steps: []Step{
					{Copy: "only-source"},
				}},
			}},
			wantErr: true,
		},
		{
			name: "copy from unknown stage",
			recipe: Recipe{Stages: []Stage{
				{Name: "runtime", Image: "alpine:3.22", Steps: []Step{
					{Copy: "builder:/out/bin /app/bin"},
				}},
			}},
			wantErr: true,
		},
		{
			name: "copy from self",
			recipe: Recipe{Stages: []Stage{
				{Name: "build", Image: "golang:1.25", Transient: true, Steps: []Step{
					{Copy: "build:/out/bin /app/bin"},
				}},
				{Name: "runtime", Image: "alpine:3.22"},
			}},
			wantErr: true,
		},
		{
			name: "two stages with cross-stage copy",
			recipe: Recipe{Stages: []Stage{
				{Name: "builder", Image: "golang:1.25", Transient: true, Steps: []Step{
					{Run: "go build -o /out/newsletter ./cmd/newsletter"},
				}},
				{Name: "runtime", Image: "alpine:3.22",
					Entrypoint: []string{"/app/newsletter"},
					Steps: []Step{
						{Copy: "builder:/out/newsletter /app/newsletter"},
					}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.recipe.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadRecipe(t *testing.T) {
	data := `
[[stage]]
name = "builder"
image = "docker.io/library/golang:1.25-alpine"
workdir = "/src"
transient = true

[stage.env]
CGO_ENABLED = "0"

[stage.cache]
path = "/go/pkg/mod"
key = "go.sum"

[[stage.step]]
run = "go build -o /out/newsletter ./cmd/newsletter"

[[stage]]
name = "runtime"
image = "docker.io/library/alpine:3.22"
entrypoint = ["/app/newsletter"]

[[stage.step]]
run = "apk add --no-cache ca-certificates"

[[stage.step]]
copy = "builder:/out/newsletter /app/newsletter"
`

	path := filepath.Join(t.TempDir(), "build.toml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRecipe(path)
	if err != nil {
		t.Fatalf("LoadRecipe failed: %v", err)
	}

	if len(r.Stages) != 2 {
		t.Fatalf("len(Stages) = %d, want 2", len(r.Stages))
	}

	builder := r.Stages[0]
	if builder.Name != "builder" || !builder.Transient {
		t.Fatalf("builder stage = %+v, want transient stage named builder", builder)
	}
	if builder.Workdir != "/src" {
		t.Errorf("workdir = %q, want /src", builder.Workdir)
	}
	if builder.Env["CGO_ENABLED"] != "0" {
		t.Errorf("env = %v, want CGO_ENABLED=0", builder.Env)
	}
	if builder.Cache == nil || builder.Cache.Path != "/go/pkg/mod" || builder.Cache.Key != "go.sum" {
		t.Errorf("cache = %+v, want path /go/pkg/mod key go.sum", builder.Cache)
	}

	runtime := r.Stages[1]
	if runtime.Transient {
		t.Error("runtime stage should not be transient")
	}
	if len(runtime.Entrypoint) != 1 || runtime.Entrypoint[0] != "/app/newsletter" {
		t.Errorf("entrypoint = %v, want [/app/newsletter]", runtime.Entrypoint)
	}
	if len(runtime.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(runtime.Steps))
	}
	if runtime.Steps[1].Copy != "builder:/out/newsletter /app/newsletter" {
		t.Errorf("copy = %q", runtime.Steps[1].Copy)
	}
}

func TestLoadRecipeMissingFile(t *testing.T) {
	if _, err := LoadRecipe(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRecipeInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.toml")
	if err := os.WriteFile(path, []byte("[[stage]]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRecipe(path); err == nil {
		t.Fatal("expected validation error for stage without image")
	}
}

func TestStageLabel(t *testing.T) {
	if got := stageLabel("builder", 0); got != `"builder"` {
		t.Fatalf("stageLabel = %s, want %q", got, `"builder"`)
	}
	if got := stageLabel("", 2); got != "3" {
		t.Fatalf("stageLabel = %s, want 3", got)
	}
}
