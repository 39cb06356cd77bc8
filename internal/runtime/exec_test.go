package runtime

import (
	"sort"
	"strings"
	"testing"
)

func TestMergeEnv(t *testing.T) {
	base := []string{"PATH=/usr/bin", "HOME=/root", "LANG=C"}
	overrides := []string{"HOME=/build", "GOFLAGS=-trimpath"}

	got := mergeEnv(base, overrides)
	sort.Strings(got)

	want := []string{"GOFLAGS=-trimpath", "HOME=/build", "LANG=C", "PATH=/usr/bin"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merged[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMergeEnvIgnoresMalformedEntries(t *testing.T) {
	got := mergeEnv([]string{"not-an-assignment"}, []string{"K=v"})
	if len(got) != 1 || got[0] != "K=v" {
		t.Fatalf("merged = %v, want [K=v]", got)
	}
}

func TestNextExecIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := nextExecID()
		if !strings.HasPrefix(id, "exec-") {
			t.Fatalf("id = %q, want exec- prefix", id)
		}
		if seen[id] {
			t.Fatalf("duplicate exec id %q", id)
		}
		seen[id] = true
	}
}
