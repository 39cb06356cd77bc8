package build

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheKey(t *testing.T) {
	dir := t.TempDir()
	lock := filepath.Join(dir, "go.sum")
	if err := os.WriteFile(lock, []byte("module v1.0.0 h1:abc\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	key1, err := cacheKey(lock)
	if err != nil {
		t.Fatalf("cacheKey failed: %v", err)
	}
	if len(key1) != 64 {
		t.Fatalf("len(key) = %d, want 64 hex chars", len(key1))
	}

	key2, err := cacheKey(lock)
	if err != nil {
		t.Fatal(err)
	}
	if key1 != key2 {
		t.Fatalf("same lock produced different keys: %q vs %q", key1, key2)
	}

	if err := os.WriteFile(lock, []byte("module v1.1.0 h1:def\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	key3, err := cacheKey(lock)
	if err != nil {
		t.Fatal(err)
	}
	if key3 == key1 {
		t.Fatal("changed lock contents produced the same key")
	}
}

func TestCacheDir(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	lock := filepath.Join(root, "go.sum")
	if err := os.WriteFile(lock, []byte("lock-state\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newStageCache(&CacheSpec{Path: "/go/pkg/mod", Key: "go.sum"}, root, home)

	dir, err := c.dir()
	if err != nil {
		t.Fatalf("dir failed: %v", err)
	}
	if filepath.Dir(dir) != home {
		t.Fatalf("dir = %q, want a child of %q", dir, home)
	}

	key, err := cacheKey(lock)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dir) != key {
		t.Fatalf("dir base = %q, want lock key %q", filepath.Base(dir), key)
	}
}

func TestCacheDirMissingLock(t *testing.T) {
	c := newStageCache(&CacheSpec{Path: "/go/pkg/mod", Key: "go.sum"}, t.TempDir(), t.TempDir())

	dir, err := c.dir()
	if err != nil {
		t.Fatalf("dir failed: %v", err)
	}
	if dir != "" {
		t.Fatalf("dir = %q, want empty for missing lock file", dir)
	}
}
