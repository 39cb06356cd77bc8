package build

import (
	"archive/tar"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/imnyang/newsletter/internal/paths"
	"github.com/imnyang/newsletter/internal/runtime"
)

// Binds a host dependency cache to one stage's container.
//
// The host directory is keyed by the digest of the stage's lock file, so a
// changed lock state gets a fresh cache instead of silently reusing
// dependencies resolved for a different manifest. The zero value is an
// inert cache whose restore and harvest are no-ops.
type stageCache struct {
	spec *CacheSpec
	root string // Build root for resolving the lock file.
	home string // Base directory holding all keyed caches.
}

// Creates a cache binding for a stage.
func newStageCache(spec *CacheSpec, root, home string) *stageCache {
	return &stageCache{spec: spec, root: root, home: home}
}

// Returns the host directory for this stage's cache.
//
// Empty without error when the lock file does not exist, which disables
// caching for the stage: there is no meaningful key to scope the cache by.
func (c *stageCache) dir() (string, error) {
	lock := filepath.Join(c.root, c.spec.Key)

	key, err := cacheKey(lock)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("lock file missing, cache disabled", "lock", lock)
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrCache, err)
	}

	return filepath.Join(c.home, key), nil
}

// Computes the cache key for a lock file: the hex SHA-256 of its contents.
func cacheKey(lockPath string) (string, error) {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Copies the host cache into the container's cache path.
//
// A missing host cache directory is the first build for this lock state;
// the container path is still created so the build tools find it.
func (c *stageCache) restore(ctx context.Context, ctr *runtime.Container) error {
	if c.spec == nil {
		return nil
	}

	dir, err := c.dir()
	if err != nil || dir == "" {
		return err
	}

	if err := ctr.MkdirAll(ctx, c.spec.Path); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	slog.Debug("restoring cache", "dir", dir, "path", c.spec.Path)

	pr, pw := io.Pipe()
	go func() {
		tw := tar.NewWriter(pw)
		err := writeDirToTar(tw, dir, ".")
		tw.Close()
		pw.CloseWithError(err)
	}()

	if err := ctr.CopyTo(ctx, pr, c.spec.Path); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	return nil
}

// Copies the container's cache path back to the host after a successful
// stage, replacing the previous cache contents for this key.
func (c *stageCache) harvest(ctx context.Context, ctr *runtime.Container) error {
	if c.spec == nil {
		return nil
	}

	dir, err := c.dir()
	if err != nil || dir == "" {
		return err
	}

	staging := dir + ".harvest"
	defer os.RemoveAll(staging)

	if err := os.MkdirAll(staging, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	pr, pw := io.Pipe()
	errc := make(chan error, 1)
	go func() {
		errc <- ctr.CopyFrom(ctx, pw, c.spec.Path)
		pw.Close()
	}()

	if err := extractTar(pr, staging); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	if err := <-errc; err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	// CopyFrom archives the path under its base name.
	harvested := filepath.Join(staging, filepath.Base(c.spec.Path))
	if _, err := os.Stat(harvested); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	if err := os.Rename(harvested, dir); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	slog.Debug("harvested cache", "dir", dir)
	return nil
}
