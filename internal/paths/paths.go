package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/imnyang/newsletter/internal"
)

const (

	// Base name of the configuration file.
	configFilename = "config.toml"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Locates the configuration file.
//
// The working directory is checked first, then the XDG config directories
// (e.g. ~/.config/newsletter/config.toml). If no file exists anywhere, the
// working-directory path is returned so that error messages name the
// conventional location.
func ConfigFile() string {
	if _, err := os.Stat(configFilename); err == nil {
		return configFilename
	}

	if p, err := xdg.SearchConfigFile(filepath.Join(internal.Name, configFilename)); err == nil {
		return p
	}

	return configFilename
}

// Path to the directory holding build dependency caches.
//
//	Linux:   ~/.cache/newsletter/build
//	macOS:   ~/Library/Caches/newsletter/build
func BuildCache() string {
	return filepath.Join(xdg.CacheHome, internal.Name, "build")
}

// Path to the directory for runtime files (PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/newsletter or /run/user/<uid>/newsletter
//	macOS:   ~/Library/Caches/newsletter/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, internal.Name)
	}
	return filepath.Join(xdg.CacheHome, internal.Name, "run")
}

// Default path to the PID file written while the monitor is running.
func PIDFile() string {
	return filepath.Join(Runtime(), internal.Name+".pid")
}
