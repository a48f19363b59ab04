package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/wagiedev/mcpdev-go/internal/errors"
)

// Config holds configuration for executable discovery.
type Config struct {
	// Name is the executable to look for, e.g. "gofmt".
	Name string

	// Path is an explicit executable path that skips PATH search.
	Path string

	// Logger is an optional logger for discovery operations.
	// If nil, a default no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates an executable.
type Discoverer interface {
	// Discover returns the path to the executable or an
	// *errors.ExecutableNotFoundError listing the searched locations.
	Discover(ctx context.Context) (string, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new executable discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &discoverer{
		cfg: cfg,
		log: log.With("executable", cfg.Name),
	}
}

// Discover locates the executable.
func (d *discoverer) Discover(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if d.cfg.Path != "" {
		d.log.Debug("Using explicit executable path", "path", d.cfg.Path)

		if _, err := os.Stat(d.cfg.Path); err == nil {
			return d.cfg.Path, nil
		}

		return "", &errors.ExecutableNotFoundError{Name: d.cfg.Name, SearchedPaths: []string{d.cfg.Path}}
	}

	searchedPaths := make([]string, 0, 3)

	if path, err := exec.LookPath(d.cfg.Name); err == nil {
		d.log.Debug("Found executable in PATH", "path", path)

		return path, nil
	}

	searchedPaths = append(searchedPaths, "$PATH")

	for _, path := range d.commonPaths() {
		searchedPaths = append(searchedPaths, path)

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			d.log.Debug("Found executable at common path", "path", path)

			return path, nil
		}
	}

	d.log.Warn("Executable not found in any searched paths", "searched_paths", searchedPaths)

	return "", &errors.ExecutableNotFoundError{Name: d.cfg.Name, SearchedPaths: searchedPaths}
}

func (d *discoverer) commonPaths() []string {
	var paths []string

	if goroot := os.Getenv("GOROOT"); goroot != "" {
		paths = append(paths, filepath.Join(goroot, "bin", d.cfg.Name))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, "go", "bin", d.cfg.Name))
	}

	return paths
}
