// Package tempdir provides scratch-directory scoping for external tool runs.
// The LaTeX toolchain litters its working directory with aux files, so each
// invocation gets a throwaway directory that is fully removed afterwards.
//
// The scoping helpers return explicit restore/cleanup funcs: callers pair an
// acquire with a deferred release, and the original working directory is
// restored even when the scoped work fails.
package tempdir

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/texsnip/texsnip/internal/errors"
)

// Prefix is the name prefix of created temporary directories.
const Prefix = "texsnip_"

// Dir is a temporary directory created by Create and destroyed by Remove.
type Dir struct {
	path string
}

// Create creates a new uniquely named temporary directory under the system
// temp location.
func Create() (*Dir, error) {
	path, err := os.MkdirTemp("", Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory's path.
func (d *Dir) Path() string {
	return d.path
}

// Remove deletes the directory and everything in it. Read-only entries left
// behind by tools (common on Windows) block removal; on failure the tree is
// made writable and the removal retried once.
func (d *Dir) Remove() error {
	if d == nil || d.path == "" {
		return nil
	}

	if err := os.RemoveAll(d.path); err == nil {
		return nil
	}

	_ = filepath.WalkDir(d.path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		mode := os.FileMode(0644)
		if entry.IsDir() {
			mode = 0755
		}
		_ = os.Chmod(p, mode)
		return nil
	})

	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("failed to remove temporary directory: %w", err)
	}
	return nil
}

// Enter changes the working directory to dir and returns a restore func that
// changes back to the directory that was current when Enter was called.
//
//	restore, err := tempdir.Enter(dir)
//	if err != nil {
//	    return err
//	}
//	defer restore()
func Enter(dir string) (restore func() error, err error) {
	oldDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("failed to change directory: %w", err)
	}

	return func() error {
		if err := os.Chdir(oldDir); err != nil {
			return fmt.Errorf("failed to restore working directory: %w", err)
		}
		return nil
	}, nil
}

// Run creates a temporary directory and invokes fn with its path. The
// directory is removed when fn returns, whether or not it failed.
func Run(fn func(dir string) error) error {
	d, err := Create()
	if err != nil {
		return err
	}

	return errors.Join(fn(d.path), d.Remove())
}

// RunIn creates a temporary directory, makes it the working directory, and
// invokes fn with its path. The original working directory is restored and
// the temporary directory removed when fn returns, even when fn fails.
func RunIn(fn func(dir string) error) error {
	return Run(func(dir string) error {
		restore, err := Enter(dir)
		if err != nil {
			return err
		}

		return errors.Join(fn(dir), restore())
	})
}
