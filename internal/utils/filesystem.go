package utils

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/projscan/internal/errors"
)

// RootMarker is the entry whose presence marks a repository's top-level directory.
const RootMarker = ".git"

// FindRepositoryRoot walks up from start and returns the first directory
// that contains a RootMarker entry of any kind (directory, file or link).
// It returns ErrRootNotFound once the filesystem root has been checked.
func FindRepositoryRoot(start string) (string, error) {
	currentDir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		// Any stat error counts as absent, including permission problems.
		if _, err := os.Stat(filepath.Join(currentDir, RootMarker)); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)

		// If we've reached the filesystem root and haven't found .git
		if parentDir == currentDir {
			return "", fmt.Errorf("%w (starting from %s)", kerrors.ErrRootNotFound, start)
		}
		currentDir = parentDir
	}
}

// RelativeOrAbsolute returns path relative to root, or path itself when it
// cannot be expressed relative to root.
func RelativeOrAbsolute(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
