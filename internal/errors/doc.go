// Package errors provides typed error values for projscan.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Startup errors: the scan cannot begin (ErrRootNotFound, ErrInvalidConfig)
//   - Traversal errors: the directory walk failed (ErrTraversal)
//   - Project errors: a project.json could not be decoded (ErrInvalidProject)
//   - Option errors: an unknown mode or output format was requested
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%s: %w", path, kerrors.ErrInvalidProject)
//
// Handle errors in the CLI layer:
//
//	root, err := workflows.LocateRoot(wd)
//	if errors.Is(err, kerrors.ErrRootNotFound) {
//	    // Show user-friendly message
//	}
package errors
