// Package workflows provides high-level orchestration for projscan commands.
//
// Workflows coordinate the lower-level packages (scan, project, output) to
// implement complete user-facing features, independent of CLI concerns like
// flag parsing and configuration precedence.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and loads settings
//   - Calls the appropriate workflow function
//   - Maps the returned error to an exit status
//
// Workflows handle everything else:
//   - Locating the repository root
//   - Building the walker and ignore rules
//   - Parsing project files and emitting results as they are found
//
// # Available Workflows
//
//   - LocateRoot: finds the repository root above a start directory
//   - Scan: walks the repository and prints project results
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	root, err := workflows.LocateRoot(wd)
//	if errors.Is(err, kerrors.ErrRootNotFound) {
//	    // Show user-friendly message
//	}
//
// Problems confined to a single file are logged as warnings through the
// Logger in the options and never returned.
//
// # Context Usage
//
// Long-running workflows such as Scan accept a context.Context as their
// first parameter.
package workflows
