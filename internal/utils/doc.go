// Package utils provides shared helpers for projscan.
//
// # Filesystem Utilities
//
//   - FindRepositoryRoot: walks up directories to find the .git marker
//   - RelativeOrAbsolute: makes a path relative to a root for display
package utils
