package errors

import "errors"

// Startup errors prevent the scan from establishing its starting point.
var (
	// ErrRootNotFound indicates no ancestor of the start directory contains a .git entry.
	ErrRootNotFound = errors.New("no .git directory found")

	// ErrInvalidConfig indicates a settings file is malformed or holds unknown values.
	ErrInvalidConfig = errors.New("configuration is invalid")
)

// Traversal errors indicate the directory walk could not complete.
var (
	// ErrTraversal indicates a directory could not be read while strict mode was on.
	ErrTraversal = errors.New("error walking directory")
)

// Project errors indicate a project.json file could not be decoded.
var (
	// ErrInvalidProject indicates the file is not a structurally valid project descriptor.
	ErrInvalidProject = errors.New("invalid project.json")
)

// Option errors indicate an unsupported value was requested.
var (
	// ErrUnknownMode indicates the traversal mode name is not recognised.
	ErrUnknownMode = errors.New("unknown scan mode")

	// ErrUnknownFormat indicates the output format name is not recognised.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrInvalidPattern indicates an include glob cannot be compiled.
	ErrInvalidPattern = errors.New("invalid include pattern")
)
