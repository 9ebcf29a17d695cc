// Package apperr defines the error kinds shared across the engine.
// Callers classify failures with errors.Is against these sentinels.
package apperr

import "errors"

var (
	// ErrInvalidInput marks malformed caller input, such as a source file
	// without a path.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a repository path that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNodeNotFound marks a node id absent from the current snapshot.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNotADirectory marks a path that resolved to a file where a
	// directory was required.
	ErrNotADirectory = errors.New("not a directory")

	// ErrOutOfRange marks a layer number outside [1,4] or an expand call
	// against a non-aggregate unit.
	ErrOutOfRange = errors.New("out of range")

	// ErrNoPath is the "no path" result of a shortest-path query between
	// two nodes that both exist but are not connected.
	ErrNoPath = errors.New("no path")
)
