// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import "errors"

// Sentinel error kinds. Callers should use errors.Is against these to map
// failures to exit codes; the wrapped message carries the specifics.
var (
	// ErrNoRepository means no Git object database is accessible at the
	// given location.
	ErrNoRepository = errors.New("vers: no repository found")

	// ErrRepositoryRead means the object database was corrupt or became
	// unreadable partway through a walk.
	ErrRepositoryRead = errors.New("vers: repository read failed")

	// ErrInvalidConfiguration means the resolved Configuration failed
	// validation before any walking began.
	ErrInvalidConfiguration = errors.New("vers: invalid configuration")

	// ErrSynthesis means the synthesizer produced a value that does not
	// round-trip through canonical SemVer serialization. Indicates a bug.
	ErrSynthesis = errors.New("vers: version synthesis produced an invalid result")
)
