// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import (
	"fmt"

	"github.com/blang/semver"
)

// Increment names the component the synthesizer bumps when the base tag is
// stable and height is greater than zero.
type Increment int

const (
	IncrementPatch Increment = iota
	IncrementMinor
	IncrementMajor
)

func (i Increment) String() string {
	switch i {
	case IncrementMajor:
		return "major"
	case IncrementMinor:
		return "minor"
	default:
		return "patch"
	}
}

// ParseIncrement resolves the CLI/env string form of the auto-increment
// component. An empty string is the default ("patch").
func ParseIncrement(s string) (Increment, error) {
	switch s {
	case "", "patch":
		return IncrementPatch, nil
	case "minor":
		return IncrementMinor, nil
	case "major":
		return IncrementMajor, nil
	default:
		return 0, fmt.Errorf("%w: unknown auto-increment component %q", ErrInvalidConfiguration, s)
	}
}

// MajorMinor is a floor applied to the synthesized (major, minor) pair.
type MajorMinor struct {
	Major uint64
	Minor uint64
}

// Configuration controls how a BaseDecision is turned into a final
// Version. It is immutable once constructed. Use DefaultConfiguration to
// obtain one with spec-mandated defaults, then override individual fields.
type Configuration struct {
	// TagPrefix is stripped from a tag's short name before SemVer parsing.
	TagPrefix string

	// AutoIncrement selects which component is bumped when the base is a
	// stable release and height is greater than zero.
	AutoIncrement Increment

	// DefaultPreReleaseIdentifiers are appended after an auto-increment,
	// before the height suffix. Defaults to [alpha, 0].
	DefaultPreReleaseIdentifiers []semver.PRVersion

	// MinimumMajorMinor floors the synthesized (major, minor) pair, except
	// for an exact tag match.
	MinimumMajorMinor *MajorMinor

	// IgnoreHeight, when true, treats height as zero for the trailing
	// numeric identifier (and omits it entirely in the Root case).
	IgnoreHeight bool

	// BuildMetadata is appended verbatim to the final version, replacing
	// any build metadata carried by the base tag.
	BuildMetadata []string
}

// DefaultConfiguration returns the configuration used when no overrides
// are supplied: empty prefix, patch increment, [alpha, 0] pre-release
// identifiers, no floor, height honored, no build metadata.
func DefaultConfiguration() Configuration {
	return Configuration{
		AutoIncrement: IncrementPatch,
		DefaultPreReleaseIdentifiers: []semver.PRVersion{
			{VersionStr: "alpha"},
			{VersionNum: 0, IsNum: true},
		},
	}
}

// Validate checks fields that were not already validated at construction
// time (pre-release identifiers go through ParseIdentifiers, which
// validates eagerly; build metadata is checked here since CLI glue may
// assign it directly).
func (c Configuration) Validate() error {
	return ValidateBuildMetadata(c.BuildMetadata)
}
