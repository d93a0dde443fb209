// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import (
	"fmt"

	"github.com/blang/semver"
)

// Synthesize turns a BaseDecision and Configuration into the final
// Version, forking on four cases: Exact, Pre-release base, Stable base,
// Root. It is a pure function of its inputs.
func Synthesize(decision BaseDecision, cfg Configuration) (semver.Version, error) {
	var result semver.Version

	switch {
	case decision.Source == SourceTag && decision.Height == 0:
		// Exact: skip auto-increment, default pre-release, and the
		// minimum floor entirely. The tag is authoritative.
		result = decision.Base
		result = applyBuildMetadata(result, cfg)
		return finish(result)

	case decision.Source == SourceTag && len(decision.Base.Pre) > 0:
		// Pre-release base: append the height identifier, no increment.
		result = decision.Base
		result.Pre = append(cloneIdentifiers(decision.Base.Pre), heightIdentifier(decision, cfg))

	case decision.Source == SourceTag:
		// Stable base: auto-increment, then default pre-release + height.
		result = decision.Base
		switch cfg.AutoIncrement {
		case IncrementMajor:
			result.Major++
			result.Minor = 0
			result.Patch = 0
		case IncrementMinor:
			result.Minor++
			result.Patch = 0
		default:
			result.Patch++
		}
		result.Pre = append(cloneIdentifiers(cfg.DefaultPreReleaseIdentifiers), heightIdentifier(decision, cfg))

	default:
		// Root: start from 0.0.0, default pre-release, height suffix
		// unless ignore_height (which suppresses it entirely here, the
		// only case where the suffix is fully omitted).
		result = semver.Version{}
		result.Pre = cloneIdentifiers(cfg.DefaultPreReleaseIdentifiers)
		if !cfg.IgnoreHeight {
			result.Pre = append(result.Pre, semver.PRVersion{VersionNum: decision.Height, IsNum: true})
		}
	}

	result = applyMinimumFloor(result, decision, cfg)
	result = applyBuildMetadata(result, cfg)
	return finish(result)
}

// heightIdentifier is the trailing numeric pre-release identifier
// appended after a tag's own pre-release or after the default
// identifiers: decision.Height, or 0 when ignore_height is set.
func heightIdentifier(decision BaseDecision, cfg Configuration) semver.PRVersion {
	h := decision.Height
	if cfg.IgnoreHeight {
		h = 0
	}
	return semver.PRVersion{VersionNum: h, IsNum: true}
}

// applyMinimumFloor floors the synthesized (major, minor) pair at
// cfg.MinimumMajorMinor. It is only reached for non-Exact cases (Exact
// returns before this is called), so the floor always applies to a
// "natural next version" result.
func applyMinimumFloor(v semver.Version, decision BaseDecision, cfg Configuration) semver.Version {
	if cfg.MinimumMajorMinor == nil {
		return v
	}

	floor := *cfg.MinimumMajorMinor
	if v.Major > floor.Major || (v.Major == floor.Major && v.Minor >= floor.Minor) {
		return v
	}

	v.Major, v.Minor, v.Patch = floor.Major, floor.Minor, 0
	v.Pre = cloneIdentifiers(cfg.DefaultPreReleaseIdentifiers)
	if decision.Source != SourceRoot || !cfg.IgnoreHeight {
		v.Pre = append(v.Pre, heightIdentifier(decision, cfg))
	}
	return v
}

// applyBuildMetadata replaces any build metadata the result carries with
// cfg.BuildMetadata: only configuration supplies build metadata, a base
// tag's own build metadata is always discarded.
func applyBuildMetadata(v semver.Version, cfg Configuration) semver.Version {
	if len(cfg.BuildMetadata) > 0 {
		v.Build = append([]string{}, cfg.BuildMetadata...)
	} else {
		v.Build = nil
	}
	return v
}

func finish(v semver.Version) (semver.Version, error) {
	if err := v.Validate(); err != nil {
		return semver.Version{}, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	return v, nil
}
