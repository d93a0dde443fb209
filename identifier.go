// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import (
	"fmt"
	"regexp"

	"github.com/blang/semver"
)

// buildIdentifierPattern is the SemVer 2.0.0 production rule for a single
// build-metadata identifier. blang/semver validates this internally while
// parsing a full version string but doesn't export a standalone check, so
// configuration-supplied build identifiers (which never pass through
// semver.Parse on their own) are validated against it directly.
var buildIdentifierPattern = regexp.MustCompile(`^[0-9A-Za-z-]+$`)

// ParseIdentifiers converts raw strings, as supplied by CLI flags or
// environment variables, into pre-release identifiers. Each value is
// validated against SemVer 2.0.0's pre-release identifier production rule
// (numeric with no leading zero, or alphanumeric/hyphen).
func ParseIdentifiers(values []string) ([]semver.PRVersion, error) {
	ids := make([]semver.PRVersion, 0, len(values))
	for _, v := range values {
		pr, err := semver.NewPRVersion(v)
		if err != nil {
			return nil, fmt.Errorf("%w: pre-release identifier %q: %v", ErrInvalidConfiguration, v, err)
		}
		ids = append(ids, pr)
	}
	return ids, nil
}

// ValidateBuildMetadata checks raw build-metadata strings against SemVer
// 2.0.0's build identifier production rule.
func ValidateBuildMetadata(values []string) error {
	for _, v := range values {
		if !buildIdentifierPattern.MatchString(v) {
			return fmt.Errorf("%w: build metadata identifier %q is invalid", ErrInvalidConfiguration, v)
		}
	}
	return nil
}

// cloneIdentifiers returns a fresh copy so callers can append without
// mutating a shared Configuration slice.
func cloneIdentifiers(ids []semver.PRVersion) []semver.PRVersion {
	out := make([]semver.PRVersion, len(ids))
	copy(out, ids)
	return out
}
