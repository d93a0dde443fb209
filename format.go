// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
)

// LanguageVersions renders one computed Version into the string forms
// several packaging ecosystems expect. This is CLI-glue convenience, not
// part of the core: the core's only contract is the canonical SemVer
// string.
type LanguageVersions struct {
	SemVer     string `json:"semver"`
	Python     string `json:"python"`
	JavaScript string `json:"javascript"`
	DotNet     string `json:"dotnet"`
	Go         string `json:"go"`
}

// FormatLanguageVersions derives every ecosystem form from v, including
// its build metadata as a "+" suffix. dirty adds a "dirty" marker: as a
// trailing build identifier when v has build metadata, as a trailing
// pre-release identifier (".dirty") when v has a pre-release but no build
// metadata, and as "+dirty" on a plain release. It is optional metadata
// the core never consults.
func FormatLanguageVersions(v semver.Version, dirty bool) *LanguageVersions {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)

	preVersion, pythonPreVersion := formatPreRelease(v)
	build := strings.Join(v.Build, ".")

	if dirty {
		switch {
		case build != "":
			build += ".dirty"
		case preVersion != "":
			preVersion += ".dirty"
			pythonPreVersion += "+dirty"
		default:
			preVersion += "+dirty"
			pythonPreVersion += "+dirty"
		}
	}

	semVersion := base + preVersion
	pythonVersion := base + pythonPreVersion
	if build != "" {
		semVersion += "+" + build
		pythonVersion += "+" + build
	}

	return &LanguageVersions{
		SemVer:     semVersion,
		Python:     pythonVersion,
		JavaScript: "v" + semVersion,
		DotNet:     semVersion,
		Go:         "v" + semVersion,
	}
}

// formatPreRelease renders a version's pre-release identifiers into the
// SemVer suffix (e.g. "-alpha.0.5") and a best-effort PEP 440 suffix
// (e.g. "a0.5"). The four identifiers MinVer-style configurations commonly
// use as a leading pre-release token (dev, alpha, beta, rc) map onto
// PEP 440's dev/a/b/rc segments; any other leading token has no general
// PEP 440 equivalent, so it is passed through dot-joined instead.
func formatPreRelease(v semver.Version) (semVerSuffix, pythonSuffix string) {
	if len(v.Pre) == 0 {
		return "", ""
	}

	parts := make([]string, len(v.Pre))
	for i, p := range v.Pre {
		parts[i] = p.String()
	}
	semVerSuffix = "-" + strings.Join(parts, ".")

	prefix, pepPrefix := pep440Prefix(v.Pre[0].VersionStr)
	if !prefix {
		return semVerSuffix, strings.Join(parts, ".")
	}

	rest := "0"
	if len(v.Pre) > 1 {
		tail := make([]string, len(v.Pre)-1)
		for i, p := range v.Pre[1:] {
			tail[i] = p.String()
		}
		rest = strings.Join(tail, ".")
	}
	return semVerSuffix, pepPrefix + rest
}

func pep440Prefix(token string) (known bool, prefix string) {
	switch token {
	case "dev":
		return true, "dev"
	case "alpha":
		return true, "a"
	case "beta":
		return true, "b"
	case "rc":
		return true, "rc"
	default:
		return false, ""
	}
}

// CalculateFromString parses a bare version string (no repository access)
// and renders it through every ecosystem form, the way the CLI's "vers
// <version>" convert mode does.
func CalculateFromString(version string) (*LanguageVersions, error) {
	normalized := strings.TrimPrefix(version, "v")
	v, err := semver.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return FormatLanguageVersions(v, false), nil
}

// FallbackVersion is the placeholder returned by CLI glue when no Git
// repository is reachable at all. The core has no notion of this; it is
// purely a fallback for callers with nothing to walk.
func FallbackVersion() *LanguageVersions {
	return &LanguageVersions{
		SemVer:     "0.0.0-dev",
		Python:     "0.0.0.dev0",
		JavaScript: "v0.0.0-dev",
		DotNet:     "0.0.0-dev",
		Go:         "v0.0.0-dev",
	}
}
