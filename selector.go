// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import "github.com/blang/semver"

// Source distinguishes a BaseDecision grounded in a reachable tag from one
// that fell back to the implicit repository root.
type Source int

const (
	SourceTag Source = iota
	SourceRoot
)

func (s Source) String() string {
	if s == SourceRoot {
		return "root"
	}
	return "tag"
}

// BaseDecision is the winning base version, the height at which it was
// found, and whether any tag was found at all.
type BaseDecision struct {
	Base    semver.Version
	Height  uint64
	Source  Source
	Shallow bool
}

// SelectBase drives walker to completion (or until a definitive answer is
// found) against idx, evaluating one BFS level boundary at a time: once a
// candidate has been found at some depth d, sibling commits at the same
// depth d are still examined (to break ties by precedence), and the first
// step pulled past depth d ends the walk without being examined.
func SelectBase(walker *HistoryWalker, idx *TagIndex, diag *Diagnostics) (BaseDecision, error) {
	var (
		haveCandidate  bool
		candidateDepth uint64
		candidate      TaggedVersion
		maxDepth       uint64
		sawAny         bool
	)

	for {
		step, ok, err := walker.Next()
		if err != nil {
			return BaseDecision{}, err
		}
		if !ok {
			break
		}
		sawAny = true
		maxDepth = step.Depth

		if haveCandidate && step.Depth > candidateDepth {
			break
		}

		if tv, found := idx.Best(step.Commit); found {
			if !haveCandidate || tv.Version.Compare(candidate.Version) > 0 {
				candidate = tv
				candidateDepth = step.Depth
				haveCandidate = true
			}
		}
	}

	shallow := walker.Shallow()
	if shallow {
		diag.warn(WarningShallowHistory, "history walk ended at a shallow boundary; height may be truncated")
	}

	if !haveCandidate {
		height := uint64(0)
		if sawAny {
			height = maxDepth
		}
		return BaseDecision{Base: semver.Version{}, Height: height, Source: SourceRoot, Shallow: shallow}, nil
	}

	return BaseDecision{Base: candidate.Version, Height: candidateDepth, Source: SourceTag, Shallow: shallow}, nil
}
