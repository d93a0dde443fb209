// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/go-git/go-git/v5/plumbing"
)

// TaggedVersion is a parsed version together with the full tag name it
// came from, so equal-precedence ties can be broken deterministically.
type TaggedVersion struct {
	Version semver.Version
	Tag     string
}

// TagIndex maps a commit to the versions tagged on it, highest precedence
// first.
type TagIndex struct {
	byCommit map[plumbing.Hash][]TaggedVersion
}

// BuildTagIndex enumerates every tag reference, strips prefix, parses the
// remainder as strict SemVer 2.0.0, peels to a commit, and indexes the
// result. Unparseable tags and tags pointing to non-commit objects are
// reported as warnings and skipped, never fatal.
func BuildTagIndex(repo Repository, prefix string, diag *Diagnostics) (*TagIndex, error) {
	refs, err := repo.TagRefs()
	if err != nil {
		return nil, fmt.Errorf("%w: listing tag references: %v", ErrRepositoryRead, err)
	}

	idx := &TagIndex{byCommit: make(map[plumbing.Hash][]TaggedVersion)}

	for _, ref := range refs {
		short := shortTagName(ref.Name)
		if !strings.HasPrefix(short, prefix) {
			continue
		}
		remainder := strings.TrimPrefix(short, prefix)

		v, err := semver.Parse(remainder)
		if err != nil {
			diag.warn(WarningUnparseableTag, fmt.Sprintf("tag %q: %v", short, err))
			continue
		}

		commit, ok, err := repo.PeelToCommit(ref.Target)
		if err != nil {
			return nil, fmt.Errorf("%w: peeling tag %q: %v", ErrRepositoryRead, short, err)
		}
		if !ok {
			diag.warn(WarningTagPointsToNonCommit, short)
			continue
		}

		idx.insert(commit, TaggedVersion{Version: v, Tag: short})
	}

	return idx, nil
}

func shortTagName(fullName string) string {
	return strings.TrimPrefix(fullName, "refs/tags/")
}

// insert adds tv to the commit's entry, collapsing exact duplicates and
// keeping the slice sorted by SemVer precedence descending, with ties
// broken by the lexicographically larger tag string.
func (idx *TagIndex) insert(commit plumbing.Hash, tv TaggedVersion) {
	list := idx.byCommit[commit]
	for i, existing := range list {
		if existing.Version.Compare(tv.Version) == 0 {
			if tv.Tag > existing.Tag {
				list[i] = tv
			}
			return
		}
	}

	list = append(list, tv)
	sort.Slice(list, func(i, j int) bool {
		if c := list[i].Version.Compare(list[j].Version); c != 0 {
			return c > 0
		}
		return list[i].Tag > list[j].Tag
	})
	idx.byCommit[commit] = list
}

// Best returns the highest-precedence version tagged on commit, if any.
func (idx *TagIndex) Best(commit plumbing.Hash) (TaggedVersion, bool) {
	list, ok := idx.byCommit[commit]
	if !ok || len(list) == 0 {
		return TaggedVersion{}, false
	}
	return list[0], true
}
