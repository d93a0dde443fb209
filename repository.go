// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// OpenRepository opens a Git repository at the specified path.
func OpenRepository(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// Repository is the narrow read-only capability bundle the core requires
// to walk and index a commit graph. goGitRepository is the only
// implementation, backed directly by go-git.
type Repository interface {
	// ResolveHead returns the commit the calculation treats as HEAD.
	ResolveHead() (plumbing.Hash, error)

	// TagRefs returns every reference under the tag namespace, unfiltered.
	TagRefs() ([]TagRef, error)

	// PeelToCommit resolves a (possibly nested) tag object to the commit
	// it ultimately targets. ok is false if the chain terminates at a
	// non-commit object.
	PeelToCommit(id plumbing.Hash) (commit plumbing.Hash, ok bool, err error)

	// Parents returns a commit's parents in recorded order (first parent
	// first).
	Parents(commit plumbing.Hash) ([]plumbing.Hash, error)

	// IsShallowBoundary reports whether a commit's parent edges are
	// absent because of a shallow clone.
	IsShallowBoundary(commit plumbing.Hash) (bool, error)
}

// TagRef is a single reference under the tag namespace.
type TagRef struct {
	// Name is the full reference name, e.g. "refs/tags/v1.2.3".
	Name string

	// Target is the object the reference points at directly: the tag
	// object for an annotated tag, or the commit for a lightweight tag.
	Target plumbing.Hash
}

// goGitRepository adapts *git.Repository to the Repository interface.
type goGitRepository struct {
	repo     *git.Repository
	revision plumbing.Revision
	shallow  map[plumbing.Hash]bool
}

// newGoGitRepository builds an adapter for repo, resolving "revision" as
// the HEAD commit. The shallow-commit set is read once up front since it
// rarely changes mid-walk and go-git exposes it cheaply.
func newGoGitRepository(repo *git.Repository, revision plumbing.Revision) (*goGitRepository, error) {
	shallow := map[plumbing.Hash]bool{}
	if ss, ok := repo.Storer.(storer.ShallowStorer); ok {
		hashes, err := ss.Shallow()
		if err != nil {
			return nil, fmt.Errorf("%w: reading shallow boundary: %v", ErrRepositoryRead, err)
		}
		for _, h := range hashes {
			shallow[h] = true
		}
	}
	return &goGitRepository{repo: repo, revision: revision, shallow: shallow}, nil
}

func (g *goGitRepository) ResolveHead() (plumbing.Hash, error) {
	hash, err := g.repo.ResolveRevision(g.revision)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return *hash, nil
}

func (g *goGitRepository) TagRefs() ([]TagRef, error) {
	iter, err := g.repo.Tags()
	if err != nil {
		return nil, err
	}

	var refs []TagRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		refs = append(refs, TagRef{Name: ref.Name().String(), Target: ref.Hash()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// maxTagPeelDepth bounds the annotated-tag peel chain; real repositories
// never nest tags this deep, this just guards against a corrupt object
// graph that references itself.
const maxTagPeelDepth = 10

func (g *goGitRepository) PeelToCommit(id plumbing.Hash) (plumbing.Hash, bool, error) {
	current := id
	for i := 0; i < maxTagPeelDepth; i++ {
		obj, err := g.repo.Object(plumbing.AnyObject, current)
		if err != nil {
			return plumbing.ZeroHash, false, err
		}
		switch o := obj.(type) {
		case *object.Commit:
			return o.Hash, true, nil
		case *object.Tag:
			current = o.Target
		default:
			return plumbing.ZeroHash, false, nil
		}
	}
	// A chain this deep never resolved to a commit; treat it the same as
	// a tag pointing at a non-commit object rather than failing the
	// whole calculation over one malformed tag.
	return plumbing.ZeroHash, false, nil
}

func (g *goGitRepository) Parents(commit plumbing.Hash) ([]plumbing.Hash, error) {
	c, err := g.repo.CommitObject(commit)
	if err != nil {
		return nil, err
	}
	return c.ParentHashes, nil
}

func (g *goGitRepository) IsShallowBoundary(commit plumbing.Hash) (bool, error) {
	return g.shallow[commit], nil
}
