package vers

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// repoHandle builds small, fully-controlled commit graphs directly at the
// object level (rather than through Worktree checkouts) so tests can
// construct merges and diverging branches deterministically. File content
// is irrelevant to the core's algorithm, so every commit shares one empty
// tree; only the commit graph and tag placement matter.
type repoHandle struct {
	t    *testing.T
	repo *git.Repository
	tree plumbing.Hash
}

func newTestRepo(t *testing.T) *repoHandle {
	t.Helper()
	storage := memory.NewStorage()
	repo, err := git.Init(storage, nil)
	require.NoError(t, err)

	r := &repoHandle{t: t, repo: repo}
	r.tree = r.emptyTree()
	return r
}

func (r *repoHandle) emptyTree() plumbing.Hash {
	r.t.Helper()
	tree := &object.Tree{}
	obj := r.repo.Storer.NewEncodedObject()
	require.NoError(r.t, tree.Encode(obj))
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	require.NoError(r.t, err)
	return hash
}

func (r *repoHandle) newCommit(message string, parents []plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	commit := &object.Commit{
		Author:       *testSignature,
		Committer:    *testSignature,
		Message:      message,
		TreeHash:     r.tree,
		ParentHashes: parents,
	}
	obj := r.repo.Storer.NewEncodedObject()
	require.NoError(r.t, commit.Encode(obj))
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	require.NoError(r.t, err)
	return hash
}

func (r *repoHandle) setHead(hash plumbing.Hash) {
	r.t.Helper()
	require.NoError(r.t, r.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, hash)))
}

// commit appends a commit onto the current HEAD and advances HEAD to it.
func (r *repoHandle) commit(message string) plumbing.Hash {
	r.t.Helper()
	var parents []plumbing.Hash
	if head, err := r.repo.Head(); err == nil {
		parents = []plumbing.Hash{head.Hash()}
	}
	hash := r.newCommit(message, parents)
	r.setHead(hash)
	return hash
}

// commitOn creates a commit parented on base without moving HEAD, for
// building a sibling branch alongside the current line of history.
func (r *repoHandle) commitOn(base plumbing.Hash, message string) plumbing.Hash {
	r.t.Helper()
	return r.newCommit(message, []plumbing.Hash{base})
}

// merge creates a commit with first and second as parents, in that order
// (first-parent preference), and advances HEAD to it.
func (r *repoHandle) merge(message string, first, second plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	hash := r.newCommit(message, []plumbing.Hash{first, second})
	r.setHead(hash)
	return hash
}

// tag creates a lightweight tag at the current HEAD.
func (r *repoHandle) tag(name string) plumbing.Hash {
	r.t.Helper()
	head, err := r.repo.Head()
	require.NoError(r.t, err)
	return r.tagAt(name, head.Hash())
}

// tagAt creates a lightweight tag at an arbitrary commit.
func (r *repoHandle) tagAt(name string, commit plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, commit, nil)
	require.NoError(r.t, err)
	return commit
}

// adapter builds the Repository implementation the core consumes,
// resolving "HEAD" the way Calculate does by default.
func (r *repoHandle) adapter(t *testing.T) Repository {
	t.Helper()
	a, err := newGoGitRepository(r.repo, plumbing.Revision("HEAD"))
	require.NoError(t, err)
	return a
}

// annotatedTagAt creates an annotated tag object pointing at commit.
func (r *repoHandle) annotatedTagAt(name, message string, commit plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, commit, &git.CreateTagOptions{
		Tagger:  testSignature,
		Message: message,
	})
	require.NoError(r.t, err)
}
