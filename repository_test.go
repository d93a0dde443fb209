package vers

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"
)

func TestOpenRepository(t *testing.T) {
	t.Run("valid git repository", func(t *testing.T) {
		dir, err := ioutil.TempDir("", "git-repo")
		require.NoError(t, err)
		defer os.RemoveAll(dir)

		_, err = git.PlainInit(dir, false)
		require.NoError(t, err)

		repo, err := OpenRepository(dir)
		require.NoError(t, err)
		require.NotNil(t, repo)
	})

	t.Run("non-git directory", func(t *testing.T) {
		dir, err := ioutil.TempDir("", "non-git")
		require.NoError(t, err)
		defer os.RemoveAll(dir)

		_, err = OpenRepository(dir)
		require.Error(t, err)
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := OpenRepository("/non/existent/path")
		require.Error(t, err)
	})
}

func TestGoGitRepository_PeelToCommit(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")
	repo.annotatedTagAt("v1.0.0", "release", commit)

	tagRef, err := repo.repo.Tag("v1.0.0")
	require.NoError(t, err)

	adapter := repo.adapter(t)
	resolved, ok, err := adapter.PeelToCommit(tagRef.Hash())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, commit, resolved)
}

func TestGoGitRepository_PeelToCommit_LightweightTagIsAlreadyACommit(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")
	repo.tagAt("v1.0.0", commit)

	adapter := repo.adapter(t)
	resolved, ok, err := adapter.PeelToCommit(commit)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, commit, resolved)
}

func TestGoGitRepository_Parents(t *testing.T) {
	repo := newTestRepo(t)
	base := repo.commit("base")
	a := repo.commitOn(base, "a")
	b := repo.commitOn(base, "b")
	merge := repo.merge("merge", a, b)

	adapter := repo.adapter(t)
	parents, err := adapter.Parents(merge)
	require.NoError(t, err)
	require.Equal(t, []plumbing.Hash{a, b}, parents)
}

func TestGoGitRepository_IsShallowBoundary_FalseWhenNotShallow(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")

	adapter := repo.adapter(t)
	boundary, err := adapter.IsShallowBoundary(commit)
	require.NoError(t, err)
	require.False(t, boundary)
}

func TestGoGitRepository_TagRefs(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")
	repo.tagAt("v1.0.0", commit)
	repo.tagAt("v2.0.0", commit)

	adapter := repo.adapter(t)
	refs, err := adapter.TagRefs()
	require.NoError(t, err)
	require.Len(t, refs, 2)
}
