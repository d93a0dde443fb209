package vers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTagIndex_PrefixFilteringAndParsing(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")
	repo.tagAt("v1.0.0", commit)
	repo.tagAt("sdk/v2.0.0", commit)
	repo.tagAt("vnot-a-version", commit)

	diag := &Diagnostics{}
	idx, err := BuildTagIndex(repo.adapter(t), "v", diag)
	require.NoError(t, err)

	best, ok := idx.Best(commit)
	require.True(t, ok)
	require.Equal(t, "1.0.0", best.Version.String())

	require.NotEmpty(t, diag.Warnings)
}

func TestBuildTagIndex_HighestPrecedenceWins(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")
	repo.tagAt("v1.0.0", commit)
	repo.tagAt("v2.0.0", commit)
	repo.tagAt("v1.5.0", commit)

	diag := &Diagnostics{}
	idx, err := BuildTagIndex(repo.adapter(t), "v", diag)
	require.NoError(t, err)

	best, ok := idx.Best(commit)
	require.True(t, ok)
	require.Equal(t, "2.0.0", best.Version.String())
}

func TestBuildTagIndex_EqualPrecedenceCollapsesToOneEntry(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")
	repo.tagAt("v1.0.0+build1", commit)
	repo.tagAt("v1.0.0+build2", commit)

	diag := &Diagnostics{}
	idx, err := BuildTagIndex(repo.adapter(t), "v", diag)
	require.NoError(t, err)

	best, ok := idx.Best(commit)
	require.True(t, ok)
	require.EqualValues(t, 1, best.Version.Major)
	require.EqualValues(t, 0, best.Version.Minor)
	require.EqualValues(t, 0, best.Version.Patch)
	require.Len(t, idx.byCommit[commit], 1)
	require.Equal(t, "v1.0.0+build2", best.Tag)
}

func TestBuildTagIndex_NoMatchForUntaggedCommit(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")

	diag := &Diagnostics{}
	idx, err := BuildTagIndex(repo.adapter(t), "", diag)
	require.NoError(t, err)

	_, ok := idx.Best(commit)
	require.False(t, ok)
}

func TestBuildTagIndex_AnnotatedTagPeelsToCommit(t *testing.T) {
	repo := newTestRepo(t)
	commit := repo.commit("base")
	repo.annotatedTagAt("v1.0.0", "release", commit)

	diag := &Diagnostics{}
	idx, err := BuildTagIndex(repo.adapter(t), "v", diag)
	require.NoError(t, err)

	best, ok := idx.Best(commit)
	require.True(t, ok)
	require.Equal(t, "1.0.0", best.Version.String())
}

func TestShortTagName(t *testing.T) {
	require.Equal(t, "v1.0.0", shortTagName("refs/tags/v1.0.0"))
	require.Equal(t, "sdk/v1.0.0", shortTagName("refs/tags/sdk/v1.0.0"))
}
