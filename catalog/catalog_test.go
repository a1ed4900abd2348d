package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	track, ok := Find("go")
	require.True(t, ok)
	assert.Equal(t, "Go", track.Name)
	assert.Contains(t, track.Topics, "Goroutines")

	_, ok = Find("cobol")
	assert.False(t, ok)
}

func TestFindNormalizesInput(t *testing.T) {
	track, ok := Find("  RuST ")
	require.True(t, ok)
	assert.Equal(t, "rust", track.Slug)
}

func TestSlugsUniqueAndComplete(t *testing.T) {
	slugs := Slugs()
	require.Len(t, slugs, len(Tracks))
	seen := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "duplicate slug %q", s)
		seen[s] = true
	}
}

func TestEveryTrackHasTopics(t *testing.T) {
	for _, track := range Tracks {
		assert.NotEmpty(t, track.Topics, "track %s has no topics", track.Name)
	}
}
