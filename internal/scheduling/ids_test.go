package scheduling

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator_GenerateShape(t *testing.T) {
	var g IDGenerator
	re := regexp.MustCompile(`^bk[0-9a-f]{6}$`)
	for i := 0; i < 50; i++ {
		id := g.Generate("bk")
		assert.Regexp(t, re, id)
	}
}

func TestIDGenerator_ShortRandomChunksAreConcatenated(t *testing.T) {
	g := IDGenerator{SuffixLen: 6, Random: func() string { return "ab" }}
	assert.Equal(t, "bababab", g.Generate("b"))
}

func TestIDGenerator_UniqueRegeneratesOnCollision(t *testing.T) {
	seq := []string{"aaaaaa", "aaaaaa", "bbbbbb"}
	i := 0
	g := IDGenerator{Random: func() string {
		s := seq[i]
		i++
		return s
	}}

	taken := map[string]bool{"baaaaaa": true}
	id, err := g.Unique(context.Background(), "b", func(_ context.Context, id string) (bool, error) {
		return taken[id], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbb", id)
}

func TestIDGenerator_UniqueGivesUp(t *testing.T) {
	g := IDGenerator{Random: func() string { return "zzzzzz" }}
	_, err := g.Unique(context.Background(), "b", func(context.Context, string) (bool, error) {
		return true, nil
	})
	require.Error(t, err)
}

func TestIDGenerator_UniquePropagatesLookupError(t *testing.T) {
	boom := errors.New("boom")
	var g IDGenerator
	_, err := g.Unique(context.Background(), "b", func(context.Context, string) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}
