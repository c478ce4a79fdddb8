package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalyst/internal/domain"
)

func list(values ...string) []domain.Candidate {
	var out []domain.Candidate
	for _, v := range values {
		out = append(out, domain.Candidate{Value: v, SourceName: "test"})
	}
	return out
}

func TestEmptySelection(t *testing.T) {
	s := NewService()

	assert.False(t, s.MovePrevious())
	assert.False(t, s.MoveNext())
	assert.False(t, s.SelectAt(0))
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Index())
}

func TestReplaceResetsIndex(t *testing.T) {
	s := NewService()
	s.Replace(list("a", "b", "c"))
	require.True(t, s.MoveNext())
	require.Equal(t, 1, s.Index())

	s.Replace(list("x", "y"))
	assert.Equal(t, 0, s.Index())
	c, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "x", c.Value)
}

func TestMoveBounds(t *testing.T) {
	s := NewService()
	s.Replace(list("a", "b", "c"))

	assert.False(t, s.MovePrevious(), "previous at index 0 is a no-op")
	assert.Equal(t, 0, s.Index())

	assert.True(t, s.MoveNext())
	assert.True(t, s.MoveNext())
	assert.False(t, s.MoveNext(), "next at the last index is a no-op")
	assert.Equal(t, 2, s.Index())

	assert.True(t, s.MovePrevious())
	assert.Equal(t, 1, s.Index())
}

func TestSelectAt(t *testing.T) {
	s := NewService()
	s.Replace(list("a", "b", "c"))

	assert.True(t, s.SelectAt(2))
	assert.Equal(t, 2, s.Index())

	assert.False(t, s.SelectAt(3))
	assert.False(t, s.SelectAt(-1))
	assert.Equal(t, 2, s.Index())
}

func TestReplaceEmptyIsIdempotent(t *testing.T) {
	s := NewService()
	s.Replace(nil)
	before := *s.state

	s.Replace([]domain.Candidate{})
	assert.Empty(t, s.Candidates())
	assert.Equal(t, before.Index, s.Index())
	assert.Equal(t, 0, s.Len())
}
