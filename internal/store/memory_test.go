package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_FetchAll(t *testing.T) {
	m := NewMemory()
	id1 := m.Add("a.pdf", "alpha")
	id2 := m.Add("b.pdf", "beta")

	resumes, err := m.FetchResumes(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, resumes, 2)

	// Insertion order is preserved.
	assert.Equal(t, id1, resumes[0].ID)
	assert.Equal(t, id2, resumes[1].ID)
	assert.Equal(t, "alpha", resumes[0].RawText)
}

func TestMemory_FetchByIDsPreservesRequestOrder(t *testing.T) {
	m := NewMemory()
	id1 := m.Add("a.pdf", "alpha")
	id2 := m.Add("b.pdf", "beta")

	resumes, err := m.FetchResumes(context.Background(), []string{id2, id1})
	require.NoError(t, err)
	require.Len(t, resumes, 2)
	assert.Equal(t, id2, resumes[0].ID)
	assert.Equal(t, id1, resumes[1].ID)
}

func TestMemory_MissingIDsOmitted(t *testing.T) {
	m := NewMemory()
	id1 := m.Add("a.pdf", "alpha")

	resumes, err := m.FetchResumes(context.Background(), []string{"nope", id1, "also-nope"})
	require.NoError(t, err)
	require.Len(t, resumes, 1)
	assert.Equal(t, id1, resumes[0].ID)
}

func TestMemory_AllInvalidIDs(t *testing.T) {
	m := NewMemory()
	m.Add("a.pdf", "alpha")

	resumes, err := m.FetchResumes(context.Background(), []string{"x", "y"})
	require.NoError(t, err)
	assert.Empty(t, resumes)
}
