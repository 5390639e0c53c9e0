package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListRuns(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveRun(Run{
			ID:          string(rune('a' + i)),
			Repo:        "/tmp/demo",
			GeneratedAt: base.Add(time.Duration(i) * time.Minute),
			Files:       10 + i,
			Tokens:      1000 * (i + 1),
		}))
	}

	runs, err := s.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "a", runs[2].ID)
	assert.Equal(t, 3000, runs[0].Tokens)
	assert.True(t, runs[0].GeneratedAt.Equal(base.Add(2*time.Minute)))
}

func TestListRunsLimit(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveRun(Run{ID: "r", GeneratedAt: base.Add(time.Duration(i) * time.Second)}))
	}

	runs, err := s.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListRunsEmpty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
