package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemote(t *testing.T) {
	tests := []struct {
		name  string
		ref   string
		owner string
		repo  string
		err   bool
	}{
		{"shorthand", "golang/go", "golang", "go", false},
		{"shorthand with .git", "golang/go.git", "golang", "go", false},
		{"https", "https://github.com/golang/go", "golang", "go", false},
		{"https with .git", "https://github.com/golang/go.git", "golang", "go", false},
		{"ssh", "git@github.com:golang/go.git", "golang", "go", false},
		{"git protocol", "git://github.com/golang/go", "golang", "go", false},
		{"bare name", "go", "", "", true},
		{"too many segments", "a/b/c", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRemote(tt.ref)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	require.NotNil(t, c)
	assert.NotNil(t, c.client)
	assert.NotNil(t, c.rateLimiter)
}
