package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	paths := []string{
		"cmd/tool/main.go",
		"internal/git/runner.go",
		"internal/git/types.go",
		"README.md",
	}

	want := `repo/
├── cmd/
│   └── tool/
│       └── main.go
├── internal/
│   └── git/
│       ├── runner.go
│       └── types.go
└── README.md
`
	assert.Equal(t, want, renderTree("repo", paths))
}

func TestRenderTreeDirectoriesBeforeFiles(t *testing.T) {
	got := renderTree("r", []string{"zz.txt", "aa/b.txt"})

	want := `r/
├── aa/
│   └── b.txt
└── zz.txt
`
	assert.Equal(t, want, got)
}

func TestRenderTreeEmpty(t *testing.T) {
	assert.Equal(t, "r/\n", renderTree("r", nil))
}
