package git

import (
	"context"
	"strings"
)

// UncommittedChanges returns the working-tree modifications relative to
// HEAD, staged and unstaged alike, in the order git emits them.
func (r *Repo) UncommittedChanges(ctx context.Context) ([]FileChange, error) {
	lines, err := r.runner.RunLines(ctx, r.path, "diff", "HEAD", "--name-status")
	if err != nil {
		return nil, err
	}
	return parseNameStatus(lines), nil
}

// parseNameStatus decodes name-status lines into FileChange records.
//
// Each line must split into exactly two tab-separated fields: status and
// path. Anything else is skipped without error, which means rename lines
// that carry both old and new paths (three fields) are dropped rather
// than partially decoded. Callers that care about renames rely on git's
// default two-field form.
func parseNameStatus(lines []string) []FileChange {
	changes := []FileChange{}
	for _, line := range lines {
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			continue
		}
		changes = append(changes, FileChange{Status: parts[0], Path: parts[1]})
	}
	return changes
}
