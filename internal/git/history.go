package git

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// commitSentinel terminates each commit's metadata in the log format.
// Subjects and bodies are free-form and may contain newlines and the
// field delimiter, so a line-oriented format alone cannot bound a
// record; the sentinel is assumed not to appear verbatim in real commit
// text.
const commitSentinel = "|END_COMMIT"

// logFormat emits hash|shortHash|author|email|date|subject|body followed
// by the sentinel. %ai is ISO-8601 with offset.
const logFormat = "%H|%h|%an|%ae|%ai|%s|%b" + commitSentinel

// commitHeader is the decoded first section of a commit block, before
// the per-commit file and stat queries run.
type commitHeader struct {
	hash      string
	shortHash string
	author    string
	email     string
	date      string
	subject   string
	body      string
}

// Commits returns the last count commits, most-recent-first, each fully
// resolved: metadata from one log query, the file list from a name-status
// query per commit, and, when includeStats is set, a shortstat summary
// per commit. Stat queries are best-effort and degrade to an empty
// string; everything else propagates the ToolError unchanged.
func (r *Repo) Commits(ctx context.Context, count int, includeStats bool) ([]Commit, error) {
	out, err := r.runner.Run(ctx, r.path, "log", "-n", strconv.Itoa(count), "--pretty=format:"+logFormat)
	if err != nil {
		return nil, err
	}

	headers := parseCommitBlocks(out)
	if r.Workers > 1 {
		return r.resolveConcurrent(ctx, headers, includeStats)
	}
	return r.resolveSequential(ctx, headers, includeStats)
}

func (r *Repo) resolveSequential(ctx context.Context, headers []commitHeader, includeStats bool) ([]Commit, error) {
	commits := make([]Commit, len(headers))
	for i, h := range headers {
		c, err := r.resolveCommit(ctx, h, includeStats)
		if err != nil {
			return nil, err
		}
		commits[i] = c
	}
	return commits, nil
}

// resolveConcurrent runs the per-commit follow-up queries through a
// bounded worker pool. Results are written by index, so output order
// matches the log order regardless of completion order.
func (r *Repo) resolveConcurrent(ctx context.Context, headers []commitHeader, includeStats bool) ([]Commit, error) {
	commits := make([]Commit, len(headers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for i, h := range headers {
		i, h := i, h
		g.Go(func() error {
			c, err := r.resolveCommit(ctx, h, includeStats)
			if err != nil {
				return err
			}
			commits[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return commits, nil
}

// resolveCommit populates one commit's file list and optional stats from
// the header. The name-status query shows the commit's diff against its
// first parent; an empty result (e.g. an empty merge commit) is a valid
// commit with no files, not an error.
func (r *Repo) resolveCommit(ctx context.Context, h commitHeader, includeStats bool) (Commit, error) {
	lines, err := r.runner.RunLines(ctx, r.path, "show", "--name-status", "--pretty=format:", h.hash)
	if err != nil {
		return Commit{}, err
	}

	commit := Commit{
		Hash:      h.hash,
		ShortHash: h.shortHash,
		Author:    h.author,
		Email:     h.email,
		Date:      h.date,
		Subject:   h.subject,
		Body:      h.body,
		Files:     parseNameStatus(lines),
	}

	if includeStats {
		// Best-effort: a failed stat query must never abort history
		// collection for an otherwise-valid commit.
		if stats, err := r.runner.Run(ctx, r.path, "show", "--shortstat", "--pretty=format:", h.hash); err == nil {
			commit.Stats = strings.TrimSpace(stats)
		}
	}

	return commit, nil
}

// parseCommitBlocks splits raw log output on the sentinel and decodes
// each block's first line into a commit header. Malformed blocks (fewer
// than six pipe-delimited fields) are skipped silently: one unreadable
// record should not abort an otherwise-successful history request.
func parseCommitBlocks(out string) []commitHeader {
	var headers []commitHeader
	for _, block := range strings.Split(out, commitSentinel) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if h, ok := parseCommitHeader(block); ok {
			headers = append(headers, h)
		}
	}
	return headers
}

// parseCommitHeader decodes one commit block.
//
// The first line carries all seven fields; a body is not given its own
// uniquely delimited line, so a body containing '|' shows up as extra
// fields and is reconstituted by rejoining everything past the subject.
// A body with embedded newlines loses its continuation lines, because
// only the first line of the block is field-addressable. That lossiness
// is long-standing behavior, pinned by tests.
func parseCommitHeader(block string) (commitHeader, bool) {
	firstLine, _, _ := strings.Cut(block, "\n")
	fields := strings.Split(firstLine, "|")
	if len(fields) < 6 {
		return commitHeader{}, false
	}

	h := commitHeader{
		hash:      fields[0],
		shortHash: fields[1],
		author:    fields[2],
		email:     fields[3],
		date:      fields[4],
		subject:   fields[5],
	}
	if len(fields) > 6 {
		h.body = strings.TrimSpace(strings.Join(fields[6:], "|"))
	}
	return h, true
}
