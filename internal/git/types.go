package git

// FileChange is one changed path as reported by git's name-status mode.
type FileChange struct {
	// Status is the leading token up to the first tab: one of
	// M, A, D, R, C, T, U, X, B, with rename/copy variants carrying a
	// similarity suffix (e.g. "R100"). The similarity score is not
	// parsed out separately.
	Status string `json:"status"`
	// Path is repository-relative. For renames this is the second
	// tab-separated field of the raw line.
	Path string `json:"path"`
}

// Commit is one historical commit, fully resolved: the log metadata plus
// the per-commit file list and optional shortstat summary, each obtained
// by an independent follow-up query.
type Commit struct {
	Hash      string `json:"hash"`
	ShortHash string `json:"short_hash"`
	Author    string `json:"author"`
	Email     string `json:"email"`
	// Date is the ISO-8601-with-offset string exactly as git's %ai
	// format emits it.
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	// Files reflects the changes introduced by Hash relative to its
	// first parent, re-queried per commit rather than derived from the
	// log line.
	Files []FileChange `json:"files"`
	// Stats is git's human-readable shortstat summary, or "" when stats
	// were not requested or the stat query failed.
	Stats string `json:"stats"`
}
