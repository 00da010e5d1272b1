package git

import "strings"

// WorkingTreeState is the per-run classification of a checkout.
type WorkingTreeState int

// Working tree states.
const (
	StateClean WorkingTreeState = iota
	StateDirty
)

func (s WorkingTreeState) String() string {
	if s == StateDirty {
		return "dirty"
	}
	return "clean"
}

// ClassifyStatus derives the working tree state from `git status --porcelain`
// output. Untracked entries ("??") do not count; any other non-empty status
// line means a real, tracked modification exists. An empty listing is clean.
func ClassifyStatus(output string) WorkingTreeState {
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" || strings.HasPrefix(line, "??") {
			continue
		}
		return StateDirty
	}
	return StateClean
}

// DefaultBranchFromRemoteInfo extracts the remote's advertised HEAD branch
// from `git remote show origin` output. Returns "" when no HEAD branch line
// is present (detached remotes, unreachable origin).
func DefaultBranchFromRemoteInfo(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "HEAD branch") {
			continue
		}
		if _, after, ok := strings.Cut(line, ":"); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}
