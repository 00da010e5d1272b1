package git

import "context"

// StashMessage labels the stash entries created by forced syncs so they can
// be found again with `git stash list`.
const StashMessage = "auto-stash via repoherd --force"

// The sync operations below keep the exact git flags in one place: prune on
// fetch, fast-forward-only on pull, and a stash that leaves untracked files
// on disk (no -u).

// Status captures the short-format working tree status.
func Status(ctx context.Context, r Runner, repo string) Result {
	return r.Run(ctx, repo, "git", "status", "--porcelain")
}

// Fetch updates all remotes, pruning stale remote-tracking refs.
func Fetch(ctx context.Context, r Runner, repo string) Result {
	return r.Run(ctx, repo, "git", "fetch", "--all", "--prune")
}

// Pull advances the current branch, refusing to create merge commits.
func Pull(ctx context.Context, r Runner, repo string) Result {
	return r.Run(ctx, repo, "git", "pull", "--ff-only")
}

// Checkout switches the working tree to the named branch.
func Checkout(ctx context.Context, r Runner, repo, branch string) Result {
	return r.Run(ctx, repo, "git", "checkout", branch)
}

// Stash sets tracked modifications aside. Untracked files are deliberately
// excluded so a forced sync never touches them.
func Stash(ctx context.Context, r Runner, repo string) Result {
	return r.Run(ctx, repo, "git", "stash", "push", "-m", StashMessage)
}

// RemoteInfo captures the remote introspection output used to detect the
// default branch.
func RemoteInfo(ctx context.Context, r Runner, repo string) Result {
	return r.Run(ctx, repo, "git", "remote", "show", "origin")
}
