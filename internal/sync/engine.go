// Package sync drives the per-repository update loop: classify the working
// tree, pick a policy branch and run the matching git operation sequence.
package sync

import (
	"context"

	"github.com/chmouel/repoherd/internal/git"
	"github.com/chmouel/repoherd/internal/log"
	"github.com/chmouel/repoherd/internal/models"
)

// CredentialLoader loads SSH credentials on demand after a permission
// failure. Implementations must be safe to call repeatedly within a run.
type CredentialLoader interface {
	EnsureLoaded(ctx context.Context) error
}

// Options selects the update policy for a run.
type Options struct {
	// Latest switches clean repositories to their remote's default branch
	// before pulling.
	Latest bool
	// Force stashes tracked modifications in dirty repositories and pulls
	// them instead of skipping.
	Force bool
}

// EmitFn receives each repository's terminal Outcome as soon as it is known.
type EmitFn func(models.Outcome)

// Engine processes discovered repositories strictly sequentially. Each
// repository is fully resolved to exactly one Outcome before the next one is
// touched; no failure inside the loop ever aborts the batch.
type Engine struct {
	runner git.Runner
	agent  CredentialLoader
	opts   Options
	emit   EmitFn
}

// New constructs an Engine.
func New(runner git.Runner, agent CredentialLoader, opts Options, emit EmitFn) *Engine {
	if emit == nil {
		emit = func(models.Outcome) {}
	}
	return &Engine{runner: runner, agent: agent, opts: opts, emit: emit}
}

// Run processes every repository in discovery order. Cancellation is only
// honored between repositories, never mid-repository, so a started
// repository always reports its Outcome.
func (e *Engine) Run(ctx context.Context, repos []models.Repo) {
	total := len(repos)
	for i, repo := range repos {
		if err := ctx.Err(); err != nil {
			log.Printf("sync: stopping after %d/%d repositories (%v)", i, total, err)
			return
		}
		e.emit(e.process(ctx, i+1, total, repo))
	}
}

func (e *Engine) process(ctx context.Context, index, total int, repo models.Repo) models.Outcome {
	outcome := func(tag models.Tag, note string) models.Outcome {
		return models.Outcome{Index: index, Total: total, RelPath: repo.RelPath, Tag: tag, Note: note}
	}

	status := git.Status(ctx, e.runner, repo.Path)
	if status.ExitCode != 0 {
		// The exit code supersedes text sniffing here: a checkout whose
		// status cannot even be read gets an error record instead of
		// being misclassified as dirty.
		return outcome(models.TagError, "status failed")
	}
	state := git.ClassifyStatus(status.Output)
	log.Printf("sync: %s is %s", repo.RelPath, state)

	switch {
	case state == git.StateDirty && e.opts.Force:
		git.Stash(ctx, e.runner, repo.Path)
		e.fetch(ctx, repo.Path)
		git.Pull(ctx, e.runner, repo.Path)
		return outcome(models.TagForce, "stash + pull")

	case state == git.StateDirty:
		return outcome(models.TagSkip, "uncommitted")

	case e.opts.Latest:
		e.fetch(ctx, repo.Path)

		branch := git.DefaultBranchFromRemoteInfo(git.RemoteInfo(ctx, e.runner, repo.Path).Output)
		if branch == "" {
			return outcome(models.TagSkip, "no default branch")
		}
		if git.Checkout(ctx, e.runner, repo.Path, branch).Failed() {
			return outcome(models.TagSkip, "checkout failed")
		}
		if git.Pull(ctx, e.runner, repo.Path).Failed() {
			return outcome(models.TagSkip, "pull failed")
		}
		return outcome(models.TagOK, "latest: "+branch)

	default:
		e.fetch(ctx, repo.Path)
		git.Pull(ctx, e.runner, repo.Path)
		return outcome(models.TagOK, "pull")
	}
}

// fetch runs the fetch and, on a permission failure, loads the SSH key and
// retries exactly once. The retry happens even when the load reports an
// error; the agent may still hold a usable key from an earlier run.
func (e *Engine) fetch(ctx context.Context, repoPath string) git.Result {
	res := git.Fetch(ctx, e.runner, repoPath)
	if !res.PermissionDenied() {
		return res
	}
	if err := e.agent.EnsureLoaded(ctx); err != nil {
		log.Printf("sync: credential load failed: %v", err)
	}
	return git.Fetch(ctx, e.runner, repoPath)
}
