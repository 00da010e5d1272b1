// Package git wraps the external git tool and the repository discovery and
// classification helpers built on top of it.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chmouel/repoherd/internal/log"
)

// Result carries the captured text of one external command. Output merges
// stdout and stderr, matching what an operator would see in a terminal.
//
// Failure is primarily detected by sniffing Output for the markers git
// prints ("error", "fatal", "Permission denied"); the decision tree in the
// sync engine depends on those substrings. ExitCode is recorded as the
// stronger signal for the few places that need it.
type Result struct {
	Output   string
	ExitCode int // -1 when the command could not be started at all
}

// Failed reports whether the output carries a git failure marker
// (case-insensitive "error" or "fatal").
func (r Result) Failed() bool {
	out := strings.ToLower(r.Output)
	return strings.Contains(out, "error") || strings.Contains(out, "fatal")
}

// PermissionDenied reports whether the output carries the SSH permission
// failure marker.
func (r Result) PermissionDenied() bool {
	return strings.Contains(r.Output, "Permission denied")
}

// Runner executes an external command in a working directory and captures
// its combined output. Run never reports failure through an error value;
// callers inspect the Result.
type Runner interface {
	Run(ctx context.Context, cwd string, args ...string) Result
}

// ExecRunner is the os/exec backed Runner used outside of tests.
type ExecRunner struct{}

// NewExecRunner returns a Runner invoking commands directly, without a shell.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func prepareAllowedCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command provided")
	}

	switch args[0] {
	case "git":
		// #nosec G204 -- git arguments come from internal logic and are not shell interpolated
		return exec.CommandContext(ctx, "git", args[1:]...), nil
	case "ssh-agent", "ssh-add":
		// #nosec G204 -- agent commands take only the configured key path as argument
		return exec.CommandContext(ctx, args[0], args[1:]...), nil
	default:
		return nil, fmt.Errorf("unsupported command %q", args[0])
	}
}

// Run executes the command with stdout and stderr merged into one stream.
func (e *ExecRunner) Run(ctx context.Context, cwd string, args ...string) Result {
	command := strings.Join(args, " ")
	log.Printf("run: %s (cwd=%s)", command, cwd)

	cmd, err := prepareAllowedCommand(ctx, args)
	if err != nil {
		log.Printf("error: %s (%v)", command, err)
		return Result{Output: err.Error(), ExitCode: -1}
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.CombinedOutput()
	result := Result{Output: string(output)}
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitError.ExitCode()
			log.Printf("exit %d: %s", result.ExitCode, command)
		} else {
			// The command never started (binary missing, bad cwd).
			// Surface the reason in the captured text so the usual
			// substring checks still see a failure.
			result.ExitCode = -1
			if result.Output == "" {
				result.Output = fmt.Sprintf("error: %v", err)
			}
			log.Printf("error: %s (%v)", command, err)
		}
		return result
	}

	log.Printf("ok: %s", command)
	return result
}
