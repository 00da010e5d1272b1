// Package sshagent registers the configured private key with an ssh-agent
// when a fetch runs into a permission failure.
package sshagent

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/chmouel/repoherd/internal/git"
	"github.com/chmouel/repoherd/internal/log"
)

// NotifyFn receives user-facing notifications ("info", "error").
type NotifyFn func(message string, severity string)

// Agent loads an SSH key into a running agent process on demand. Loading is
// attempted at most once per run; the agent process itself is shared by every
// subsequent git invocation through the exported environment.
type Agent struct {
	keyPath   string
	runner    git.Runner
	notify    NotifyFn
	attempted bool
	lastErr   error
}

// New returns an Agent for the configured key path. keyPath may be empty;
// the error is only reported when a load is actually needed.
func New(keyPath string, runner git.Runner, notify NotifyFn) *Agent {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Agent{keyPath: keyPath, runner: runner, notify: notify}
}

var agentVarRe = regexp.MustCompile(`(SSH_AUTH_SOCK|SSH_AGENT_PID)=([^;]+);`)

// parseAgentOutput extracts the environment exports from `ssh-agent -s`
// sh-style output.
func parseAgentOutput(output string) map[string]string {
	vars := map[string]string{}
	for _, m := range agentVarRe.FindAllStringSubmatch(output, -1) {
		vars[m[1]] = strings.TrimSpace(m[2])
	}
	return vars
}

// EnsureLoaded starts an ssh-agent, exports its environment to this process
// and registers the configured key. Repeated calls after the first attempt
// return the first attempt's result without restarting anything; re-adding
// the same key would be harmless but is pointless.
func (a *Agent) EnsureLoaded(ctx context.Context) error {
	if a.attempted {
		return a.lastErr
	}
	a.attempted = true
	a.lastErr = a.load(ctx)
	return a.lastErr
}

func (a *Agent) load(ctx context.Context) error {
	if a.keyPath == "" {
		err := fmt.Errorf("no SSH_KEY configured in the .env file")
		a.notify(err.Error(), "error")
		return err
	}

	a.notify(fmt.Sprintf("Using SSH key: %s", a.keyPath), "info")

	res := a.runner.Run(ctx, "", "ssh-agent", "-s")
	if res.ExitCode != 0 {
		return fmt.Errorf("start ssh-agent: %s", strings.TrimSpace(res.Output))
	}
	vars := parseAgentOutput(res.Output)
	if vars["SSH_AUTH_SOCK"] == "" {
		return fmt.Errorf("could not parse ssh-agent output")
	}
	for key, value := range vars {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("export %s: %w", key, err)
		}
	}
	log.Printf("sshagent: agent started (pid=%s)", vars["SSH_AGENT_PID"])

	add := a.runner.Run(ctx, "", "ssh-add", a.keyPath)
	if add.ExitCode != 0 {
		return fmt.Errorf("ssh-add %s: %s", a.keyPath, strings.TrimSpace(add.Output))
	}
	log.Printf("sshagent: key registered: %s", a.keyPath)
	return nil
}
