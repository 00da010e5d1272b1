package sshagent

import (
	"context"
	"strings"
	"testing"

	"github.com/chmouel/repoherd/internal/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner replays canned results per command name and records calls.
type fakeRunner struct {
	results map[string]git.Result
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) git.Result {
	f.calls = append(f.calls, args)
	if res, ok := f.results[args[0]]; ok {
		return res
	}
	return git.Result{}
}

const agentOutput = "SSH_AUTH_SOCK=/tmp/ssh-XYZ/agent.123; export SSH_AUTH_SOCK;\n" +
	"SSH_AGENT_PID=123; export SSH_AGENT_PID;\n" +
	"echo Agent pid 123;\n"

func TestParseAgentOutput(t *testing.T) {
	vars := parseAgentOutput(agentOutput)
	assert.Equal(t, "/tmp/ssh-XYZ/agent.123", vars["SSH_AUTH_SOCK"])
	assert.Equal(t, "123", vars["SSH_AGENT_PID"])

	assert.Empty(t, parseAgentOutput("no exports here"))
}

func TestEnsureLoadedWithoutKey(t *testing.T) {
	runner := &fakeRunner{}
	var messages []string
	agent := New("", runner, func(msg, severity string) {
		messages = append(messages, severity+": "+msg)
	})

	err := agent.EnsureLoaded(context.Background())
	require.Error(t, err)
	// No agent process is started when no key is configured.
	assert.Empty(t, runner.calls)
	require.Len(t, messages, 1)
	assert.True(t, strings.HasPrefix(messages[0], "error:"))
}

func TestEnsureLoadedRegistersKey(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	t.Setenv("SSH_AGENT_PID", "")

	runner := &fakeRunner{results: map[string]git.Result{
		"ssh-agent": {Output: agentOutput},
		"ssh-add":   {Output: "Identity added: /keys/id_ed25519\n"},
	}}
	agent := New("/keys/id_ed25519", runner, nil)

	require.NoError(t, agent.EnsureLoaded(context.Background()))

	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"ssh-agent", "-s"}, runner.calls[0])
	assert.Equal(t, []string{"ssh-add", "/keys/id_ed25519"}, runner.calls[1])
}

func TestEnsureLoadedAttemptsOnlyOnce(t *testing.T) {
	runner := &fakeRunner{results: map[string]git.Result{
		"ssh-agent": {Output: "garbage", ExitCode: 1},
	}}
	agent := New("/keys/id_ed25519", runner, nil)

	ctx := context.Background()
	first := agent.EnsureLoaded(ctx)
	require.Error(t, first)
	callsAfterFirst := len(runner.calls)

	second := agent.EnsureLoaded(ctx)
	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, len(runner.calls), "no agent restart on repeat calls")
}

func TestEnsureLoadedSSHAddFailure(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	t.Setenv("SSH_AGENT_PID", "")

	runner := &fakeRunner{results: map[string]git.Result{
		"ssh-agent": {Output: agentOutput},
		"ssh-add":   {Output: "Could not open a connection to your authentication agent.\n", ExitCode: 2},
	}}
	agent := New("/keys/id_ed25519", runner, nil)

	err := agent.EnsureLoaded(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ssh-add")
}
