// Package main is the entry point for the repoherd batch synchronizer.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chmouel/repoherd/internal/buildinfo"
	"github.com/chmouel/repoherd/internal/config"
	"github.com/chmouel/repoherd/internal/git"
	"github.com/chmouel/repoherd/internal/log"
	"github.com/chmouel/repoherd/internal/sshagent"
	syncer "github.com/chmouel/repoherd/internal/sync"
	"github.com/chmouel/repoherd/internal/ui"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// Injected by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

const appDescription = `repoherd keeps a fleet of independent git checkouts up to date.

The binary is expected to live in its own directory directly under the
project root; the search roots are siblings of that directory:

    project-root/
      ├── Extensions/
      ├── Modules/
      └── repoherd/
            ├── repoherd
            └── .env        SSH_KEY=/path/to/private/key

Every checkout found under Extensions/ and Modules/ is classified and
updated according to the selected mode:

    --pull           fetch + fast-forward pull every clean repository;
                     repositories with uncommitted changes are skipped
    --pull --force   stash tracked changes (untracked files stay put),
                     then fetch + pull
    --latest         fetch, switch to the remote's default branch, pull

Each repository reports exactly one result line; a failing repository
never aborts the batch, and the process exits 0 after a full pass.`

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() *urfavecli.App {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	return &urfavecli.App{
		Name:            "repoherd",
		Usage:           "Synchronize a fleet of git checkouts",
		Version:         buildinfo.Describe(),
		Description:     appDescription,
		HideHelpCommand: true,
		Flags:           globalFlags(),
		Action:          runSync,
		OnUsageError: func(c *urfavecli.Context, _ error, _ bool) error {
			// Anything unrecognized shows the help page and exits 0.
			_ = urfavecli.ShowAppHelp(c)
			return nil
		},
	}
}

func runSync(c *urfavecli.Context) error {
	pull := c.Bool("pull")
	latest := c.Bool("latest")
	if !pull && !latest {
		return urfavecli.ShowAppHelp(c)
	}

	if debugLog := c.String("debug-log"); debugLog != "" {
		expanded, err := config.ExpandPath(debugLog)
		if err != nil {
			expanded = debugLog
		}
		if err := log.SetFile(expanded); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", expanded, err)
		}
	} else {
		_ = log.SetFile("")
	}
	defer func() { _ = log.Close() }()

	layout, err := config.ResolveLayout(c.String("root"), c.String("config-file"))
	if err != nil {
		return err
	}
	log.Printf("layout: root=%s env=%s", layout.Root, layout.EnvFile)

	colored := !c.Bool("no-color") && term.IsTerminal(int(os.Stdout.Fd()))
	printer := ui.NewPrinter(os.Stdout, colored)

	env, err := config.LoadEnv(layout.EnvFile)
	if err != nil {
		// A broken .env only matters once a credential is needed.
		printer.Notify(fmt.Sprintf("Could not read %s: %v", layout.EnvFile, err), "error")
		env = config.Env{}
	}

	runner := git.NewExecRunner()
	agent := sshagent.New(env.Get(config.EnvKeySSHKey), runner, printer.Notify)

	opts := selectOptions(pull, latest, c.Bool("force"))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := git.Discover(layout.SearchDirs, layout.Root)
	printer.Header(len(repos))

	engine := syncer.New(runner, agent, opts, printer.Outcome)
	engine.Run(ctx, repos)

	// Exit 0 even when individual repositories failed: the outcome lines
	// are the report, the exit status is not.
	return nil
}

// selectOptions maps the mode flags to engine options. --pull wins when both
// modes are given, and --latest never forces.
func selectOptions(pull, latest, force bool) syncer.Options {
	if pull {
		return syncer.Options{Force: force}
	}
	if latest {
		return syncer.Options{Latest: true}
	}
	return syncer.Options{}
}
