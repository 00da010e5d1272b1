// Package main provides CLI flag definitions for repoherd.
package main

import (
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all flags for the application.
// Note: --version and --help are provided automatically by urfave/cli.
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.BoolFlag{
			Name:  "pull",
			Usage: "Fetch and fast-forward pull every clean repository",
		},
		&urfavecli.BoolFlag{
			Name:  "latest",
			Usage: "Fetch, switch to the remote's default branch, then pull",
		},
		&urfavecli.BoolFlag{
			Name:  "force",
			Usage: "With --pull: stash tracked changes in dirty repositories instead of skipping them",
		},
		&urfavecli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "Override the project root directory (default: parent of the binary's directory)",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to the .env configuration file",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}
}
