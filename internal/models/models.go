// Package models defines the data objects shared across repoherd packages.
package models

// Repo is a discovered git checkout. Repos are rebuilt from the filesystem on
// every run; nothing about them is cached between invocations.
type Repo struct {
	Path    string // absolute path to the checkout top
	RelPath string // path relative to the root directory, for display
}

// Tag classifies the terminal outcome of processing one repository.
type Tag string

// Outcome tags.
const (
	TagOK    Tag = "OK"
	TagSkip  Tag = "SKIP"
	TagForce Tag = "FORCE"
	TagError Tag = "ERROR"
)

// Outcome is the single per-repository result record. Exactly one Outcome is
// produced for every discovered Repo, whatever happens to it.
type Outcome struct {
	Index   int // 1-based position in the discovery order
	Total   int
	RelPath string
	Tag     Tag
	Note    string // short human-readable detail, e.g. "pull" or "uncommitted"
}
