package git

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chmouel/repoherd/internal/log"
	"github.com/chmouel/repoherd/internal/models"
)

// Discover walks the given search roots and returns every directory that
// directly contains a .git metadata directory, in the deterministic
// lexicographic order of filepath.WalkDir. The walk keeps descending into a
// checkout's subdirectories, so nested checkouts are found too; only the
// .git directory itself is not entered. Roots that do not exist are silently
// skipped. The list is fully materialized before any repository is touched
// so the total is known up front.
func Discover(roots []string, base string) []models.Repo {
	var repos []models.Repo

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			log.Printf("discover: skipping root %s (%v)", root, err)
			continue
		}

		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are not fatal to the walk.
				log.Printf("discover: %s: %v", path, err)
				return nil
			}
			if !d.IsDir() || d.Name() != ".git" {
				return nil
			}
			repoPath := filepath.Dir(path)
			repos = append(repos, models.Repo{
				Path:    repoPath,
				RelPath: relDisplayPath(base, repoPath),
			})
			return filepath.SkipDir
		})
	}

	log.Printf("discover: found %d repositories under %d roots", len(repos), len(roots))
	return repos
}

func relDisplayPath(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
