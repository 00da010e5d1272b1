// Package config loads the repoherd environment file and resolves the
// directory layout anchored on the executable's location.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Env is the immutable key/value mapping loaded from the .env file. A missing
// key is a valid state; callers decide when absence becomes an error.
type Env map[string]string

// Get returns the value for key, or "" when unset.
func (e Env) Get(key string) string {
	if e == nil {
		return ""
	}
	return e[key]
}

// EnvKeySSHKey is the recognized configuration key naming the private SSH key
// registered with the agent on permission failures.
const EnvKeySSHKey = "SSH_KEY"

// Names of the search directories expected as siblings of the tool directory.
var searchDirNames = []string{"Extensions", "Modules"}

// Layout describes where repoherd looks for its configuration and its
// repositories. The tool directory (holding the binary and its .env) sits
// directly under the root; the search roots are siblings of the tool
// directory.
type Layout struct {
	Root       string   // parent of the tool directory
	SearchDirs []string // <root>/Extensions, <root>/Modules
	EnvFile    string   // <tooldir>/.env
}

// ResolveLayout computes the layout from the running executable's location.
// rootOverride, when non-empty, replaces the computed root (the .env file is
// still looked up next to the executable unless envFileOverride is set).
func ResolveLayout(rootOverride, envFileOverride string) (Layout, error) {
	exe, err := os.Executable()
	if err != nil {
		return Layout{}, fmt.Errorf("locate executable: %w", err)
	}
	toolDir := filepath.Dir(exe)

	root := filepath.Dir(toolDir)
	if rootOverride != "" {
		expanded, err := ExpandPath(rootOverride)
		if err != nil {
			return Layout{}, fmt.Errorf("expand root override: %w", err)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return Layout{}, fmt.Errorf("resolve root override: %w", err)
		}
		root = abs
	}

	envFile := filepath.Join(toolDir, ".env")
	if envFileOverride != "" {
		expanded, err := ExpandPath(envFileOverride)
		if err != nil {
			return Layout{}, fmt.Errorf("expand config file: %w", err)
		}
		envFile = expanded
	}

	return NewLayout(root, envFile), nil
}

// NewLayout builds a Layout for an explicit root, deriving the search
// directories from it.
func NewLayout(root, envFile string) Layout {
	dirs := make([]string, 0, len(searchDirNames))
	for _, name := range searchDirNames {
		dirs = append(dirs, filepath.Join(root, name))
	}
	return Layout{Root: root, SearchDirs: dirs, EnvFile: envFile}
}

// LoadEnv reads a flat KEY=VALUE file. Empty lines, #-comments and lines
// without '=' are skipped; keys and values are trimmed and values get home
// directory and environment expansion. A missing file yields an empty Env,
// not an error.
func LoadEnv(path string) (Env, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return Env{}, nil
		}
		return nil, fmt.Errorf("open env file: %w", err)
	}
	defer func() { _ = f.Close() }()

	env := Env{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "=") {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if expanded, err := ExpandPath(value); err == nil {
			value = expanded
		}
		env[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	return env, nil
}

// ExpandPath expands a leading ~ to the home directory and any $VAR
// references in the path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
