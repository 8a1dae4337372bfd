package gitx

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Available reports whether a git executable can be found on PATH.
func Available() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git executable not found: %w", err)
	}
	return nil
}

// RepoRoot resolves the repository top level containing path.
func RepoRoot(path string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = filepath.Dir(path)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git repository not detected: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// RelPath returns path relative to the repository root, the form git
// expects in `show <rev>:<path>` invocations.
func RelPath(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// IsTracked reports whether rel is known to the repository at root.
func IsTracked(root, rel string) error {
	cmd := exec.Command("git", "-C", root, "ls-files", "--error-unmatch", "--", rel)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s is not tracked by git", rel)
	}
	return nil
}
