// Package gitops keeps a spendtrack workspace under version control so
// archived imports and run logs have history.
package gitops

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author is recorded on commits made by spendtrack itself.
const Author = "spendtrack <spendtrack@localhost>"

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := git(dir, "init", "--quiet"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Clean reports whether the work tree at dir has nothing to commit.
func Clean(dir string) (bool, error) {
	out, err := git(dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return out == "", nil
}

// CommitAll stages every change under dir and commits it as Author.
// It returns the short hash of the new commit, or "" when there was nothing
// to commit.
func CommitAll(dir, message string) (string, error) {
	if _, err := git(dir, "add", "-A"); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}

	clean, err := Clean(dir)
	if err != nil {
		return "", err
	}
	if clean {
		return "", nil
	}

	// Identity is passed explicitly so commits work without a global git config.
	name, email := splitAuthor(Author)
	if _, err := git(dir,
		"-c", "user.name="+name, "-c", "user.email="+email,
		"commit", "--quiet", "-m", message, "--author", Author,
	); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}

	hash, err := git(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return hash, nil
}

func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w", msg, err)
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func splitAuthor(author string) (name, email string) {
	name, email, _ = strings.Cut(author, " <")
	return name, strings.TrimSuffix(email, ">")
}
