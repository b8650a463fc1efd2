package repo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"snowreport/pkg/errors"
)

// Sync clones the definitions repository into dir, or pulls when a clone
// already exists.
func Sync(gitURL, branch, dir string) error {
	if gitURL == "" {
		return errors.New(errors.ErrCodeDefsNotFound, "No definitions repository configured").
			WithSuggestions("Set reports.git_url in the configuration")
	}
	if branch == "" {
		branch = "main"
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0750); err != nil {
		return errors.Wrap(err, errors.ErrCodeDefsSyncFailed, "Failed to create definitions directory")
	}

	refName := plumbing.NewBranchReferenceName(branch)

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		r, err := git.PlainOpen(dir)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDefsSyncFailed, "Failed to open existing definitions clone")
		}

		wt, err := r.Worktree()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDefsSyncFailed, "Failed to open worktree")
		}

		err = wt.Pull(&git.PullOptions{
			RemoteName:    "origin",
			ReferenceName: refName,
			Auth:          authMethod(gitURL),
			SingleBranch:  true,
		})
		if err != nil && err != git.NoErrAlreadyUpToDate {
			return syncError(err, gitURL)
		}
		return nil
	}

	_, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL:           gitURL,
		ReferenceName: refName,
		SingleBranch:  true,
		Depth:         1,
		Auth:          authMethod(gitURL),
	})
	if err != nil {
		return syncError(err, gitURL)
	}
	return nil
}

func syncError(err error, gitURL string) *errors.AppError {
	appErr := errors.Wrap(err, errors.ErrCodeDefsSyncFailed, "Failed to sync definitions repository").
		WithContext("url", gitURL)

	msg := err.Error()
	if strings.Contains(msg, "authentication") || strings.Contains(msg, "authorization") {
		appErr.WithSuggestions(
			"Check your Git credentials",
			"Try cloning the repository manually to verify access",
		)
	}
	return appErr
}

// authMethod returns SSH auth for ssh-style URLs; HTTPS URLs rely on the
// transport defaults.
func authMethod(gitURL string) transport.AuthMethod {
	if !strings.HasPrefix(gitURL, "git@") && !strings.HasPrefix(gitURL, "ssh://") {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	keyPath := filepath.Join(home, ".ssh", "id_rsa")
	if _, err := os.Stat(keyPath); err != nil {
		return nil
	}

	auth, err := ssh.NewPublicKeysFromFile("git", keyPath, "")
	if err != nil {
		return nil
	}
	return auth
}
