// Package gitmeta reads best-effort repository metadata for an analyzed
// root, so audit records can name the branch and commit they ran against.
package gitmeta

import (
	git "github.com/go-git/go-git/v5"
)

// Info holds repository metadata. Fields are empty when unknown.
type Info struct {
	Branch string
	Commit string
}

// Lookup returns branch and commit for the repository containing root.
// A zero Info is returned when root is not inside a git repository.
func Lookup(root string) Info {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Info{}
	}
	head, err := repo.Head()
	if err != nil {
		return Info{}
	}
	info := Info{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info
}
