package catalog

import (
	"context"

	"github.com/pkg/errors"
	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/config"
	"gopkg.in/src-d/go-git.v4/storage/memory"
)

// GitSource lists tags with the git protocol (like git ls-remote --tags), which
// is not subject to the GitHub API rate limit
type GitSource struct {
	url string
}

// NewGitSource creates a new tag source for the given remote url
func NewGitSource(url string) *GitSource {
	return &GitSource{url: url}
}

// ListTags implements TagSource
func (g *GitSource) ListTags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := git.Init(memory.NewStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "init repository")
	}

	remote, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{g.url},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create remote %s", g.url)
	}

	type listResult struct {
		tags []string
		err  error
	}

	// Remote.List does not take a context, so the caller is released on cancellation
	done := make(chan listResult, 1)
	go func() {
		refs, err := remote.List(&git.ListOptions{})
		if err != nil {
			done <- listResult{err: errors.Wrap(err, "list remote")}
			return
		}

		tags := []string{}
		for _, ref := range refs {
			if ref.Name().IsTag() {
				tags = append(tags, ref.Name().Short())
			}
		}
		done <- listResult{tags: tags}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-done:
		return result.tags, result.err
	}
}

func (g *GitSource) String() string {
	return g.url
}
