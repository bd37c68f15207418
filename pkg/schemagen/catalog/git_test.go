package catalog

import (
	"context"
	"sort"
	"testing"

	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing"
	"gopkg.in/src-d/go-git.v4/plumbing/storer"
	"gopkg.in/src-d/go-git.v4/plumbing/transport"
	"gopkg.in/src-d/go-git.v4/plumbing/transport/client"
	"gopkg.in/src-d/go-git.v4/plumbing/transport/server"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

// serveRepository makes the storer reachable under a gitlocal:// url
func serveRepository(t *testing.T, url string, s storer.Storer) func() {
	ep, err := transport.NewEndpoint(url)
	assert.NilError(t, err)

	client.InstallProtocol("gitlocal", server.NewClient(server.MapLoader{ep.String(): s}))
	return func() {
		client.InstallProtocol("gitlocal", nil)
	}
}

func TestGitSourceListsTags(t *testing.T) {
	dir := fs.NewDir(t, "remote")
	defer dir.Remove()

	repo, err := git.PlainInit(dir.Path(), true)
	assert.NilError(t, err)

	hash := plumbing.NewHash("6e8f5d1e4fa0b3d6ad2a9e62d1c6f8a1f1e6cb1a")
	for _, name := range []string{"refs/tags/v1.29.0", "refs/tags/v1.29.1-rc.0", "refs/tags/v1.29.3", "refs/heads/master"} {
		err = repo.Storer.SetReference(plumbing.NewHashReference(plumbing.ReferenceName(name), hash))
		assert.NilError(t, err)
	}

	url := "gitlocal://kubernetes/kubernetes"
	defer serveRepository(t, url, repo.Storer)()

	source := NewGitSource(url)
	assert.Equal(t, source.String(), url)

	tags, err := source.ListTags(context.Background())
	assert.NilError(t, err)

	sort.Strings(tags)
	assert.DeepEqual(t, tags, []string{"v1.29.0", "v1.29.1-rc.0", "v1.29.3"})
}

func TestGitSourceUnknownRepository(t *testing.T) {
	defer serveRepository(t, "gitlocal://kubernetes/kubernetes", nil)()

	_, err := NewGitSource("gitlocal://kubernetes/other").ListTags(context.Background())
	assert.ErrorContains(t, err, "list remote")
}

func TestGitSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGitSource("gitlocal://kubernetes/kubernetes").ListTags(ctx)
	assert.Equal(t, err, context.Canceled)
}
