package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const tagRefPrefix = "refs/tags/"

// GitHubSource lists tags through the GitHub git refs API
type GitHubSource struct {
	client *github.Client
	owner  string
	repo   string
}

// GitHubOptions configure the GitHub tag source
type GitHubOptions struct {
	// Repository in the form owner/name, e.g. kubernetes/kubernetes
	Repository string
	// BaseURL overrides the API endpoint (GitHub Enterprise or tests)
	BaseURL string
	// Token is optional and raises the API rate limit
	Token string
}

// NewGitHubSource creates a new tag source that talks to the GitHub API
func NewGitHubSource(ctx context.Context, options GitHubOptions) (*GitHubSource, error) {
	splitted := strings.Split(options.Repository, "/")
	if len(splitted) != 2 || splitted[0] == "" || splitted[1] == "" {
		return nil, errors.Errorf("invalid github repository %q, expected owner/name", options.Repository)
	}

	var httpClient *http.Client
	if options.Token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: options.Token}))
	}

	client := github.NewClient(httpClient)
	if options.BaseURL != "" {
		baseURL := options.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}

		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, errors.Wrap(err, "parse github api url")
		}
		client.BaseURL = parsed
	}

	return &GitHubSource{
		client: client,
		owner:  splitted[0],
		repo:   splitted[1],
	}, nil
}

// ListTags implements TagSource
func (g *GitHubSource) ListTags(ctx context.Context) ([]string, error) {
	opt := &github.ReferenceListOptions{
		Type:        "tags",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	tags := []string{}
	for {
		refs, resp, err := g.client.Git.ListRefs(ctx, g.owner, g.repo, opt)
		if err != nil {
			return nil, errors.Wrap(err, "list refs")
		}

		for _, ref := range refs {
			name := ref.GetRef()
			if strings.HasPrefix(name, tagRefPrefix) {
				tags = append(tags, strings.TrimPrefix(name, tagRefPrefix))
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return tags, nil
}

func (g *GitHubSource) String() string {
	return "github.com/" + g.owner + "/" + g.repo
}
