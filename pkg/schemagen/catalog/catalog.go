package catalog

import (
	"context"
	"strings"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/version"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/pkg/errors"
)

// TagSource lists the tag names (without "refs/tags/") of the Kubernetes repository
type TagSource interface {
	ListTags(ctx context.Context) ([]string, error)
	String() string
}

// FetchError is returned when the tag source cannot deliver a usable tag list.
// Nothing can be scheduled without it, so it ends the run.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return "fetch tags from " + e.Source + ": " + e.Err.Error()
}

// Cause returns the underlying error
func (e *FetchError) Cause() error {
	return e.Err
}

// Options configure which tags end up in the catalog
type Options struct {
	// Prefix selects the release line, e.g. "v1"
	Prefix string
	Range  version.Range
}

// Catalog resolves the versions a run has to build
type Catalog struct {
	source  TagSource
	options Options
	log     log.Logger
}

// NewCatalog creates a new catalog on top of a tag source
func NewCatalog(source TagSource, options Options, log log.Logger) *Catalog {
	return &Catalog{
		source:  source,
		options: options,
		log:     log,
	}
}

// ListVersions fetches all tags, filters them to the configured range, sorts
// them ascending and appends the master target
func (c *Catalog) ListVersions(ctx context.Context) ([]string, error) {
	err := c.options.Range.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "version range")
	}

	c.log.Debugf("Fetching tags from %s", c.source.String())
	tags, err := c.source.ListTags(ctx)
	if err != nil {
		return nil, &FetchError{Source: c.source.String(), Err: err}
	}
	c.log.Infof("Found %d tags in %s", len(tags), c.source.String())

	versions, err := Filter(tags, c.options.Prefix, c.options.Range)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Filtered Kubernetes API versions in %s: %d", c.options.Range.String(), len(versions))
	c.log.Debugf("Kubernetes API versions: %v", versions)

	return append(versions, version.Master), nil
}

// Filter keeps the release tags that start with prefix, are no pre-releases and
// lie inside r, and returns them sorted ascending without duplicates
func Filter(tags []string, prefix string, r version.Range) ([]string, error) {
	seen := map[string]bool{}
	versions := []string{}
	for _, tag := range tags {
		if !strings.HasPrefix(tag, prefix) || version.IsPrerelease(tag) || seen[tag] {
			continue
		}

		inRange, err := r.Contains(tag)
		if err != nil {
			return nil, err
		}
		if !inRange {
			continue
		}

		seen[tag] = true
		versions = append(versions, tag)
	}

	err := version.Sort(versions)
	if err != nil {
		return nil, err
	}

	return versions, nil
}
