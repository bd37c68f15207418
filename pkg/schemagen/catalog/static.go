package catalog

import (
	"context"
	"strings"
)

// StaticSource returns a fixed tag list, used when the versions to build are
// given explicitly
type StaticSource struct {
	Tags []string
}

// ListTags implements TagSource
func (s *StaticSource) ListTags(ctx context.Context) ([]string, error) {
	return append([]string{}, s.Tags...), nil
}

func (s *StaticSource) String() string {
	return "static list [" + strings.Join(s.Tags, ", ") + "]"
}
