// Package version parses and orders dotted Kubernetes release versions like
// "v1.29.3". The rolling "master" target is not a version and must be handled
// by the caller before anything in here is called.
package version

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Master is the rolling target that is always built last
const Master = "master"

// ParseError is returned for a version with a component that is not a non-negative integer
type ParseError struct {
	Version   string
	Component string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: component %q is not a non-negative integer", e.Version, e.Component)
}

// IsMaster reports whether v is the rolling master target
func IsMaster(v string) bool {
	return v == Master
}

// IsPrerelease reports whether v is a pre-release or candidate tag (e.g. v1.29.0-rc.1)
func IsPrerelease(v string) bool {
	return strings.Contains(v, "-")
}

// Parse strips a leading "v" and splits v into its numeric components
func Parse(v string) ([]int, error) {
	parts := strings.Split(strings.TrimPrefix(v, "v"), ".")
	components := make([]int, 0, len(parts))
	for _, part := range parts {
		// ParseUint also rejects signs, so "-1" and "+1" are errors
		n, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, &ParseError{Version: v, Component: part}
		}

		components = append(components, int(n))
	}

	return components, nil
}

// Compare returns -1, 0 or 1 if a is lower, equal or greater than b. Missing
// trailing components count as zero, so "v1.7" equals "v1.7.0".
func Compare(a, b string) (int, error) {
	aParts, err := Parse(a)
	if err != nil {
		return 0, err
	}
	bParts, err := Parse(b)
	if err != nil {
		return 0, err
	}

	for len(aParts) < len(bParts) {
		aParts = append(aParts, 0)
	}
	for len(bParts) < len(aParts) {
		bParts = append(bParts, 0)
	}

	for i := range aParts {
		if aParts[i] < bParts[i] {
			return -1, nil
		} else if aParts[i] > bParts[i] {
			return 1, nil
		}
	}

	return 0, nil
}

// Sort sorts versions ascending in place. Nothing is reordered if a version cannot be parsed.
func Sort(versions []string) error {
	for _, v := range versions {
		if _, err := Parse(v); err != nil {
			return err
		}
	}

	sort.SliceStable(versions, func(i, j int) bool {
		c, _ := Compare(versions[i], versions[j])
		return c < 0
	})
	return nil
}

// Minor returns the "<major>.<minor>" slot a version belongs to, e.g. "v1.29" for "v1.29.3"
func Minor(v string) (string, error) {
	parts, err := Parse(v)
	if err != nil {
		return "", err
	}
	if len(parts) < 2 {
		return "", &ParseError{Version: v, Component: ""}
	}

	return strings.Join(strings.Split(v, ".")[:2], "."), nil
}

// Latest returns the highest of the given versions
func Latest(versions []string) (string, error) {
	if len(versions) == 0 {
		return "", errors.New("no versions given")
	}

	latest := versions[0]
	if _, err := Parse(latest); err != nil {
		return "", err
	}
	for _, v := range versions[1:] {
		c, err := Compare(v, latest)
		if err != nil {
			return "", err
		}
		if c > 0 {
			latest = v
		}
	}

	return latest, nil
}
