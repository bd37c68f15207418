package upgrade

import (
	"regexp"

	"github.com/blang/semver"
	"github.com/pkg/errors"
)

// Version holds the current version tag
var version string
var rawVersion string

var reVersion = regexp.MustCompile(`\d+\.\d+\.\d+`)

func eraseVersionPrefix(version string) (string, error) {
	indices := reVersion.FindStringIndex(version)
	if indices == nil {
		return version, errors.New("Version not adopting semver")
	}
	if indices[0] > 0 {
		version = version[indices[0]:]
	}

	return version, nil
}

// GetVersion returns the application version
func GetVersion() string {
	return version
}

// GetRawVersion returns the applications raw version
func GetRawVersion() string {
	return rawVersion
}

// SetVersion sets the application version
func SetVersion(verText string) error {
	if len(verText) == 0 {
		return nil
	}
	if verText[0] != 'v' {
		verText = "v" + verText
	}

	_version, err := eraseVersionPrefix(verText)
	if err != nil {
		return err
	}
	if _, err := semver.Parse(_version); err != nil {
		return errors.Wrapf(err, "parse version %s", verText)
	}

	version = _version
	rawVersion = verText
	return nil
}

// IsPrerelease reports whether the application version is an alpha, beta or rc build
func IsPrerelease() bool {
	v, err := semver.Parse(version)
	if err != nil {
		return false
	}

	return len(v.Pre) > 0
}
