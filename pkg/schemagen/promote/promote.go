package promote

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/version"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/fsutil"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/pkg/errors"
)

// GroupError is recorded for a minor version that could not be promoted. The
// other groups are not affected.
type GroupError struct {
	Minor  string
	Source string
	Err    error
}

func (e *GroupError) Error() string {
	return "promote " + e.Source + " to " + e.Minor + ": " + e.Err.Error()
}

// Cause returns the underlying error
func (e *GroupError) Cause() error {
	return e.Err
}

// Report describes what a promotion did
type Report struct {
	// Promoted maps the minor directory to the patch release copied into it
	Promoted map[string]string
	Failed   map[string]*GroupError
}

// Minors returns the promoted minor versions in ascending order
func (r *Report) Minors() []string {
	minors := make([]string, 0, len(r.Promoted))
	for minor := range r.Promoted {
		minors = append(minors, minor)
	}

	if err := version.Sort(minors); err != nil {
		sort.Strings(minors)
	}
	return minors
}

// Promoter copies the latest patch release of every minor version into a
// directory named after the minor version, e.g. v1.29.3 into v1.29
type Promoter struct {
	outputRoot string
	log        log.Logger
}

// NewPromoter creates a new promoter for the given output root
func NewPromoter(outputRoot string, log log.Logger) *Promoter {
	return &Promoter{
		outputRoot: outputRoot,
		log:        log,
	}
}

// Group returns the versions grouped by their minor version. master and
// unparsable versions are left out.
func Group(versions []string) map[string][]string {
	groups := map[string][]string{}
	for _, v := range versions {
		if version.IsMaster(v) {
			continue
		}

		minor, err := version.Minor(v)
		if err != nil || minor == v {
			continue
		}

		groups[minor] = append(groups[minor], v)
	}

	return groups
}

// Promote promotes the latest existing patch release of every minor version in versions
func (p *Promoter) Promote(versions []string) *Report {
	report := &Report{
		Promoted: map[string]string{},
		Failed:   map[string]*GroupError{},
	}

	// only versions that were actually built can be promoted
	existing := []string{}
	for _, v := range versions {
		if fsutil.IsDir(filepath.Join(p.outputRoot, v)) {
			existing = append(existing, v)
		} else if !version.IsMaster(v) {
			p.log.Debugf("Skipping %s for promotion, %s does not exist", v, filepath.Join(p.outputRoot, v))
		}
	}

	groups := Group(existing)
	minors := make([]string, 0, len(groups))
	for minor := range groups {
		minors = append(minors, minor)
	}
	sort.Strings(minors)

	for _, minor := range minors {
		latest, err := version.Latest(groups[minor])
		if err != nil {
			report.Failed[minor] = &GroupError{Minor: minor, Err: err}
			p.log.Warnf("Skipping %s: %v", minor, err)
			continue
		}

		err = p.promoteGroup(minor, latest)
		if err != nil {
			groupErr := &GroupError{Minor: minor, Source: latest, Err: err}
			report.Failed[minor] = groupErr
			p.log.Warnf("Skipping %s: %v", minor, groupErr)
			continue
		}

		report.Promoted[minor] = latest
		p.log.Donef("Promoted %s to %s", latest, minor)
	}

	return report
}

func (p *Promoter) promoteGroup(minor, latest string) error {
	source := filepath.Join(p.outputRoot, latest)
	target := filepath.Join(p.outputRoot, minor)

	// the source may have vanished since the group was built
	if !fsutil.IsDir(source) {
		return errors.Errorf("%s does not exist", source)
	}

	if fsutil.Exists(target) {
		p.log.Debugf("Removing existing %s", target)
		err := os.RemoveAll(target)
		if err != nil {
			return errors.Wrapf(err, "remove %s", target)
		}
	}

	err := fsutil.Copy(source, target)
	if err != nil {
		return errors.Wrapf(err, "copy %s", source)
	}

	return nil
}
