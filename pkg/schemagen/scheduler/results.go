package scheduler

import (
	"sort"
	"time"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/convert"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/version"
)

// Outcome is the result of one task
type Outcome struct {
	Version  string
	Result   *convert.Result
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the task finished without error
func (o *Outcome) Succeeded() bool {
	return o.Err == nil
}

// Skipped reports whether the output already existed
func (o *Outcome) Skipped() bool {
	return o.Err == nil && o.Result != nil && o.Result.Skipped
}

// Results maps every version to its outcome
type Results map[string]*Outcome

// Versions returns all versions in build order, master last
func (r Results) Versions() []string {
	return r.filter(func(*Outcome) bool { return true })
}

// Succeeded returns the versions that were built or skipped
func (r Results) Succeeded() []string {
	return r.filter(func(o *Outcome) bool { return o.Succeeded() })
}

// Built returns the versions that were converted in this run
func (r Results) Built() []string {
	return r.filter(func(o *Outcome) bool { return o.Succeeded() && !o.Skipped() })
}

// Skipped returns the versions whose output already existed
func (r Results) Skipped() []string {
	return r.filter(func(o *Outcome) bool { return o.Skipped() })
}

// Failed returns the versions that failed
func (r Results) Failed() []string {
	return r.filter(func(o *Outcome) bool { return !o.Succeeded() })
}

func (r Results) filter(keep func(*Outcome) bool) []string {
	versions := []string{}
	hasMaster := false
	for v, outcome := range r {
		if !keep(outcome) {
			continue
		}
		if version.IsMaster(v) {
			hasMaster = true
			continue
		}

		versions = append(versions, v)
	}

	if err := version.Sort(versions); err != nil {
		sort.Strings(versions)
	}
	if hasMaster {
		versions = append(versions, version.Master)
	}

	return versions
}
