package report

import (
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/promote"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/scheduler"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/version"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/yamlutil"
	"github.com/pkg/errors"
)

// Version statuses
const (
	StatusBuilt   = "built"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Report is the machine readable summary of a build run
type Report struct {
	Range    string          `yaml:"range,omitempty"`
	Duration string          `yaml:"duration,omitempty"`
	Versions []VersionReport `yaml:"versions"`

	Promoted          map[string]string `yaml:"promoted,omitempty"`
	PromotionFailures map[string]string `yaml:"promotionFailures,omitempty"`
}

// VersionReport is the summary of one version
type VersionReport struct {
	Version  string `yaml:"version"`
	Status   string `yaml:"status"`
	Duration string `yaml:"duration,omitempty"`
	Error    string `yaml:"error,omitempty"`

	SortedFiles int      `yaml:"sortedFiles,omitempty"`
	FailedFiles []string `yaml:"failedFiles,omitempty"`
}

// New creates a report from the scheduler results and the promotion report,
// promotion may be nil
func New(results scheduler.Results, promotion *promote.Report) *Report {
	report := &Report{
		Versions: []VersionReport{},
	}

	for _, v := range results.Versions() {
		outcome := results[v]
		versionReport := VersionReport{
			Version: v,
			Status:  StatusBuilt,
		}
		if outcome.Duration > 0 {
			versionReport.Duration = outcome.Duration.Round(time.Millisecond).String()
		}

		if outcome.Err != nil {
			versionReport.Status = StatusFailed
			versionReport.Error = outcome.Err.Error()
		} else if outcome.Skipped() {
			versionReport.Status = StatusSkipped
		} else if outcome.Result != nil && outcome.Result.Normalize != nil {
			versionReport.SortedFiles = outcome.Result.Normalize.Sorted
			for _, fileErr := range outcome.Result.Normalize.Failed {
				versionReport.FailedFiles = append(versionReport.FailedFiles, filepath.Base(fileErr.Path))
			}
		}

		report.Versions = append(report.Versions, versionReport)
	}

	if promotion != nil {
		if len(promotion.Promoted) > 0 {
			report.Promoted = promotion.Promoted
		}
		if len(promotion.Failed) > 0 {
			report.PromotionFailures = map[string]string{}
			for minor, groupErr := range promotion.Failed {
				report.PromotionFailures[minor] = groupErr.Error()
			}
		}
	}

	return report
}

// Count returns how many versions have the given status
func (r *Report) Count(status string) int {
	count := 0
	for _, v := range r.Versions {
		if v.Status == status {
			count++
		}
	}

	return count
}

// WriteFile writes the report as yaml to path
func (r *Report) WriteFile(path string) error {
	err := yamlutil.WriteYamlToFile(r, path)
	if err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}

	return nil
}

// Print prints a summary table of all versions and a closing status line
func (r *Report) Print(logger log.Logger) {
	values := [][]string{}
	for _, v := range r.Versions {
		details := v.Error
		if v.Status == StatusBuilt {
			details = strconv.Itoa(v.SortedFiles) + " files sorted"
			if len(v.FailedFiles) > 0 {
				details += ", " + strconv.Itoa(len(v.FailedFiles)) + " unsortable"
			}
		}

		values = append(values, []string{v.Version, v.Status, v.Duration, details})
	}
	log.PrintTable(logger, []string{"Version", "Status", "Duration", "Details"}, values)

	for _, minor := range sortedKeys(r.Promoted) {
		logger.Infof("%s -> %s", r.Promoted[minor], minor)
	}

	built, skipped, failed := r.Count(StatusBuilt), r.Count(StatusSkipped), r.Count(StatusFailed)
	if failed > 0 {
		logger.Failf("Built %d, skipped %d, failed %d versions", built, skipped, failed)
	} else {
		logger.Donef("Built %d, skipped %d versions", built, skipped)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	if err := version.Sort(keys); err != nil {
		sort.Strings(keys)
	}
	return keys
}
