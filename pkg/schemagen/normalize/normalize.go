package normalize

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/fsutil"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/pkg/errors"
)

// FileError is recorded for a single file that could not be normalized. The
// file keeps its previous content.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return "normalize " + e.Path + ": " + e.Err.Error()
}

// Stats summarizes one NormalizeDir call
type Stats struct {
	Sorted    int
	Unchanged int
	Failed    []*FileError
}

// Normalizer sorts the keys of every JSON file in an output directory
type Normalizer struct {
	formatter Formatter
}

// NewNormalizer creates a new normalizer with the given formatter
func NewNormalizer(formatter Formatter) *Normalizer {
	return &Normalizer{formatter: formatter}
}

// ListJSONFiles returns the *.json files directly inside dir, sorted by name
func ListJSONFiles(dir string) ([]string, error) {
	files, err := doublestar.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrapf(err, "list json files in %s", dir)
	}

	sort.Strings(files)
	return files, nil
}

// NormalizeDir rewrites every *.json file directly inside dir. A file that fails
// is logged and skipped; only a failure to list the directory is returned as error.
func (n *Normalizer) NormalizeDir(ctx context.Context, dir string, log log.Logger) (*Stats, error) {
	files, err := ListJSONFiles(dir)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, file := range files {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		changed, err := n.NormalizeFile(ctx, file)
		if err != nil {
			fileErr := &FileError{Path: file, Err: err}
			log.Warnf("Failed to sort %s: %v", filepath.Base(file), err)
			stats.Failed = append(stats.Failed, fileErr)
			continue
		}

		if changed {
			stats.Sorted++
		} else {
			stats.Unchanged++
		}
	}

	return stats, nil
}

// NormalizeFile rewrites a single file atomically. Files that are already
// normalized are left untouched.
func (n *Normalizer) NormalizeFile(ctx context.Context, path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !stat.Mode().IsRegular() {
		return false, errors.Errorf("%s is not a regular file", path)
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return false, err
	}

	out, err := n.formatter.Format(ctx, data)
	if err != nil {
		return false, err
	}
	if string(out) == string(data) {
		return false, nil
	}

	err = fsutil.WriteFileAtomic(path, out, stat.Mode().Perm())
	if err != nil {
		return false, err
	}

	return true, nil
}
