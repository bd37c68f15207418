package convert

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/normalize"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/version"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/fsutil"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/hash"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/pkg/errors"
)

// ChecksumFile is written into every successfully built output directory
const ChecksumFile = ".checksum"

// ConversionError is returned when the converter could not be run or exited non zero
type ConversionError struct {
	Version     string
	CommandLine []string
	ExitCode    int
	Stdout      string
	Stderr      string
	Err         error
}

func (e *ConversionError) Error() string {
	msg := "convert " + e.Version
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}

	msg += ": exit code " + strconv.Itoa(e.ExitCode)
	if output := lastLine(e.Stderr, e.Stdout); output != "" {
		msg += ": " + output
	}
	return msg
}

// Cause returns the underlying error
func (e *ConversionError) Cause() error {
	return e.Err
}

func lastLine(outputs ...string) string {
	for _, output := range outputs {
		output = strings.TrimSpace(output)
		if output != "" {
			lines := strings.Split(output, "\n")
			return strings.TrimSpace(lines[len(lines)-1])
		}
	}

	return ""
}

// Result describes a finished task
type Result struct {
	Version string
	// Skipped is true if the output already existed and nothing was run
	Skipped   bool
	Normalize *normalize.Stats
}

// Invoker runs a task: it decides whether the task has to run at all, runs the
// converter and normalizes the produced files
type Invoker struct {
	converter  Converter
	normalizer *normalize.Normalizer

	// Verify checks the checksum of existing output before skipping it
	verify bool
}

// NewInvoker creates a new invoker
func NewInvoker(converter Converter, normalizer *normalize.Normalizer, verify bool) *Invoker {
	return &Invoker{
		converter:  converter,
		normalizer: normalizer,
		verify:     verify,
	}
}

// Invoke runs the task. Released versions whose output already exists are
// skipped, master is always rebuilt from scratch.
func (i *Invoker) Invoke(ctx context.Context, task *Task, log log.Logger) (*Result, error) {
	outputDir := task.OutputDir()

	if version.IsMaster(task.Version) {
		if fsutil.Exists(outputDir) {
			log.Infof("Removing existing %s directory: %s", task.Version, outputDir)
			err := os.RemoveAll(outputDir)
			if err != nil {
				return nil, errors.Wrapf(err, "remove %s", outputDir)
			}
		}
	} else if fsutil.IsDir(outputDir) {
		built, reason, err := i.isBuilt(outputDir)
		if err != nil {
			return nil, err
		}
		if built {
			log.Infof("Output path %s already exists, skipping", outputDir)
			return &Result{Version: task.Version, Skipped: true}, nil
		}

		log.Warnf("Output path %s exists but %s, rebuilding", outputDir, reason)
		err = os.RemoveAll(outputDir)
		if err != nil {
			return nil, errors.Wrapf(err, "remove %s", outputDir)
		}
	}

	err := os.MkdirAll(task.OutputRoot, 0755)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", task.OutputRoot)
	}

	log.Debugf("Running %s", strings.Join(i.converter.CommandLine(task), " "))
	result, err := i.converter.Convert(ctx, task)
	if err == nil && result.ExitCode == 0 {
		files, listErr := normalize.ListJSONFiles(outputDir)
		if listErr == nil && len(files) == 0 {
			err = errors.Errorf("converter produced no json files in %s", outputDir)
		}
	}
	if err != nil || result.ExitCode != 0 {
		convErr := &ConversionError{
			Version:     task.Version,
			CommandLine: i.converter.CommandLine(task),
			Err:         err,
		}
		if result != nil {
			convErr.ExitCode = result.ExitCode
			convErr.Stdout = string(result.Stdout)
			convErr.Stderr = string(result.Stderr)
		}

		// partial output would be mistaken for a finished build by the next run
		if removeErr := os.RemoveAll(outputDir); removeErr != nil {
			log.Warnf("Error removing partial output %s: %v", outputDir, removeErr)
		}
		return nil, convErr
	}
	log.Debugf("Converter output: %s", bytes.TrimSpace(result.Stdout))

	stats, err := i.normalizer.NormalizeDir(ctx, outputDir, log)
	if err != nil {
		log.Warnf("Error normalizing %s: %v", outputDir, err)
	} else {
		log.Infof("Sorted %d JSON files in %s", stats.Sorted, outputDir)
	}

	err = writeChecksum(outputDir)
	if err != nil {
		log.Warnf("Error writing checksum for %s: %v", outputDir, err)
	}

	return &Result{Version: task.Version, Normalize: stats}, nil
}

func (i *Invoker) isBuilt(outputDir string) (bool, string, error) {
	files, err := normalize.ListJSONFiles(outputDir)
	if err != nil {
		return false, "", err
	}
	if len(files) == 0 {
		return false, "contains no json files", nil
	}
	if !i.verify {
		return true, "", nil
	}

	expected, err := ioutil.ReadFile(filepath.Join(outputDir, ChecksumFile))
	if err != nil {
		return false, "has no checksum", nil
	}
	actual, err := hash.Directory(outputDir, ChecksumFile)
	if err != nil {
		return false, "", err
	}
	if strings.TrimSpace(string(expected)) != actual {
		return false, "its checksum does not match", nil
	}

	return true, "", nil
}

func writeChecksum(outputDir string) error {
	sum, err := hash.Directory(outputDir, ChecksumFile)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(filepath.Join(outputDir, ChecksumFile), []byte(sum+"\n"), 0644)
}
