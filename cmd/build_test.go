package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patthomasrick/kubernetes-json-schema/cmd/flags"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/catalog"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/convert"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/command"
	fakecommand "github.com/patthomasrick/kubernetes-json-schema/pkg/util/command/testing"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/exit"
	fakefactory "github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory/testing"
	logtesting "github.com/patthomasrick/kubernetes-json-schema/pkg/util/log/testing"
	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

// newFakeConverter returns a converter that writes one schema into the output
// directory and fails for the given versions
func newFakeConverter(fail ...string) (*convert.LocalConverter, *fakecommand.FakeRunner) {
	runner := &fakecommand.FakeRunner{
		RunFn: func(call fakecommand.Call) (*command.Result, error) {
			outputDir := call.Args[1]
			for _, v := range fail {
				if filepath.Base(outputDir) == v {
					return &command.Result{ExitCode: 1, Stderr: []byte("404 Not Found")}, nil
				}
			}

			err := os.MkdirAll(outputDir, 0755)
			if err != nil {
				return nil, err
			}
			content := `{"version":"` + filepath.Base(outputDir) + `","$schema":"http://json-schema.org/schema#"}`
			return &command.Result{}, ioutil.WriteFile(filepath.Join(outputDir, "pod.json"), []byte(content), 0644)
		},
	}

	return &convert.LocalConverter{Runner: runner, Binary: "openapi2jsonschema"}, runner
}

func newTestViper(outputRoot string) *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("output-root", outputRoot)
	v.Set("earliest", "v1.7.0")
	v.Set("latest", "v1.8.0")
	v.Set("workers", 2)
	return v
}

var testTags = []string{"v1.6.9", "v1.7.0", "v1.7.1", "v1.7.2-beta.0", "v1.8.0", "v1.8.0-rc.1", "v1.9.0", "v2.0.0-alpha.0"}

func TestBuild(t *testing.T) {
	dir := fs.NewDir(t, "build",
		fs.WithDir("v1.7.0", fs.WithFile("pod.json", `{"existing":true}`)),
		fs.WithDir("master", fs.WithFile("stale.json", `{}`)),
	)
	defer dir.Remove()

	converter, runner := newFakeConverter("v1.8.0")
	logger := logtesting.NewCatchLogger()
	f := &fakefactory.Factory{
		TagSource: &catalog.StaticSource{Tags: testTags},
		Converter: converter,
		Log:       logger,
	}

	v := newTestViper(dir.Path())
	v.Set("report", dir.Join("report.yaml"))

	cmd := &BuildCmd{GlobalFlags: &flags.GlobalFlags{}}
	err := cmd.Run(f, v, nil)
	assert.NilError(t, err, logger.GetLogs())

	// v1.7.0 already existed, v1.8.0 failed
	assert.Equal(t, len(runner.Calls()), 3)

	content, err := ioutil.ReadFile(dir.Join("v1.7.0", "pod.json"))
	assert.NilError(t, err)
	assert.Equal(t, string(content), `{"existing":true}`)

	content, err = ioutil.ReadFile(dir.Join("v1.7.1", "pod.json"))
	assert.NilError(t, err)
	assert.Equal(t, string(content), "{\n  \"$schema\": \"http://json-schema.org/schema#\",\n  \"version\": \"v1.7.1\"\n}\n")

	content, err = ioutil.ReadFile(dir.Join("v1.7", "pod.json"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(content), `"version": "v1.7.1"`))

	_, err = os.Stat(dir.Join("v1.8.0"))
	assert.Assert(t, os.IsNotExist(err))
	_, err = os.Stat(dir.Join("v1.8"))
	assert.Assert(t, os.IsNotExist(err))
	_, err = os.Stat(dir.Join("master", "stale.json"))
	assert.Assert(t, os.IsNotExist(err))

	report, err := ioutil.ReadFile(dir.Join("report.yaml"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(report), "- version: v1.8.0\n  status: failed\n"), string(report))
	assert.Assert(t, strings.Contains(string(report), "- version: v1.7.0\n  status: skipped\n"), string(report))
	assert.Assert(t, strings.Contains(string(report), "promoted:\n  v1.7: v1.7.1\n"), string(report))

	assert.Assert(t, strings.Contains(logger.GetLogs(), "[FAIL] Built 2, skipped 1, failed 1 versions"), logger.GetLogs())
}

func TestBuildFailOnError(t *testing.T) {
	dir := fs.NewDir(t, "build")
	defer dir.Remove()

	converter, _ := newFakeConverter("v1.7.1")
	f := &fakefactory.Factory{
		TagSource: &catalog.StaticSource{Tags: testTags},
		Converter: converter,
	}

	cmd := &BuildCmd{GlobalFlags: &flags.GlobalFlags{}, FailOnError: true}
	err := cmd.Run(f, newTestViper(dir.Path()), nil)

	exitErr, ok := err.(*exit.ReturnCodeError)
	assert.Assert(t, ok, "Unexpected error %v", err)
	assert.Equal(t, exitErr.ExitCode, FailedExitCode)
	assert.Equal(t, exitErr.Message, "1 versions failed: v1.7.1")

	// the remaining versions are built anyway
	_, err = os.Stat(dir.Join("v1.8.0", "pod.json"))
	assert.NilError(t, err)
	_, err = os.Stat(dir.Join("v1.7", "pod.json"))
	assert.NilError(t, err)
}

func TestBuildGivenVersions(t *testing.T) {
	dir := fs.NewDir(t, "build")
	defer dir.Remove()

	converter, runner := newFakeConverter()
	f := &fakefactory.Factory{Converter: converter}

	cmd := &BuildCmd{GlobalFlags: &flags.GlobalFlags{}, SkipPromote: true}
	err := cmd.Run(f, newTestViper(dir.Path()), []string{"v1.29.3"})
	assert.NilError(t, err)
	assert.Equal(t, len(runner.Calls()), 1)

	_, err = os.Stat(dir.Join("v1.29"))
	assert.Assert(t, os.IsNotExist(err))

	err = cmd.Run(f, newTestViper(dir.Path()), []string{"v1.x"})
	assert.ErrorContains(t, err, `invalid version "v1.x"`)
}

func TestBuildDeduplicatesGivenVersions(t *testing.T) {
	dir := fs.NewDir(t, "build")
	defer dir.Remove()

	converter, runner := newFakeConverter()
	f := &fakefactory.Factory{Converter: converter}

	v := newTestViper(dir.Path())
	v.Set("workers", 4)

	cmd := &BuildCmd{GlobalFlags: &flags.GlobalFlags{}}
	err := cmd.Run(f, v, []string{"v1.7.1", "v1.7.1", "master", "master"})
	assert.NilError(t, err)

	built := map[string]int{}
	for _, call := range runner.Calls() {
		built[filepath.Base(call.Args[1])]++
	}
	assert.DeepEqual(t, built, map[string]int{"v1.7.1": 1, "master": 1})

	_, err = os.Stat(dir.Join("master", "pod.json"))
	assert.NilError(t, err)
}

func TestBuildGivenVersionsPromotesLatestOnDisk(t *testing.T) {
	newest := `{"version":"v1.7.3"}`
	dir := fs.NewDir(t, "build",
		fs.WithDir("v1.7.3", fs.WithFile("pod.json", newest)),
		fs.WithDir("v1.7", fs.WithFile("pod.json", newest)),
		fs.WithDir("v1.8.0", fs.WithFile("pod.json", `{"version":"v1.8.0"}`)),
	)
	defer dir.Remove()

	converter, _ := newFakeConverter()
	f := &fakefactory.Factory{Converter: converter}

	cmd := &BuildCmd{GlobalFlags: &flags.GlobalFlags{}}
	err := cmd.Run(f, newTestViper(dir.Path()), []string{"v1.7.1"})
	assert.NilError(t, err)

	// an older patch must not replace the minor directory
	content, err := ioutil.ReadFile(dir.Join("v1.7", "pod.json"))
	assert.NilError(t, err)
	assert.Equal(t, string(content), newest)

	// minors the build did not touch stay as they are
	_, err = os.Stat(dir.Join("v1.8"))
	assert.Assert(t, os.IsNotExist(err))

	err = cmd.Run(f, newTestViper(dir.Path()), []string{"v1.7.5"})
	assert.NilError(t, err)

	content, err = ioutil.ReadFile(dir.Join("v1.7", "pod.json"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(content), `"version": "v1.7.5"`), string(content))
}

func TestBuildInvalidConfig(t *testing.T) {
	v := newTestViper("kubernetes-api")
	v.Set("workers", 0)

	cmd := &BuildCmd{GlobalFlags: &flags.GlobalFlags{}}
	err := cmd.Run(&fakefactory.Factory{}, v, nil)
	assert.ErrorContains(t, err, "workers must be greater than 0")
}
