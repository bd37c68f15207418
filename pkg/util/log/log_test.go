package log

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

func TestStreamLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewStreamLogger(buf, logrus.InfoLevel)

	logger.Debug("hidden")
	logger.Info("shown")
	logger.Warnf("warn %d", 1)
	logger.Donef("done %s", "v1.29.3")
	logger.Fail("failed")

	out := buf.String()
	assert.Assert(t, !strings.Contains(out, "hidden"), "Debug message printed on info level")
	assert.Assert(t, strings.Contains(out, "[info]   shown\n"))
	assert.Assert(t, strings.Contains(out, "[warn]   warn 1\n"))
	assert.Assert(t, strings.Contains(out, "[done] √ done v1.29.3\n"))
	assert.Assert(t, strings.Contains(out, "[fail] X failed\n"))

	logger.SetLevel(logrus.DebugLevel)
	logger.Debug("visible")
	assert.Assert(t, strings.Contains(buf.String(), "[debug]  visible\n"))
	assert.Equal(t, logger.GetLevel(), logrus.DebugLevel)
}

func TestPrefixLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewPrefixLogger("[v1.29.3] ", NewStreamLogger(buf, logrus.InfoLevel))

	logger.Infof("converted %d files", 3)
	logger.Error("boom")

	assert.Equal(t, buf.String(), "[info]   [v1.29.3] converted 3 files\n[error]  [v1.29.3] boom\n")
}

func TestFileLoggerSink(t *testing.T) {
	dir := fs.NewDir(t, "log")
	defer dir.Remove()

	path := filepath.Join(dir.Path(), "logs", "build.log")
	fileLog, err := NewFileLogger(path, logrus.InfoLevel)
	assert.NilError(t, err)

	buf := &bytes.Buffer{}
	logger := NewStreamLogger(buf, logrus.InfoLevel)
	AddSink(logger, fileLog)

	logger.Infof("fetched %d tags", 12)
	assert.NilError(t, fileLog.(*fileLogger).Close())

	content, err := ioutil.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(content), `"msg":"fetched 12 tags"`), string(content))
	assert.Assert(t, strings.Contains(string(content), `"level":"info"`), string(content))
}

func TestPrintTable(t *testing.T) {
	buf := &bytes.Buffer{}
	PrintTable(NewStreamLogger(buf, logrus.InfoLevel), []string{"Version", "Status"}, [][]string{
		{"v1.29.3", "built"},
		{"master", "failed"},
	})

	out := buf.String()
	assert.Assert(t, strings.Contains(out, "v1.29.3"))
	assert.Assert(t, strings.Contains(out, "failed"))
}
