package log

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type fileLogger struct {
	logger *logrus.Logger
	file   *os.File
}

// NewFileLogger returns a logger that appends JSON formatted entries to the given file
func NewFileLogger(path string, level logrus.Level) (Logger, error) {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return nil, errors.Wrap(err, "create log dir")
	}

	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", path)
	}

	logger := logrus.New()
	logger.Formatter = &logrus.JSONFormatter{}
	logger.Out = logFile
	logger.SetLevel(level)

	return &fileLogger{
		logger: logger,
		file:   logFile,
	}, nil
}

func (f *fileLogger) Debug(args ...interface{}) {
	f.logger.Debug(args...)
}

func (f *fileLogger) Debugf(format string, args ...interface{}) {
	f.logger.Debugf(format, args...)
}

func (f *fileLogger) Info(args ...interface{}) {
	f.logger.Info(args...)
}

func (f *fileLogger) Infof(format string, args ...interface{}) {
	f.logger.Infof(format, args...)
}

func (f *fileLogger) Warn(args ...interface{}) {
	f.logger.Warn(args...)
}

func (f *fileLogger) Warnf(format string, args ...interface{}) {
	f.logger.Warnf(format, args...)
}

func (f *fileLogger) Error(args ...interface{}) {
	f.logger.Error(args...)
}

func (f *fileLogger) Errorf(format string, args ...interface{}) {
	f.logger.Errorf(format, args...)
}

// Fatal only records the entry, the process is terminated by the logger this one is chained to
func (f *fileLogger) Fatal(args ...interface{}) {
	f.logger.WithField("fatal", true).Error(args...)
}

func (f *fileLogger) Fatalf(format string, args ...interface{}) {
	f.logger.WithField("fatal", true).Errorf(format, args...)
}

func (f *fileLogger) Done(args ...interface{}) {
	f.logger.Info(args...)
}

func (f *fileLogger) Donef(format string, args ...interface{}) {
	f.logger.Infof(format, args...)
}

func (f *fileLogger) Fail(args ...interface{}) {
	f.logger.Error(args...)
}

func (f *fileLogger) Failf(format string, args ...interface{}) {
	f.logger.Errorf(format, args...)
}

func (f *fileLogger) Print(level logrus.Level, args ...interface{}) {
	f.Printf(level, "%s", fmt.Sprint(args...))
}

func (f *fileLogger) Printf(level logrus.Level, format string, args ...interface{}) {
	switch level {
	case logrus.DebugLevel:
		f.logger.Debugf(format, args...)
	case logrus.WarnLevel:
		f.logger.Warnf(format, args...)
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		f.logger.Errorf(format, args...)
	default:
		f.logger.Infof(format, args...)
	}
}

func (f *fileLogger) WriteString(level logrus.Level, message string) {
	f.Print(level, message)
}

func (f *fileLogger) SetLevel(level logrus.Level) {
	f.logger.SetLevel(level)
}

func (f *fileLogger) GetLevel() logrus.Level {
	return f.logger.Level
}

// Close closes the underlying log file
func (f *fileLogger) Close() error {
	return f.file.Close()
}
