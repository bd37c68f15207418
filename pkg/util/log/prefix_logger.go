package log

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewPrefixLogger returns a logger that prepends prefix to every message and forwards it to base
func NewPrefixLogger(prefix string, base Logger) Logger {
	return &prefixLogger{
		base:   base,
		prefix: prefix,
	}
}

type prefixLogger struct {
	base   Logger
	prefix string
}

func (s *prefixLogger) Debug(args ...interface{}) {
	s.base.Debug(s.prefix + fmt.Sprint(args...))
}

func (s *prefixLogger) Debugf(format string, args ...interface{}) {
	s.base.Debug(s.prefix + fmt.Sprintf(format, args...))
}

func (s *prefixLogger) Info(args ...interface{}) {
	s.base.Info(s.prefix + fmt.Sprint(args...))
}

func (s *prefixLogger) Infof(format string, args ...interface{}) {
	s.base.Info(s.prefix + fmt.Sprintf(format, args...))
}

func (s *prefixLogger) Warn(args ...interface{}) {
	s.base.Warn(s.prefix + fmt.Sprint(args...))
}

func (s *prefixLogger) Warnf(format string, args ...interface{}) {
	s.base.Warn(s.prefix + fmt.Sprintf(format, args...))
}

func (s *prefixLogger) Error(args ...interface{}) {
	s.base.Error(s.prefix + fmt.Sprint(args...))
}

func (s *prefixLogger) Errorf(format string, args ...interface{}) {
	s.base.Error(s.prefix + fmt.Sprintf(format, args...))
}

func (s *prefixLogger) Fatal(args ...interface{}) {
	s.base.Fatal(s.prefix + fmt.Sprint(args...))
}

func (s *prefixLogger) Fatalf(format string, args ...interface{}) {
	s.base.Fatal(s.prefix + fmt.Sprintf(format, args...))
}

func (s *prefixLogger) Done(args ...interface{}) {
	s.base.Done(s.prefix + fmt.Sprint(args...))
}

func (s *prefixLogger) Donef(format string, args ...interface{}) {
	s.base.Done(s.prefix + fmt.Sprintf(format, args...))
}

func (s *prefixLogger) Fail(args ...interface{}) {
	s.base.Fail(s.prefix + fmt.Sprint(args...))
}

func (s *prefixLogger) Failf(format string, args ...interface{}) {
	s.base.Fail(s.prefix + fmt.Sprintf(format, args...))
}

func (s *prefixLogger) Print(level logrus.Level, args ...interface{}) {
	s.base.Print(level, s.prefix+fmt.Sprint(args...))
}

func (s *prefixLogger) Printf(level logrus.Level, format string, args ...interface{}) {
	s.base.Print(level, s.prefix+fmt.Sprintf(format, args...))
}

func (s *prefixLogger) WriteString(level logrus.Level, message string) {
	s.base.WriteString(level, message)
}

func (s *prefixLogger) SetLevel(level logrus.Level) {
	s.base.SetLevel(level)
}

func (s *prefixLogger) GetLevel() logrus.Level {
	return s.base.GetLevel()
}
