package testing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// CatchLogger collects all logs and stores them
type CatchLogger struct {
	m    sync.Mutex
	logs []string
}

// NewCatchLogger returns a new catch logger
func NewCatchLogger() *CatchLogger {
	return &CatchLogger{}
}

func (c *CatchLogger) add(tag string, message string) {
	c.m.Lock()
	defer c.m.Unlock()

	c.logs = append(c.logs, "["+tag+"] "+message)
}

// GetLogs returns the logs until now
func (c *CatchLogger) GetLogs() string {
	c.m.Lock()
	defer c.m.Unlock()

	return strings.Join(c.logs, "\n")
}

// Lines returns every caught line
func (c *CatchLogger) Lines() []string {
	c.m.Lock()
	defer c.m.Unlock()

	return append([]string{}, c.logs...)
}

// Debug implements logger interface
func (c *CatchLogger) Debug(args ...interface{}) {
	c.add("DEBUG", fmt.Sprint(args...))
}

// Debugf implements logger interface
func (c *CatchLogger) Debugf(format string, args ...interface{}) {
	c.add("DEBUG", fmt.Sprintf(format, args...))
}

// Info implements logger interface
func (c *CatchLogger) Info(args ...interface{}) {
	c.add("INFO", fmt.Sprint(args...))
}

// Infof implements logger interface
func (c *CatchLogger) Infof(format string, args ...interface{}) {
	c.add("INFO", fmt.Sprintf(format, args...))
}

// Warn implements logger interface
func (c *CatchLogger) Warn(args ...interface{}) {
	c.add("WARN", fmt.Sprint(args...))
}

// Warnf implements logger interface
func (c *CatchLogger) Warnf(format string, args ...interface{}) {
	c.add("WARN", fmt.Sprintf(format, args...))
}

// Error implements logger interface
func (c *CatchLogger) Error(args ...interface{}) {
	c.add("ERROR", fmt.Sprint(args...))
}

// Errorf implements logger interface
func (c *CatchLogger) Errorf(format string, args ...interface{}) {
	c.add("ERROR", fmt.Sprintf(format, args...))
}

// Fatal implements logger interface
func (c *CatchLogger) Fatal(args ...interface{}) {
	c.add("FATAL", fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// Fatalf implements logger interface
func (c *CatchLogger) Fatalf(format string, args ...interface{}) {
	c.add("FATAL", fmt.Sprintf(format, args...))
	panic(fmt.Sprintf(format, args...))
}

// Done implements logger interface
func (c *CatchLogger) Done(args ...interface{}) {
	c.add("DONE", fmt.Sprint(args...))
}

// Donef implements logger interface
func (c *CatchLogger) Donef(format string, args ...interface{}) {
	c.add("DONE", fmt.Sprintf(format, args...))
}

// Fail implements logger interface
func (c *CatchLogger) Fail(args ...interface{}) {
	c.add("FAIL", fmt.Sprint(args...))
}

// Failf implements logger interface
func (c *CatchLogger) Failf(format string, args ...interface{}) {
	c.add("FAIL", fmt.Sprintf(format, args...))
}

// Print implements logger interface
func (c *CatchLogger) Print(level logrus.Level, args ...interface{}) {
	switch level {
	case logrus.DebugLevel:
		c.Debug(args...)
	case logrus.WarnLevel:
		c.Warn(args...)
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		c.Error(args...)
	default:
		c.Info(args...)
	}
}

// Printf implements logger interface
func (c *CatchLogger) Printf(level logrus.Level, format string, args ...interface{}) {
	c.Print(level, fmt.Sprintf(format, args...))
}

// WriteString implements logger interface
func (c *CatchLogger) WriteString(level logrus.Level, message string) {
	c.add("RAW", message)
}

// SetLevel implements logger interface
func (c *CatchLogger) SetLevel(level logrus.Level) {}

// GetLevel implements logger interface
func (c *CatchLogger) GetLevel() logrus.Level {
	return logrus.DebugLevel
}
