package log

import (
	"github.com/sirupsen/logrus"
)

// Logger defines the common logging interface
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	Done(args ...interface{})
	Donef(format string, args ...interface{})

	Fail(args ...interface{})
	Failf(format string, args ...interface{})

	Print(level logrus.Level, args ...interface{})
	Printf(level logrus.Level, format string, args ...interface{})

	// WriteString writes the message as is without any tag or newline
	WriteString(level logrus.Level, message string)

	SetLevel(level logrus.Level)
	GetLevel() logrus.Level
}

type logFunctionType uint32

const (
	debugFn logFunctionType = iota
	infoFn
	warnFn
	errorFn
	fatalFn
	doneFn
	failFn
)

func fnTypeForLevel(level logrus.Level) logFunctionType {
	switch level {
	case logrus.DebugLevel:
		return debugFn
	case logrus.WarnLevel:
		return warnFn
	case logrus.ErrorLevel:
		return errorFn
	case logrus.FatalLevel, logrus.PanicLevel:
		return fatalFn
	}

	return infoFn
}
