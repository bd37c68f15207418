package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	ct "github.com/daviddengcn/go-colortext"
	"github.com/sirupsen/logrus"
)

type stdoutLogger struct {
	logMutex sync.Mutex
	level    logrus.Level

	stdout io.Writer
	stderr io.Writer
	colors bool

	sinks []Logger
}

type fnTypeInformation struct {
	tag      string
	color    ct.Color
	logLevel logrus.Level
	errorOut bool
}

var fnTypeInformationMap = map[logFunctionType]*fnTypeInformation{
	debugFn: {
		tag:      "[debug]  ",
		color:    ct.Green,
		logLevel: logrus.DebugLevel,
	},
	infoFn: {
		tag:      "[info]   ",
		color:    ct.Cyan,
		logLevel: logrus.InfoLevel,
	},
	warnFn: {
		tag:      "[warn]   ",
		color:    ct.Magenta,
		logLevel: logrus.WarnLevel,
	},
	errorFn: {
		tag:      "[error]  ",
		color:    ct.Red,
		logLevel: logrus.ErrorLevel,
		errorOut: true,
	},
	fatalFn: {
		tag:      "[fatal]  ",
		color:    ct.Red,
		logLevel: logrus.FatalLevel,
		errorOut: true,
	},
	doneFn: {
		tag:      "[done] √ ",
		color:    ct.Green,
		logLevel: logrus.InfoLevel,
	},
	failFn: {
		tag:      "[fail] X ",
		color:    ct.Red,
		logLevel: logrus.ErrorLevel,
	},
}

// NewStdoutLogger creates a new logger that writes coloured output to stdout and stderr
func NewStdoutLogger(level logrus.Level, colors bool) Logger {
	return &stdoutLogger{
		level:  level,
		stdout: os.Stdout,
		stderr: os.Stderr,
		colors: colors,
	}
}

// NewStreamLogger creates a new logger that writes everything uncoloured to the given writer
func NewStreamLogger(writer io.Writer, level logrus.Level) Logger {
	return &stdoutLogger{
		level:  level,
		stdout: writer,
		stderr: writer,
	}
}

// AddSink adds a logger that receives every message this logger prints
func AddSink(logger Logger, sink Logger) {
	if s, ok := logger.(*stdoutLogger); ok {
		s.logMutex.Lock()
		defer s.logMutex.Unlock()

		s.sinks = append(s.sinks, sink)
	}
}

func (s *stdoutLogger) writeMessage(fnType logFunctionType, message string) {
	fnInformation := fnTypeInformationMap[fnType]
	if s.level < fnInformation.logLevel {
		return
	}

	stream := s.stdout
	if fnInformation.errorOut {
		stream = s.stderr
	}

	// go-colortext always writes the escape codes to os.Stdout
	if s.colors && stream == os.Stdout {
		ct.Foreground(fnInformation.color, false)
		_, _ = stream.Write([]byte(fnInformation.tag))
		ct.ResetColor()
	} else {
		_, _ = stream.Write([]byte(fnInformation.tag))
	}

	_, _ = stream.Write([]byte(message))

	for _, sink := range s.sinks {
		sink.Print(fnInformation.logLevel, strings.TrimSuffix(message, "\n"))
	}
}

func (s *stdoutLogger) log(fnType logFunctionType, message string) {
	s.logMutex.Lock()
	defer s.logMutex.Unlock()

	s.writeMessage(fnType, message)
}

func (s *stdoutLogger) Debug(args ...interface{}) {
	s.log(debugFn, fmt.Sprintln(args...))
}

func (s *stdoutLogger) Debugf(format string, args ...interface{}) {
	s.log(debugFn, fmt.Sprintf(format, args...)+"\n")
}

func (s *stdoutLogger) Info(args ...interface{}) {
	s.log(infoFn, fmt.Sprintln(args...))
}

func (s *stdoutLogger) Infof(format string, args ...interface{}) {
	s.log(infoFn, fmt.Sprintf(format, args...)+"\n")
}

func (s *stdoutLogger) Warn(args ...interface{}) {
	s.log(warnFn, fmt.Sprintln(args...))
}

func (s *stdoutLogger) Warnf(format string, args ...interface{}) {
	s.log(warnFn, fmt.Sprintf(format, args...)+"\n")
}

func (s *stdoutLogger) Error(args ...interface{}) {
	s.log(errorFn, fmt.Sprintln(args...))
}

func (s *stdoutLogger) Errorf(format string, args ...interface{}) {
	s.log(errorFn, fmt.Sprintf(format, args...)+"\n")
}

func (s *stdoutLogger) Fatal(args ...interface{}) {
	s.log(fatalFn, fmt.Sprintln(args...))
	os.Exit(1)
}

func (s *stdoutLogger) Fatalf(format string, args ...interface{}) {
	s.log(fatalFn, fmt.Sprintf(format, args...)+"\n")
	os.Exit(1)
}

func (s *stdoutLogger) Done(args ...interface{}) {
	s.log(doneFn, fmt.Sprintln(args...))
}

func (s *stdoutLogger) Donef(format string, args ...interface{}) {
	s.log(doneFn, fmt.Sprintf(format, args...)+"\n")
}

func (s *stdoutLogger) Fail(args ...interface{}) {
	s.log(failFn, fmt.Sprintln(args...))
}

func (s *stdoutLogger) Failf(format string, args ...interface{}) {
	s.log(failFn, fmt.Sprintf(format, args...)+"\n")
}

func (s *stdoutLogger) Print(level logrus.Level, args ...interface{}) {
	s.log(fnTypeForLevel(level), fmt.Sprintln(args...))
}

func (s *stdoutLogger) Printf(level logrus.Level, format string, args ...interface{}) {
	s.log(fnTypeForLevel(level), fmt.Sprintf(format, args...)+"\n")
}

func (s *stdoutLogger) WriteString(level logrus.Level, message string) {
	s.logMutex.Lock()
	defer s.logMutex.Unlock()

	if s.level < level {
		return
	}

	stream := s.stdout
	if level <= logrus.ErrorLevel {
		stream = s.stderr
	}
	_, _ = stream.Write([]byte(message))
}

func (s *stdoutLogger) SetLevel(level logrus.Level) {
	s.logMutex.Lock()
	defer s.logMutex.Unlock()

	s.level = level
}

func (s *stdoutLogger) GetLevel() logrus.Level {
	s.logMutex.Lock()
	defer s.logMutex.Unlock()

	return s.level
}
