package ulogger

import (
	"strings"
	"sync"
	"testing"
)

const (
	verboseDebug = iota
	verboseInfo
	verboseWarn
	verboseError
	verboseFatal
)

// VerboseTestLogger routes log lines to the test's own log, so they only show
// for failing tests or with -v.
type VerboseTestLogger struct {
	tb    testing.TB
	mutex sync.Mutex
	level int
}

func NewVerboseTestLogger(tb testing.TB) *VerboseTestLogger {
	return &VerboseTestLogger{tb: tb, level: verboseDebug}
}

func (l *VerboseTestLogger) LogLevel() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.level
}

func (l *VerboseTestLogger) SetLogLevel(level string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	switch strings.ToUpper(level) {
	case "DEBUG":
		l.level = verboseDebug
	case "WARN":
		l.level = verboseWarn
	case "ERROR":
		l.level = verboseError
	case "FATAL":
		l.level = verboseFatal
	default:
		l.level = verboseInfo
	}
}

func (l *VerboseTestLogger) New(_ string, _ ...Option) Logger {
	return l
}

func (l *VerboseTestLogger) Duplicate(_ ...Option) Logger {
	return l
}

func (l *VerboseTestLogger) logf(level int, prefix, format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if level < l.level {
		return
	}

	l.tb.Helper()
	l.tb.Logf(prefix+format, args...)
}

func (l *VerboseTestLogger) Debugf(format string, args ...interface{}) {
	l.logf(verboseDebug, "[DEBUG] ", format, args...)
}

func (l *VerboseTestLogger) Infof(format string, args ...interface{}) {
	l.logf(verboseInfo, "[INFO] ", format, args...)
}

func (l *VerboseTestLogger) Warnf(format string, args ...interface{}) {
	l.logf(verboseWarn, "[WARN] ", format, args...)
}

func (l *VerboseTestLogger) Errorf(format string, args ...interface{}) {
	l.logf(verboseError, "[ERROR] ", format, args...)
}

func (l *VerboseTestLogger) Fatalf(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.tb.Fatalf("[FATAL] "+format, args...)
}
