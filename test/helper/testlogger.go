// Package helper provides shared test utilities.
package helper

import (
	"fmt"
	"strings"
	"sync"

	"github.com/LerianStudio/lib-commons/commons/log"
)

// LogEntry represents a single log entry
type LogEntry struct {
	Level   string
	Message string
}

// TestLogger implements log.Logger and records entries for assertions.
type TestLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewTestLogger creates a new recording logger.
func NewTestLogger() *TestLogger {
	return &TestLogger{entries: make([]LogEntry, 0)}
}

// Logger returns the test logger as a *log.Logger for injection.
func (l *TestLogger) Logger() *log.Logger {
	var lg log.Logger = l
	return &lg
}

func (l *TestLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, LogEntry{Level: level, Message: msg})
}

func (l *TestLogger) recordf(level, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.record(level, msg)
}

// Entries returns a copy of the recorded entries.
func (l *TestLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Contains reports whether any entry at level contains all substrings.
func (l *TestLogger) Contains(level string, substrings ...string) bool {
	for _, e := range l.Entries() {
		if e.Level != level {
			continue
		}

		all := true

		for _, s := range substrings {
			if !strings.Contains(e.Message, s) {
				all = false
				break
			}
		}

		if all {
			return true
		}
	}

	return false
}

func (l *TestLogger) Debug(args ...any) { l.record("DEBUG", fmt.Sprint(args...)) }
func (l *TestLogger) Info(args ...any)  { l.record("INFO", fmt.Sprint(args...)) }
func (l *TestLogger) Warn(args ...any)  { l.record("WARN", fmt.Sprint(args...)) }
func (l *TestLogger) Error(args ...any) { l.record("ERROR", fmt.Sprint(args...)) }
func (l *TestLogger) Fatal(args ...any) { l.record("FATAL", fmt.Sprint(args...)) }

func (l *TestLogger) Debugf(format string, args ...any) { l.recordf("DEBUG", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.recordf("INFO", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.recordf("WARN", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.recordf("ERROR", format, args...) }
func (l *TestLogger) Fatalf(format string, args ...any) { l.recordf("FATAL", format, args...) }

func (l *TestLogger) Debugln(args ...any) { l.record("DEBUG", fmt.Sprintln(args...)) }
func (l *TestLogger) Infoln(args ...any)  { l.record("INFO", fmt.Sprintln(args...)) }
func (l *TestLogger) Warnln(args ...any)  { l.record("WARN", fmt.Sprintln(args...)) }
func (l *TestLogger) Errorln(args ...any) { l.record("ERROR", fmt.Sprintln(args...)) }
func (l *TestLogger) Fatalln(args ...any) { l.record("FATAL", fmt.Sprintln(args...)) }

// WithField implements log.Logger
func (l *TestLogger) WithField(_ string, _ any) log.Logger {
	return l
}

// WithFields implements log.Logger
func (l *TestLogger) WithFields(_ ...any) log.Logger {
	return l
}

// Sync implements log.Logger
func (l *TestLogger) Sync() error {
	return nil
}

// WithDefaultMessageTemplate implements log.Logger
func (l *TestLogger) WithDefaultMessageTemplate(_ string) log.Logger {
	return l
}
