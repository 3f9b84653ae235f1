// Package logging carries the structured logger shared by the evaluator and
// the program driver, and renders conflicts for terminals.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
)

// Level orders log output from silent to trace.
type Level int

// Enumeration of the log levels
const (
	LevelSilent Level = iota // no output at all
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = map[string]Level{
	"silent":  LevelSilent,
	"error":   LevelError,
	"warning": LevelWarning,
	"info":    LevelInfo,
	"debug":   LevelDebug,
	"trace":   LevelTrace,
}

// ParseLevel maps a configuration name such as "debug" to its Level.
func ParseLevel(name string) (Level, error) {
	if lv, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lv, nil
	}
	return LevelSilent, fmt.Errorf("logging: unknown level %q", name)
}

func (l Level) String() string {
	for name, lv := range levelNames {
		if lv == l {
			return name
		}
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) pterm() pterm.LogLevel {
	switch l {
	case LevelError:
		return pterm.LogLevelError
	case LevelWarning:
		return pterm.LogLevelWarn
	case LevelInfo:
		return pterm.LogLevelInfo
	case LevelDebug:
		return pterm.LogLevelDebug
	case LevelTrace:
		return pterm.LogLevelTrace
	}
	return pterm.LogLevelDisabled
}

// Logger writes leveled, key/value structured messages. It is safe for
// concurrent use.
type Logger struct {
	m     sync.Mutex
	level Level
	w     io.Writer
	out   *pterm.Logger
}

// New creates a logger writing to w at the given level.
func New(level Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		level: level,
		w:     w,
		out:   pterm.DefaultLogger.WithLevel(level.pterm()).WithWriter(w),
	}
}

func (l *Logger) Level() Level { return l.level }

// Enabled reports whether messages at lv are written.
func (l *Logger) Enabled(lv Level) bool { return l != nil && lv != LevelSilent && lv <= l.level }

func (l *Logger) Error(msg string, kv ...any) { l.log(LevelError, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(LevelWarning, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(LevelInfo, msg, kv) }
func (l *Logger) Debug(msg string, kv ...any) { l.log(LevelDebug, msg, kv) }
func (l *Logger) Trace(msg string, kv ...any) { l.log(LevelTrace, msg, kv) }

func (l *Logger) log(lv Level, msg string, kv []any) {
	if !l.Enabled(lv) {
		return
	}
	l.m.Lock()
	defer l.m.Unlock()
	args := l.out.Args(kv...)
	switch lv {
	case LevelError:
		l.out.Error(msg, args)
	case LevelWarning:
		l.out.Warn(msg, args)
	case LevelInfo:
		l.out.Info(msg, args)
	case LevelDebug:
		l.out.Debug(msg, args)
	default:
		l.out.Trace(msg, args)
	}
}

var (
	defaultMu sync.RWMutex
	std       = New(LevelWarning, os.Stderr)
)

// Initialize replaces the shared logger with one at the named level.
func Initialize(levelName string, w io.Writer) error {
	lv, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	SetDefault(New(lv, w))
	return nil
}

// Default returns the shared logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return std
}

func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	std = l
	defaultMu.Unlock()
}
