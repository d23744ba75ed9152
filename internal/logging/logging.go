// Package logging provides the driver's process-wide logging, built
// directly on the standard library log package the way
// cmd/go-dws-lsp/main.go's setupLogging configures it, generalized with
// severity filtering and a subscriber hook for the $/logTrace bridge.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is an ordered log severity, matching the NCC_LOG_LEVEL scale.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Emergency
	Raw
)

func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Notice:
		return "NOTICE"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	case Alert:
		return "ALERT"
	case Emergency:
		return "EMERGENCY"
	case Raw:
		return "RAW"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps an NCC_LOG_LEVEL string (case-insensitive) to a Level.
// Unknown names fall back to Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "trace":
		return Trace
	case "debug":
		return Debug
	case "info":
		return Info
	case "notice":
		return Notice
	case "warning", "warn":
		return Warning
	case "error":
		return Error
	case "critical":
		return Critical
	case "alert":
		return Alert
	case "emergency":
		return Emergency
	case "raw":
		return Raw
	default:
		return Info
	}
}

// Record is one log event, passed to subscribers registered via
// Logger.Subscribe.
type Record struct {
	Level   Level
	Logger  string
	Message string
}

// Subscriber receives every record at or above the logger's threshold.
// Used by internal/lspserver to mirror records into $/logTrace
// notifications without internal/logging depending on the RPC layer.
type Subscriber func(Record)

// Logger wraps a standard library *log.Logger with severity filtering
// and a subscriber list. Safe for concurrent use.
type Logger struct {
	mu          sync.Mutex
	name        string
	threshold   Level
	std         *log.Logger
	subscribers []Subscriber
}

// New creates a named Logger writing to w at the given flags, filtering
// out records below threshold.
func New(name string, threshold Level, w io.Writer, flags int) *Logger {
	return &Logger{
		name:      name,
		threshold: threshold,
		std:       log.New(w, "", flags),
	}
}

// NewStderr creates a Logger with the teacher's default flags
// (log.LstdFlags|log.Lshortfile) writing to stderr.
func NewStderr(name string, threshold Level) *Logger {
	return New(name, threshold, os.Stderr, log.LstdFlags|log.Lshortfile)
}

// Named returns a sub-logger sharing this Logger's sink, threshold and
// subscribers but tagged with name (e.g. "no3.lsp", "no3.manifest").
func (l *Logger) Named(name string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	return &Logger{
		name:      l.name + "." + name,
		threshold: l.threshold,
		std:       l.std,
		// subscribers is copied as a slice header at construction time,
		// so this sub-logger sees only the subscribers registered on the
		// parent so far; a later Subscribe on the parent is not observed
		// here. Subscribe is expected to be called on the root logger
		// before sub-loggers are minted.
		subscribers: l.subscribers,
	}
}

// SetThreshold changes the minimum level this logger emits.
func (l *Logger) SetThreshold(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.threshold = level
}

// SetOutput redirects the backing sink, e.g. to a --log-file or away
// from stdout when the stdio transport reserves stdout for protocol
// frames.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.std.SetOutput(w)
}

// Subscribe registers a callback invoked for every record this logger
// (or any logger minted from it afterward) emits at or above its
// threshold.
func (l *Logger) Subscribe(sub Subscriber) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, sub)
}

func (l *Logger) emit(level Level, msg string) {
	l.mu.Lock()
	if level < l.threshold {
		l.mu.Unlock()
		return
	}
	subs := l.subscribers
	l.mu.Unlock()

	l.std.Printf("[%s] %s: %s", level, l.name, msg)

	for _, sub := range subs {
		sub(Record{Level: level, Logger: l.name, Message: msg})
	}
}

func (l *Logger) Tracef(format string, args ...any)     { l.emit(Trace, fmt.Sprintf(format, args...)) }
func (l *Logger) Debugf(format string, args ...any)     { l.emit(Debug, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)      { l.emit(Info, fmt.Sprintf(format, args...)) }
func (l *Logger) Noticef(format string, args ...any)    { l.emit(Notice, fmt.Sprintf(format, args...)) }
func (l *Logger) Warningf(format string, args ...any)   { l.emit(Warning, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any)     { l.emit(Error, fmt.Sprintf(format, args...)) }
func (l *Logger) Criticalf(format string, args ...any)  { l.emit(Critical, fmt.Sprintf(format, args...)) }
func (l *Logger) Alertf(format string, args ...any)     { l.emit(Alert, fmt.Sprintf(format, args...)) }
func (l *Logger) Emergencyf(format string, args ...any) { l.emit(Emergency, fmt.Sprintf(format, args...)) }

// Rawf emits at the Raw level, the highest on the severity scale.
func (l *Logger) Rawf(format string, args ...any) { l.emit(Raw, fmt.Sprintf(format, args...)) }
