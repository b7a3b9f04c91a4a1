package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogFileName is the name of the log file within the log directory.
const LogFileName = "texsnip.log"

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// indentStep is the number of spaces added per nested log group.
const indentStep = 2

// indentTracker holds the nesting depth shared by a logger and all of its
// child loggers, so groups opened on one child indent messages on another.
type indentTracker struct {
	mu    sync.Mutex
	depth int
}

func (t *indentTracker) enter() {
	t.mu.Lock()
	t.depth += indentStep
	t.mu.Unlock()
}

func (t *indentTracker) exit() {
	t.mu.Lock()
	if t.depth >= indentStep {
		t.depth -= indentStep
	}
	t.mu.Unlock()
}

func (t *indentTracker) prefix() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Repeat(" ", t.depth)
}

// Logger provides structured logging with nested groups and call-site
// attribution. Records carry the file and line of the caller of the exported
// method, not of this wrapper, so log output points at the code that actually
// triggered the message.
type Logger struct {
	handler slog.Handler
	closer  io.Closer // file or rotating writer sink, nil for stderr/buffer
	attrs   []slog.Attr
	indent  *indentTracker
}

// NewLogger creates a new Logger that writes JSON-formatted logs to
// {logDir}/texsnip.log. The directory is created if needed.
//
// The level parameter controls which messages are logged:
//   - DEBUG: All messages
//   - INFO: Info, Warn, and Error messages
//   - WARN: Warn and Error messages
//   - ERROR: Only Error messages
//
// If logDir is empty, logs are written to stderr.
func NewLogger(logDir string, level string) (*Logger, error) {
	var writer io.Writer
	var closer io.Closer

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		logPath := filepath.Join(logDir, LogFileName)
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = file
		closer = file
	} else {
		writer = os.Stderr
	}

	return &Logger{
		handler: newHandler(writer, level),
		closer:  closer,
		indent:  &indentTracker{},
	}, nil
}

// NewLoggerWithRotation creates a Logger whose file sink rotates when it
// exceeds the configured size. If logDir is empty, logs go to stderr and no
// rotation takes place.
func NewLoggerWithRotation(logDir string, level string, cfg RotationConfig) (*Logger, error) {
	if logDir == "" {
		return NewLogger("", level)
	}

	rw, err := NewRotatingWriter(filepath.Join(logDir, LogFileName), cfg)
	if err != nil {
		return nil, err
	}

	return &Logger{
		handler: newHandler(rw, level),
		closer:  rw,
		indent:  &indentTracker{},
	}, nil
}

// NewBufferedLogger creates a Logger whose records are retained in a bounded
// CycleBuffer instead of being written to a sink. The buffer keeps at most
// capacity records, dropping the oldest, and can be flushed to the host
// application's message surface once the run completes.
func NewBufferedLogger(capacity int, level string) (*Logger, *CycleBuffer) {
	buf := NewCycleBuffer(capacity, parseLevel(level))
	return &Logger{
		handler: buf,
		indent:  &indentTracker{},
	}, buf
}

// newHandler builds the JSON slog handler for a sink. AddSource is enabled:
// records carry the program counter captured at the original call site.
func newHandler(w io.Writer, level string) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	})
}

// parseLevel converts a string log level to slog.Level.
// Defaults to INFO if the level string is not recognized.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a new Logger with arbitrary key-value attributes.
// Keys and values are provided as alternating arguments. The child shares
// the parent's sink and indentation state.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	newAttrs := make([]slog.Attr, 0, len(l.attrs)+len(args)/2)
	newAttrs = append(newAttrs, l.attrs...)

	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		newAttrs = append(newAttrs, slog.Any(key, args[i+1]))
	}

	return &Logger{
		handler: l.handler,
		closer:  l.closer,
		attrs:   newAttrs,
		indent:  l.indent,
	}
}

// WithComponent returns a new Logger with the component name added to all
// log entries.
func (l *Logger) WithComponent(name string) *Logger {
	return l.With("component", name)
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, 3, msg, args...)
}

// Info logs a message at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, 3, msg, args...)
}

// Warn logs a message at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, 3, msg, args...)
}

// Error logs a message at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, 3, msg, args...)
}

// Begin opens a nested log group at the given level. The header message is
// logged immediately at the current indentation; everything logged until the
// returned func is called is indented one step further. Calling the returned
// func logs the header again with a "done" suffix, or "failed" when a
// non-nil error is passed, and restores the previous indentation.
//
//	end := logger.BeginInfo("compiling snippet")
//	defer func() { end(err) }()
func (l *Logger) Begin(level slog.Level, msg string) func(err error) {
	return l.begin(level, 4, msg)
}

// BeginDebug opens a nested log group at DEBUG level.
func (l *Logger) BeginDebug(msg string) func(err error) {
	return l.begin(slog.LevelDebug, 4, msg)
}

// BeginInfo opens a nested log group at INFO level.
func (l *Logger) BeginInfo(msg string) func(err error) {
	return l.begin(slog.LevelInfo, 4, msg)
}

// BeginWarn opens a nested log group at WARN level.
func (l *Logger) BeginWarn(msg string) func(err error) {
	return l.begin(slog.LevelWarn, 4, msg)
}

// BeginError opens a nested log group at ERROR level.
func (l *Logger) BeginError(msg string) func(err error) {
	return l.begin(slog.LevelError, 4, msg)
}

func (l *Logger) begin(level slog.Level, depth int, msg string) func(err error) {
	l.log(level, depth, msg)
	l.indent.enter()

	return func(err error) {
		l.indent.exit()
		result := "done"
		if err != nil {
			result = "failed"
		}
		l.log(level, 3, strings.TrimSpace(msg)+" "+result)
	}
}

// log builds a record carrying the caller's program counter and hands it to
// the handler. depth is the number of frames between runtime.Callers and the
// original call site; exported methods calling log directly pass 3
// ([Callers, log, exported method]).
func (l *Logger) log(level slog.Level, depth int, msg string, args ...any) {
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(depth, pcs[:])

	r := slog.NewRecord(time.Now(), level, l.indent.prefix()+msg, pcs[0])
	r.AddAttrs(l.attrs...)
	r.Add(args...)
	_ = l.handler.Handle(ctx, r)
}

// Close flushes and closes the log sink. For stderr or buffered loggers this
// is a no-op.
func (l *Logger) Close() error {
	if l.closer != nil {
		if err := l.closer.Close(); err != nil {
			return fmt.Errorf("failed to close log sink: %w", err)
		}
		l.closer = nil
	}
	return nil
}

// NopLogger returns a Logger that discards all log output.
// Useful for testing or when logging is disabled.
func NopLogger() *Logger {
	return &Logger{
		handler: slog.NewJSONHandler(io.Discard, nil),
		indent:  &indentTracker{},
	}
}

// ParseLevel converts a string level to the corresponding constant.
// Returns LevelInfo if the level string is not recognized.
func ParseLevel(level string) string {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return LevelDebug
	case LevelInfo:
		return LevelInfo
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevels returns the list of valid log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
