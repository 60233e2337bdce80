package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the default log file, relative to the working directory (project root when run via go run ./cmd/game).
const LogFilePath = "logs/selection.txt"

// MaxLines is how many recent entries the in-memory buffer keeps. The log file keeps everything.
const MaxLines = 500

// Logger is a zap logger whose entries also land in an in-memory line buffer the console draws.
// Log keeps the old plain-line entry point for console echo.
type Logger struct {
	*zap.Logger
	buf  *lineBuffer
	file *os.File
}

// New builds a logger at level ("debug", "info", "warn", ...). Entries are appended to path when it
// is not empty, creating its directory; they always go to the line buffer.
func New(level, path string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", level)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeCaller = nil
	enc.CallerKey = ""

	buf := newLineBuffer(MaxLines)
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(buf), lvl),
	}

	l := &Logger{buf: buf}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "create log directory")
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		l.file = f
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(f), lvl))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...))
	return l, nil
}

// Log records a plain line at info level.
func (l *Logger) Log(line string) {
	l.Info(line)
}

// Lines returns a copy of the buffered lines, oldest first.
func (l *Logger) Lines() []string {
	return l.buf.snapshot()
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return errors.Wrap(err, "close log file")
}

// lineBuffer is a WriteSyncer that keeps the most recent encoded entries, one line each, in a ring.
type lineBuffer struct {
	mu    sync.Mutex
	lines []string
	next  int
	max   int
}

func newLineBuffer(max int) *lineBuffer {
	return &lineBuffer{lines: make([]string, 0, max), max: max}
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	b.mu.Lock()
	if len(b.lines) < b.max {
		b.lines = append(b.lines, line)
	} else {
		b.lines[b.next] = line
	}
	b.next = (b.next + 1) % b.max
	b.mu.Unlock()
	return len(p), nil
}

func (b *lineBuffer) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.lines))
	if len(b.lines) < b.max {
		return append(out, b.lines...)
	}
	out = append(out, b.lines[b.next:]...)
	return append(out, b.lines[:b.next]...)
}
