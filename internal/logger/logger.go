package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogFilePath is the log file, relative to the working directory.
const LogFilePath = "logs/colorscene.txt"

// maxLines bounds the in-memory history kept for the on-screen log.
const maxLines = 200

// Logger writes structured entries through logrus (to the log file and stderr) and keeps
// the most recent formatted lines in memory so the HUD can draw them.
type Logger struct {
	*logrus.Logger

	mu    sync.Mutex
	lines []string
}

// New returns a Logger that appends to LogFilePath (creating logs/) and mirrors to stderr.
// If the file cannot be opened, entries go to stderr only.
func New() *Logger {
	var out io.Writer = os.Stderr
	if err := os.MkdirAll(filepath.Dir(LogFilePath), 0755); err == nil {
		if f, err := os.OpenFile(LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			out = io.MultiWriter(f, os.Stderr)
		}
	}
	return NewWithWriter(out)
}

// NewWithWriter returns a Logger that writes to w. Used by tests and tools.
func NewWithWriter(w io.Writer) *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	l.AddHook(&historyHook{l: l})
	return l
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns at most n of the newest lines.
func (l *Logger) Tail(n int) []string {
	lines := l.Lines()
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func (l *Logger) remember(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()
}

// historyHook records a short "[level] message k=v" form of every entry.
type historyHook struct {
	l *Logger
}

func (h *historyHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *historyHook) Fire(e *logrus.Entry) error {
	line := fmt.Sprintf("[%s] %s", e.Level, e.Message)
	for _, k := range sortedKeys(e.Data) {
		line += fmt.Sprintf(" %s=%v", k, e.Data[k])
	}
	h.l.remember(line)
	return nil
}

func sortedKeys(fields logrus.Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
