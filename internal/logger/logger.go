package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultLogFile is the console log path, relative to the workspace directory.
const DefaultLogFile = "logs/editor.txt"

// Level of a console entry.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Entry is one console line as stored in memory.
type Entry struct {
	Time  time.Time
	Level Level
	Text  string
}

// Logger is the editor console. It stores lines in memory, appends them to a file on disk when a
// path is set, and mirrors each line to a slog logger when one is set.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	path    string
	slog    *slog.Logger
}

// New returns a console writing to path (no file when path is empty) and mirroring to log
// (nothing mirrored when log is nil). The directory of path is created if needed.
func New(path string, log *slog.Logger) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, slog: log}
}

// Log appends an info line.
func (l *Logger) Log(line string) {
	l.append(LevelInfo, line)
	if l.slog != nil {
		l.slog.Info(line)
	}
}

// LogError appends an error line.
func (l *Logger) LogError(line string) {
	l.append(LevelError, line)
	if l.slog != nil {
		l.slog.Error(line)
	}
}

func (l *Logger) append(level Level, line string) {
	e := Entry{Time: time.Now(), Level: level, Text: line}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(format(e) + "\n")
	_ = f.Close()
}

// format prefixes an entry with [timestamp] and, for errors, the level.
func format(e Entry) string {
	stamped := "[" + e.Time.Format("2006-01-02 15:04:05") + "] "
	if e.Level == LevelError {
		stamped += "ERROR "
	}
	return stamped + e.Text
}

// Lines returns all stored lines, formatted as written to the log file.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = format(e)
	}
	return out
}

// Entries returns a copy of the stored entries, optionally filtered by level ("" for all).
func (l *Logger) Entries(level Level) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
