// Package logging builds the zerolog logger shared by the services and the
// command layer.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const permission = 0o664

// Builder assembles a logger from an optional writer, file path and level.
type Builder struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// Logger is a built logger plus the file it may own.
type Logger struct {
	zerolog.Logger
	file *os.File
}

func New() *Builder {
	return &Builder{writer: io.Discard, level: zerolog.InfoLevel}
}

func (b *Builder) FromWriter(w io.Writer) *Builder {
	if w != nil {
		b.writer = w
	}
	return b
}

// FromPath appends to path instead of the writer.
func (b *Builder) FromPath(path string) *Builder {
	b.path = path
	return b
}

func (b *Builder) WithLevel(level zerolog.Level) *Builder {
	b.level = level
	return b
}

func (b *Builder) Make() (*Logger, error) {
	out := &Logger{}
	w := b.writer
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		out.file = f
		w = zerolog.SyncWriter(f)
	}
	out.Logger = zerolog.New(w).Level(b.level).With().Timestamp().Logger()
	return out, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// Nop is a logger that writes nothing.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
