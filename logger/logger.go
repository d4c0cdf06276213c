package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	mu  sync.Mutex
	log *zerolog.Logger
)

// New builds a console logger on out that drops events below level.
func New(out io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = timeFormat
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}).
		Level(level).With().Timestamp().Logger()
}

// Setup replaces the process logger. Simulation runs log through whatever
// logger they are handed, so this only matters for main and tools.
func Setup(out io.Writer, level zerolog.Level) *zerolog.Logger {
	l := New(out, level)
	mu.Lock()
	log = &l
	mu.Unlock()
	return &l
}

// Get returns the process logger, an info level stderr logger until Setup runs.
func Get() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		l := New(os.Stderr, zerolog.InfoLevel)
		log = &l
	}
	return log
}

// ParseLevel maps a log_level setting to a level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}
