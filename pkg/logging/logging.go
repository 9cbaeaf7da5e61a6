// Package logging configures the structured loggers of the tool
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

type Config struct {
	// debug, info, warn or error
	Level string

	// If not empty, records are also written as JSON lines to this file
	File string
}

// Parses a level name
func ParseLevel(level string) (slog.Level, error) {
	var result slog.Level

	if err := result.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level '%v': %w", level, err)
	}

	return result, nil
}

// Returns a logger writing text records to console and, if configured, JSON records to the
// log file. The returned closer releases the log file
func New(config Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo

	if len(config.Level) > 0 {
		var err error

		if level, err = ParseLevel(config.Level); err != nil {
			return nil, nil, err
		}
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}

	var closer io.Closer = nopCloser{}

	if len(config.File) > 0 {
		file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)

		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = file
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
