// Package logging builds the slog loggers used across cubebrowser.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.trai.ch/zerr"
)

// ErrUnknownLevel indicates a level name slog does not know.
var ErrUnknownLevel = zerr.New("logging: unknown level")

// New returns a logger writing to w. A nil writer logs to stderr.
func New(w io.Writer, level slog.Level, json bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, zerr.With(zerr.Wrap(ErrUnknownLevel, fmt.Sprintf("cannot parse %q", name)), "level", name)
	}
	return level, nil
}

// Error logs err with its zerr metadata attached.
func Error(ctx context.Context, logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	zerr.Log(ctx, logger, err)
}
