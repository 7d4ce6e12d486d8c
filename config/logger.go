package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ParseLevel maps a level name to its log level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	case "crit":
		return log.LevelCrit, nil
	}

	return 0, fmt.Errorf("%q: %w", name, ErrBadLevel)
}

// NewLogger returns a terminal logger writing to w at the named level.
// Colour is used only when w is a terminal.
func NewLogger(w io.Writer, level string) (log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		useColor = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		if useColor {
			w = colorable.NewColorable(f)
		}
	}

	return log.NewLogger(log.NewTerminalHandlerWithLevel(w, lvl, useColor)), nil
}
