package options

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Level string
	File  string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn or error. Defaults to log_level from config.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Append logs to this file instead of stderr.")
}

// Logger builds the slog logger. fallback is the configured level, used
// when --log-level is empty. The returned closer releases the log file.
func (o *LogOptions) Logger(fallback string, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(o.Level, fallback)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = stderr
	var closer io.Closer = nopCloser{}
	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), closer, nil
}

// ParseLevel reads level, or fallback when level is blank.
func ParseLevel(level, fallback string) (slog.Level, error) {
	v := strings.TrimSpace(level)
	if v == "" {
		v = strings.TrimSpace(fallback)
	}
	if v == "" {
		return slog.LevelWarn, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", v)
	}
	return l, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
