package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/sagarc03/assetry/config"
)

// setupLogging installs the default logger for cfg and routes the standard
// library logger (used by net/http for connection errors) through it.
func setupLogging(cfg *config.Config) {
	var out io.Writer = os.Stderr
	if cfg.Production() {
		out = os.Stdout
	}

	slog.SetDefault(slog.New(newLogHandler(out, cfg)))

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo).Writer())
}

// newLogHandler writes JSON with a UTC "ts" key in production and colored
// text elsewhere.
func newLogHandler(w io.Writer, cfg *config.Config) slog.Handler {
	level := cfg.Log.SlogLevel(cfg.Production())

	if cfg.Production() {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  true,
		TimeFormat: "15:04:05.000",
		NoColor:    w != os.Stderr,
	})
}
