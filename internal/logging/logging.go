// internal/logging/logging.go
//
// zerolog setup for the server process.
//   - Level from LOG_LEVEL (invalid values keep info).
//   - JSON to stdout by default; human-readable ConsoleWriter with LOG_FORMAT=console.
//   - With LOG_FILE set, JSON lines are also written to a lumberjack rolling file.
//
// Setup replaces the global logger in github.com/rs/zerolog/log, which the rest
// of the server logs through.

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/config"
)

// Setup configures the global logger and returns it with a func that flushes
// and closes the log file (no-op without LOG_FILE).
func Setup(cfg config.Config) (zerolog.Logger, func()) {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.Config, stdout io.Writer) (zerolog.Logger, func()) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	var console io.Writer = stdout
	if strings.EqualFold(cfg.LogFormat, "console") {
		console = zerolog.ConsoleWriter{Out: stdout, TimeFormat: time.Kitchen}
	}

	closer := func() {}
	out := console
	if cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(console, file)
		closer = func() { _ = file.Close() }
	}

	logger := zerolog.New(out).With().Timestamp().Str("service", "brainbuzzer").Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger, closer
}
