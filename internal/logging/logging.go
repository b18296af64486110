// Package logging wraps the process-wide structured logger. Engines never
// log; only the transport and the CLI do, so a package-level logger is
// sufficient.
package logging

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

var defaultLogger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
	Level:           charmlog.InfoLevel,
})

// Config selects level and output format.
type Config struct {
	Level string
	JSON  bool
}

// Setup reconfigures the process logger.
func Setup(cfg Config) {
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           parseLevel(cfg.Level),
	})
	if cfg.JSON {
		logger.SetFormatter(charmlog.JSONFormatter)
	}
	defaultLogger = logger
}

func parseLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	}
	return charmlog.InfoLevel
}

func Debug(msg string, keyvals ...any) { defaultLogger.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { defaultLogger.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { defaultLogger.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { defaultLogger.Error(msg, keyvals...) }
