// Package logger holds the process-wide charmbracelet logger. Every helper is
// a no-op until Init or InitStderr has run, so packages can log from tests
// without setup.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/chime/internal/constants"
)

// Logger is the global logger instance
var Logger *log.Logger

// logPath is the rotating file behind Logger, empty for stderr-only logging.
var logPath string

type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet keeps debug output off stderr, for the TUI which owns the terminal
	Quiet bool
}

// Init logs to <ConfigDir>/logs/chime.log, rotated by lumberjack. Debug
// lowers the level and mirrors to stderr unless Quiet.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	path := filepath.Join(logDir, constants.AppName+".log")
	var w io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes; two records never need more
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
	if cfg.Debug && !cfg.Quiet {
		w = io.MultiWriter(os.Stderr, w)
	}

	install(w, cfg.Debug, cfg.Debug)
	logPath = path
	return nil
}

// InitStderr installs a stderr-only logger, for when the config directory
// cannot hold a log file.
func InitStderr(debug bool) {
	install(os.Stderr, debug, false)
	logPath = ""
}

// Path returns the current log file, or "" when logging to stderr only.
func Path() string {
	return logPath
}

func install(w io.Writer, debug, caller bool) {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    caller,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
}

// logAt and its exported callers are marked as helpers so caller reporting
// points at the code that logged.
func logAt(level log.Level, msg string, keyvals []interface{}) {
	l := Logger
	if l == nil {
		return
	}
	l.Helper()
	l.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Helper()
	}
	logAt(log.DebugLevel, msg, keyvals)
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Helper()
	}
	logAt(log.InfoLevel, msg, keyvals)
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Helper()
	}
	logAt(log.WarnLevel, msg, keyvals)
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Helper()
	}
	logAt(log.ErrorLevel, msg, keyvals)
}
