// Package logger provides structured logging using zap. Until Setup runs the
// package-level loggers discard everything, so library code and tests can
// log unconditionally.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance.
var Log = zap.NewNop()

// Sugar is the sugared logger for convenient logging.
var Sugar = Log.Sugar()

// level gates every core built by Setup and can be changed while running.
var level = zap.NewAtomicLevel()

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// FileConfig holds rotating log file settings.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default rotation settings for path.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Options selects where and how log entries are written.
type Options struct {
	Level   string
	Format  string // console (default) or json
	Console bool   // write to stderr
	File    FileConfig
}

// Init sets up stderr logging plus an optional rotating file. Console
// output goes to stderr so exports written to stdout stay clean.
func Init(lvl, logFile string) error {
	opt := Options{Level: lvl, Console: true}
	if logFile != "" {
		opt.File = DefaultFileConfig(logFile)
	}
	return Setup(opt)
}

// Setup replaces the global loggers according to opt.
func Setup(opt Options) error {
	lvl, err := ParseLevel(opt.Level)
	if err != nil {
		return err
	}
	if opt.Format != "" && opt.Format != FormatConsole && opt.Format != FormatJSON {
		return fmt.Errorf("unknown log format %q", opt.Format)
	}
	level.SetLevel(lvl)

	var cores []zapcore.Core
	if opt.Console {
		cores = append(cores, zapcore.NewCore(
			newEncoder(opt.Format, true),
			zapcore.Lock(os.Stderr),
			level,
		))
	}
	if opt.File.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   opt.File.Path,
			MaxSize:    opt.File.MaxSizeMB,
			MaxBackups: opt.File.MaxBackups,
			MaxAge:     opt.File.MaxAgeDays,
			Compress:   opt.File.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			newEncoder(opt.Format, false),
			zapcore.AddSync(rotator),
			level,
		))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()
	return nil
}

func newEncoder(format string, terminal bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	if format == FormatJSON {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	if terminal {
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// ParseLevel converts a level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// SetLevel changes the level of the running loggers.
func SetLevel(s string) error {
	lvl, err := ParseLevel(s)
	if err != nil {
		return err
	}
	level.SetLevel(lvl)
	return nil
}

// Level returns the shared level. It doubles as an HTTP handler that
// reports and changes the level.
func Level() zap.AtomicLevel {
	return level
}

// Named returns a child logger for one subsystem, e.g. "scenegraph" or
// "inspect". Callers should fetch it at log time rather than cache it, so
// a later Setup is picked up.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Reset discards all output again. Tests use it to undo Setup.
func Reset() {
	Sync()
	Log = zap.NewNop()
	Sugar = Log.Sugar()
	level.SetLevel(zapcore.InfoLevel)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
