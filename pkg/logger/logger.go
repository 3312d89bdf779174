package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Level represents the severity of a log message
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config holds logger configuration
type Config struct {
	Level    Level
	Writer   io.Writer
	NoColor  bool
	ShowTime bool
}

var (
	mu  sync.RWMutex
	cfg = Config{
		Level:    InfoLevel,
		Writer:   os.Stdout,
		ShowTime: true,
	}
	defaultLogger = New(cfg)
)

// New creates a console logger with the given configuration
func New(c Config) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        c.Writer,
		NoColor:    c.NoColor,
		TimeFormat: "15:04:05",
	}
	if !c.ShowTime {
		w.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	return zerolog.New(w).Level(c.Level).With().Timestamp().Logger()
}

// Configure replaces the default logger configuration
func Configure(c Config) {
	if c.Writer == nil {
		c.Writer = os.Stdout
	}
	mu.Lock()
	cfg = c
	defaultLogger = New(c)
	mu.Unlock()
	color.NoColor = c.NoColor
}

// Get returns the default logger for injection into components
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// WithPrefix returns a logger tagged with a component name
func WithPrefix(prefix string) zerolog.Logger {
	return Get().With().Str("component", prefix).Logger()
}

func current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

func output() io.Writer {
	return current().Writer
}

// Helper methods for the default logger
func Debugf(format string, args ...interface{}) { log(DebugLevel, fmt.Sprintf(format, args...)) }
func Info(args ...interface{})                  { log(InfoLevel, fmt.Sprint(args...)) }
func Infof(format string, args ...interface{})  { log(InfoLevel, fmt.Sprintf(format, args...)) }
func Warn(args ...interface{})                  { log(WarnLevel, fmt.Sprint(args...)) }
func Warnf(format string, args ...interface{})  { log(WarnLevel, fmt.Sprintf(format, args...)) }
func Error(args ...interface{})                 { log(ErrorLevel, fmt.Sprint(args...)) }
func Errorf(format string, args ...interface{}) { log(ErrorLevel, fmt.Sprintf(format, args...)) }

func log(level Level, msg string) {
	l := Get()
	l.WithLevel(level).Msg(msg)
}

// ParseLevel parses a string log level
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}
