package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/TheBunnyMan123/bunny-bot/bot"
)

// Options configures a Logger.
type Options struct {
	Level     string
	Format    string // "text" or "json"
	AddSource bool

	// Console receives every record. Nil means stdout.
	Console io.Writer

	// Dir enables a file sink that starts a new YYYY-MM-DD.log each day.
	Dir string
}

// Logger wraps slog.Logger to satisfy bot.Logger.
type Logger struct {
	logger *slog.Logger
	file   *dailyFile
}

// New creates a Logger from opts. It only fails when the log directory or
// today's file cannot be opened.
func New(opts Options) (*Logger, error) {
	var out io.Writer = os.Stdout
	if opts.Console != nil {
		out = opts.Console
	}

	var file *dailyFile
	if dir := strings.TrimSpace(opts.Dir); dir != "" {
		f, err := openDailyFile(dir, nil)
		if err != nil {
			return nil, err
		}
		file = f
		out = io.MultiWriter(out, f)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(opts.Level),
		AddSource: opts.AddSource,
	}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return &Logger{logger: slog.New(handler), file: file}, nil
}

// With returns a child logger with additional fields.
func (l *Logger) With(args ...any) bot.Logger {
	return &Logger{logger: l.logger.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close closes the file sink, if any. Children made by With share the
// parent's file and must not outlive it.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
