package bot

import "context"

// Logger is the minimal logging abstraction used across modules.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// WorkerPool limits concurrency for background tasks.
type WorkerPool interface {
	Submit(task func()) error
	SubmitWait(task func() error) error
	SubmitWaitContext(ctx context.Context, task func() error) error
	Shutdown(ctx context.Context) error
	Size() int
}

// NopLogger discards everything. Useful when a component is built without a logger.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }
