package observer

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Logger is the minimal logging interface ConsoleObserver depends on,
// independent of pkg/logging so that this package never has to import it.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// DefaultLogger is a simple Logger that writes to stdout/stderr via the
// standard library's log package.
type DefaultLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
}

// NewDefaultLogger creates a DefaultLogger.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		infoLogger:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
		errorLogger: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
}

// Debug implements Logger.
func (l *DefaultLogger) Debug(msg string, fields map[string]interface{}) {
	l.infoLogger.Printf("[DEBUG] %s %v", msg, fields)
}

// Info implements Logger.
func (l *DefaultLogger) Info(msg string, fields map[string]interface{}) {
	l.infoLogger.Printf("%s %v", msg, fields)
}

// Warn implements Logger.
func (l *DefaultLogger) Warn(msg string, fields map[string]interface{}) {
	l.infoLogger.Printf("[WARN] %s %v", msg, fields)
}

// Error implements Logger.
func (l *DefaultLogger) Error(msg string, fields map[string]interface{}) {
	l.errorLogger.Printf("%s %v", msg, fields)
}

// ConsoleObserver prints plan lifecycle events to the console. Useful for
// local development and debugging.
type ConsoleObserver struct {
	logger Logger
}

// NewConsoleObserver creates a ConsoleObserver backed by DefaultLogger.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{logger: NewDefaultLogger()}
}

// NewConsoleObserverWithLogger creates a ConsoleObserver backed by a custom
// Logger.
func NewConsoleObserverWithLogger(logger Logger) *ConsoleObserver {
	return &ConsoleObserver{logger: logger}
}

// OnEvent implements Observer.
func (o *ConsoleObserver) OnEvent(ctx context.Context, event Event) {
	fields := map[string]interface{}{
		"type":    event.Type,
		"status":  event.Status,
		"plan_id": event.PlanID,
	}
	if event.NodeID != "" {
		fields["node_id"] = event.NodeID
	}
	if event.SourceKey != "" {
		fields["source_key"] = event.SourceKey
	}
	if event.Elapsed > 0 {
		fields["elapsed"] = event.Elapsed.String()
	}

	msg := fmt.Sprintf("[%s] %s", event.Type, event.Status)

	switch event.Status {
	case StatusFailure:
		if event.Err != nil {
			fields["error"] = event.Err.Error()
		}
		o.logger.Error(msg, fields)
	case StatusSuccess:
		o.logger.Info(msg, fields)
	default:
		o.logger.Debug(msg, fields)
	}
}
