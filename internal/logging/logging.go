package logging

import (
	"context"
	"os"
	"strings"

	aulogging "github.com/StephanHCB/go-autumn-logging"
	auzerolog "github.com/StephanHCB/go-autumn-logging-zerolog"
	"github.com/rs/zerolog"
)

// ApplicationName is attached to every log line.
const ApplicationName = "payment-payload-service"

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})

	// expected to terminate the process
	Fatal(format string, v ...interface{})
}

type loggingWrapper struct {
	logger *zerolog.Logger
}

func (l *loggingWrapper) Debug(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *loggingWrapper) Info(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l *loggingWrapper) Warn(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *loggingWrapper) Error(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

// expected to terminate the process
func (l *loggingWrapper) Fatal(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

// context key with a separate type, so no other package has a chance of accessing it
type key int

const (
	loggerKey key = iota
	requestIDKey
)

var defaultLogger = NewLogger()

// SetSeverity sets the global minimum level. Unknown values fall back to INFO.
func SetSeverity(severity string) {
	zerolog.SetGlobalLevel(levelOf(severity))
}

func levelOf(severity string) zerolog.Level {
	switch strings.ToUpper(severity) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// SetupLibraryLogging routes the log output of the autumn libraries (rest client, circuit
// breaker) through zerolog, tagged with our request ids.
func SetupLibraryLogging(severity string, json bool) {
	if json {
		auzerolog.SetupJsonLogging(ApplicationName)
	} else {
		auzerolog.SetupPlaintextLogging()
	}
	auzerolog.SetLogLevel(levelOf(severity))
	aulogging.RequestIdRetriever = GetRequestID
}

func CreateContextWithLoggerForRequestId(ctx context.Context, requestId string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestId)
	return context.WithValue(ctx, loggerKey, WithRequestID(requestId))
}

// GetRequestID returns the request id stored by CreateContextWithLoggerForRequestId.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return "00000000"
	}
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}
	return "ffffffff"
}

// you should only use this when your code really does not belong to request processing.
// otherwise be a good citizen and do pass down the context, so log output can be associated with
// the request being processed!
func NoCtx() Logger {
	return defaultLogger
}

func LoggerFromContext(ctx context.Context) Logger {
	if ctx == nil {
		return defaultLogger
	}
	logger, ok := ctx.Value(loggerKey).(Logger)
	if !ok {
		return defaultLogger
	}

	return logger
}

func NewLogger() Logger {
	logger := zerolog.New(os.Stdout).
		With().
		Str("App", ApplicationName).
		Timestamp().
		Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

func WithRequestID(requestID string) Logger {
	logger := zerolog.New(os.Stdout).
		With().
		Str("App", ApplicationName).
		Str("RequestID", requestID).
		Timestamp().
		Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct {
}

func (l *noopLogger) Debug(format string, v ...interface{}) {
}

func (l *noopLogger) Info(format string, v ...interface{}) {
}

func (l *noopLogger) Warn(format string, v ...interface{}) {
}

func (l *noopLogger) Error(format string, v ...interface{}) {
}

// expected to terminate the process
func (l *noopLogger) Fatal(format string, v ...interface{}) {
}
