// Package logger configures structured JSON logging with log/slog and carries
// request- or component-scoped loggers through context.Context.
package logger
