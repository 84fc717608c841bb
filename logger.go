package mapper

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with mapper-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogRunStart logs the start of a clustering run.
func (l *Logger) LogRunStart(ctx context.Context, points, cells, workers int) {
	l.InfoContext(ctx, "clustering started",
		"points", points,
		"cells", cells,
		"workers", workers,
	)
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, r *Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"error", err,
		)
		return
	}
	if len(r.Failures) > 0 {
		l.WarnContext(ctx, "clustering completed with failed cells",
			"cells", r.Cells,
			"empty", r.EmptyCells,
			"failed", len(r.Failures),
			"clusters", len(r.Clusters),
			"duration", r.Duration,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"cells", r.Cells,
		"empty", r.EmptyCells,
		"clusters", len(r.Clusters),
		"duration", r.Duration,
	)
}

// LogEmptyCell logs a cell skipped because no point matched.
func (l *Logger) LogEmptyCell(ctx context.Context, cell int) {
	l.DebugContext(ctx, "empty cell skipped",
		"cell", cell,
	)
}

// LogCellFailure logs a backend failure isolated to one cell.
func (l *Logger) LogCellFailure(ctx context.Context, f CellFailure) {
	l.WarnContext(ctx, "backend failed, cell skipped",
		"cell", f.Index,
		"points", f.Points,
		"error", f.Err,
	)
}

// LogGraph logs a nerve construction.
func (l *Logger) LogGraph(ctx context.Context, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "graph build failed",
			"nodes", nodes,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "graph built",
		"nodes", nodes,
		"edges", edges,
		"duration", d,
	)
}
