package logging

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	runIDKey contextKey = iota
	fileKey
	stageKey
)

// contextFieldKeys pairs each context key with the field it renders as, in
// output order.
var contextFieldKeys = []struct {
	key   contextKey
	field string
}{
	{runIDKey, FieldRunID},
	{fileKey, FieldFile},
	{stageKey, FieldStage},
}

// WithRunID tags ctx with the batch run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithFile tags ctx with the container being processed.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKey, path)
}

// WithStage tags ctx with the current pipeline step.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

func contextAttrs(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	var attrs []Attr
	for _, kf := range contextFieldKeys {
		if v, _ := ctx.Value(kf.key).(string); v != "" {
			attrs = append(attrs, String(kf.field, v))
		}
	}
	return attrs
}

// WithContext returns logger carrying the run id, file and stage held by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	attrs := contextAttrs(ctx)
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(Args(attrs...)...)
}
