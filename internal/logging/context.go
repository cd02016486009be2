package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type runIDKey struct{}

// WithRunID stores a fresh run identifier on ctx and returns it.
func WithRunID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, runIDKey{}, id), id
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns logger tagged with the run identifier carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	id, ok := RunIDFromContext(ctx)
	if !ok {
		return logger
	}
	return logger.With(String(FieldRunID, id))
}
