package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Standard field names shared by every layer.
const (
	FieldLayer    = "layer"
	FieldAdapter  = "adapter"
	FieldUseCase  = "usecase"
	FieldHandler  = "handler"
	FieldAction   = "action"
	FieldEntityID = "entity_id"
	FieldDeviceID = "device_id"
	FieldMethod   = "method"
	FieldPath     = "path"
	FieldStatus   = "status"
	FieldCount    = "count"
	FieldDuration = "duration"
	FieldRequest  = "request_id"
)

// WithCtx stores a logger in the context.
func WithCtx(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromCtx returns the logger stored in the context, or a disabled logger.
func FromCtx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// CtxWithFields returns a context whose logger carries the given fields.
func CtxWithFields(ctx context.Context, fields map[string]any) context.Context {
	logger := zerolog.Ctx(ctx).With().Fields(fields).Logger()
	return logger.WithContext(ctx)
}

// CtxWithField is CtxWithFields for a single field.
func CtxWithField(ctx context.Context, key string, value any) context.Context {
	return CtxWithFields(ctx, map[string]any{key: value})
}
