// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// requestIDs travels in the request context as one value.
type requestIDs struct {
	correlation string
	request     string
}

type idsKey struct{}

func idsFrom(ctx context.Context) requestIDs {
	ids, _ := ctx.Value(idsKey{}).(requestIDs)
	return ids
}

// GenerateCorrelationID returns the first 8 characters of a random UUID.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a random UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// ContextWithCorrelationID attaches a correlation ID, keeping any request ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.correlation = id
	return context.WithValue(ctx, idsKey{}, ids)
}

// ContextWithNewCorrelationID attaches a freshly generated correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).correlation
}

// ContextWithRequestID attaches a request ID, keeping any correlation ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.request = id
	return context.WithValue(ctx, idsKey{}, ids)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).request
}

// Ctx returns the global logger with the context's IDs attached. Handlers
// and anything they call log through it.
//
//	logging.Ctx(r.Context()).Info().Str("series_id", id).Msg("Series created")
func Ctx(ctx context.Context) *zerolog.Logger {
	ids := idsFrom(ctx)
	logger := Logger()
	if ids.correlation == "" && ids.request == "" {
		return &logger
	}

	logCtx := logger.With()
	if ids.correlation != "" {
		logCtx = logCtx.Str("correlation_id", ids.correlation)
	}
	if ids.request != "" {
		logCtx = logCtx.Str("request_id", ids.request)
	}
	logger = logCtx.Logger()
	return &logger
}

// CtxErr starts an error level message on Ctx(ctx) carrying err.
func CtxErr(ctx context.Context, err error) *zerolog.Event {
	return Ctx(ctx).Err(err)
}
