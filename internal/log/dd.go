package log

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// WithDD returns a logger enriched with Datadog correlation fields when a
// span is present in ctx. Adds dd.trace_id and dd.span_id as strings, which
// is what Datadog log correlation expects.
func WithDD(ctx context.Context, base *zap.Logger, extra ...zap.Field) *zap.Logger {
	if sp, ok := tracer.SpanFromContext(ctx); ok && sp != nil {
		if sc, ok := sp.Context().(ddtrace.SpanContext); ok {
			extra = append(extra,
				zap.String("dd.trace_id", fmt.Sprintf("%d", sc.TraceID())),
				zap.String("dd.span_id", fmt.Sprintf("%d", sc.SpanID())),
			)
		}
	}
	return base.With(extra...)
}
