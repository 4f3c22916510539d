// Package otel bridges observe.Sink to OpenTelemetry tracing.
//
// It converts scan progress events into OTel spans so scans show up in
// any OpenTelemetry-compatible backend next to the rest of the
// caller's request handling.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/prasanaa-pigment/n8n-sub000/observe"
)

const instrumentationName = "github.com/prasanaa-pigment/n8n-sub000"

// Sink implements observe.Sink by emitting OpenTelemetry spans.
type Sink struct {
	tracer trace.Tracer
}

// NewSink creates an OTel sink using the given TracerProvider. A nil
// provider falls back to the noop tracer.
func NewSink(tp trace.TracerProvider) *Sink {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &Sink{tracer: tp.Tracer(instrumentationName)}
}

// Emit converts one event into a span.
func (s *Sink) Emit(_ context.Context, event observe.Event) error {
	event.Normalize()

	_, span := s.tracer.Start(context.Background(), spanNameFor(event), trace.WithTimestamp(event.Timestamp))

	attrs := []attribute.KeyValue{
		attribute.String("scan.event.kind", string(event.Kind)),
	}
	if event.ScanID != "" {
		attrs = append(attrs, attribute.String("scan.id", event.ScanID))
	}
	if event.WorkflowName != "" {
		attrs = append(attrs, attribute.String("scan.workflow", event.WorkflowName))
	}
	if event.Check != "" {
		attrs = append(attrs, attribute.String("scan.check", event.Check))
	}
	if event.Status != "" {
		attrs = append(attrs, attribute.String("scan.status", string(event.Status)))
	}
	if event.Findings > 0 {
		attrs = append(attrs, attribute.Int("scan.findings", event.Findings))
	}
	if event.DurationMs > 0 {
		attrs = append(attrs, attribute.Int64("scan.duration_ms", event.DurationMs))
	}
	span.SetAttributes(attrs...)

	switch event.Status {
	case observe.StatusFailed:
		span.SetStatus(codes.Error, event.Error)
		if event.Error != "" {
			span.RecordError(fmt.Errorf("%s", event.Error))
		}
	case observe.StatusCompleted:
		span.SetStatus(codes.Ok, "")
	}

	end := event.Timestamp
	if event.DurationMs > 0 {
		end = end.Add(time.Duration(event.DurationMs) * time.Millisecond)
	}
	span.End(trace.WithTimestamp(end))
	return nil
}

func spanNameFor(event observe.Event) string {
	if event.Kind == observe.KindCheck && event.Check != "" {
		return "scan.check." + event.Check
	}
	return "scan.run"
}
