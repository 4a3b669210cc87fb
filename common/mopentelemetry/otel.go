// Package mopentelemetry holds the thin span helpers shared by every
// repository and service method that opens a trace via
// common.NewTracerFromContext. It deliberately does not configure an SDK
// exporter - a production deployment wires its own tracer provider before
// calling common.ContextWithTracer; this package only standardizes how
// spans already in flight record attributes and errors.
package mopentelemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/r-o-main/bulk-transfer-api/common"
)

// SetSpanAttributesFromStruct marshals valueStruct to JSON and attaches it
// to span under key, the same way every ledger/consumer repository method
// records its input/output payloads.
func SetSpanAttributesFromStruct(span *trace.Span, key string, valueStruct any) error {
	vStr, err := common.StructToJSONString(valueStruct)
	if err != nil {
		return err
	}

	(*span).SetAttributes(attribute.KeyValue{
		Key:   attribute.Key(key),
		Value: attribute.StringValue(vStr),
	})

	return nil
}

// HandleSpanError marks span as failed and records err on it.
func HandleSpanError(span *trace.Span, message string, err error) {
	(*span).SetStatus(codes.Error, message+": "+err.Error())
	(*span).RecordError(err)
}
