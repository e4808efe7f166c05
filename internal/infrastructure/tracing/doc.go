/*
Package tracing provides lightweight request tracing.

# Overview

Every HTTP request gets a span. Trace IDs are prefixed ULIDs so they sort by
time; span IDs are UUIDs. A trace ID arriving in X-Trace-ID is continued and
both IDs are echoed in the response headers. Finished spans go through a
buffered channel to a collector goroutine that logs them with zap.

# Usage

	tracer := tracing.New("errprop", logger.Logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "derive")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
	span.SetTag("formula.params", "3")

# Trace Format

  - X-Trace-ID: identifier for the whole request flow
  - X-Span-ID: identifier for the current operation
*/
package tracing
