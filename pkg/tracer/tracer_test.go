package tracer

import (
	"context"
	"errors"
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
)

func TestStartTrace(t *testing.T) {
	mt := mocktracer.New()
	opentracing.SetGlobalTracer(mt)
	defer opentracing.SetGlobalTracer(opentracing.NoopTracer{})

	trace, ctx := StartTraceWithContext(context.Background(), "NotificationUsecase:Dispatch")
	assert.NotNil(t, opentracing.SpanFromContext(ctx))

	trace.SetTag("recipient_id", "u1")
	trace.SetError(errors.New("push failed"))
	trace.Log("outcome", map[string]string{"status": "queued"})
	trace.Finish(map[string]interface{}{"live_receivers": 0})

	spans := mt.FinishedSpans()
	if assert.Len(t, spans, 1) {
		assert.Equal(t, "NotificationUsecase:Dispatch", spans[0].OperationName)
		assert.Equal(t, "u1", spans[0].Tag("recipient_id"))
		assert.Equal(t, "0", spans[0].Tag("live_receivers"))
		assert.Equal(t, true, spans[0].Tag("error"))
	}
}
