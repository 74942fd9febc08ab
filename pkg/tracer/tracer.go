package tracer

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	opentracing "github.com/opentracing/opentracing-go"
	ext "github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
)

// Tracer abstraction for tracing span
type Tracer interface {
	Context() context.Context
	Tags() map[string]interface{}
	SetTag(key string, value interface{})
	SetError(err error)
	Log(key string, value interface{})
	Finish(additionalTags ...map[string]interface{})
}

type spanImpl struct {
	ctx  context.Context
	span opentracing.Span
	tags map[string]interface{}
}

// StartTrace starting trace child span from parent span, use global tracer (noop when not initialized)
func StartTrace(ctx context.Context, operationName string) Tracer {
	span, ctx := opentracing.StartSpanFromContext(ctx, operationName)
	return &spanImpl{ctx: ctx, span: span}
}

// StartTraceWithContext starting trace child span from parent span, returning tracer and context
func StartTraceWithContext(ctx context.Context, operationName string) (Tracer, context.Context) {
	t := StartTrace(ctx, operationName)
	return t, t.Context()
}

// Context get active context
func (t *spanImpl) Context() context.Context {
	return t.ctx
}

// Tags create tags in tracer span
func (t *spanImpl) Tags() map[string]interface{} {
	if t.tags == nil {
		t.tags = make(map[string]interface{})
	}
	return t.tags
}

// SetTag set tags in tracer span
func (t *spanImpl) SetTag(key string, value interface{}) {
	t.Tags()[key] = value
}

// SetError set error in span
func (t *spanImpl) SetError(err error) {
	if err == nil {
		return
	}
	ext.Error.Set(t.span, true)
	t.span.LogFields(otlog.String("error", err.Error()))
}

// Log data in span
func (t *spanImpl) Log(key string, value interface{}) {
	t.span.LogFields(otlog.String(key, toString(value)))
}

// Finish trace with additional tags data, must in deferred function
func (t *spanImpl) Finish(additionalTags ...map[string]interface{}) {
	defer t.span.Finish()

	for _, tag := range additionalTags {
		for k, v := range tag {
			t.SetTag(k, v)
		}
	}
	for k, v := range t.tags {
		t.span.SetTag(k, toString(v))
	}
	t.span.SetTag("num_goroutines", runtime.NumGoroutine())
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	case int, int32, int64, uint, uint16, uint32, uint64, bool, float64:
		return fmt.Sprint(val)
	}
	b, _ := json.Marshal(v)
	return string(b)
}
