package tracer

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	config "github.com/uber/jaeger-client-go/config"
)

// Option for jaeger init
type Option struct {
	AgentHost       string
	Level           string
	MaxGoroutineTag int
}

// OptionFunc func
type OptionFunc func(*Option)

// OptionSetAgentHost option func
func OptionSetAgentHost(host string) OptionFunc {
	return func(o *Option) {
		o.AgentHost = host
	}
}

// OptionSetLevel option func, level appended to service name
func OptionSetLevel(level string) OptionFunc {
	return func(o *Option) {
		o.Level = level
	}
}

// OptionSetMaxGoroutineTag option func
func OptionSetMaxGoroutineTag(max int) OptionFunc {
	return func(o *Option) {
		o.MaxGoroutineTag = max
	}
}

// InitOpenTracing init jaeger tracing as global tracer, returning closer for flush spans at shutdown
func InitOpenTracing(serviceName string, opts ...OptionFunc) (io.Closer, error) {
	var option Option
	for _, opt := range opts {
		opt(&option)
	}

	if option.Level != "" {
		serviceName = fmt.Sprintf("%s-%s", serviceName, strings.ToLower(option.Level))
	}
	defaultTags := []opentracing.Tag{
		{Key: "num_cpu", Value: runtime.NumCPU()},
		{Key: "go_version", Value: runtime.Version()},
	}
	if option.MaxGoroutineTag != 0 {
		defaultTags = append(defaultTags, opentracing.Tag{
			Key: "max_goroutines", Value: option.MaxGoroutineTag,
		})
	}
	cfg := &config.Configuration{
		Sampler: &config.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LogSpans:            true,
			BufferFlushInterval: 1 * time.Second,
			LocalAgentHostPort:  option.AgentHost,
		},
		ServiceName: serviceName,
		Tags:        defaultTags,
	}
	tracer, closer, err := cfg.NewTracer(config.MaxTagValueLength(math.MaxInt32))
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}
