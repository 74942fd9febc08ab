package types

import "context"

// Worker types
type Worker string

// Server types
type Server string

const (
	// Kafka worker
	Kafka Worker = "kafka"
	// RedisFanout worker, cross instance live delivery listener
	RedisFanout Worker = "redis_fanout"

	// REST server
	REST Server = "rest"
)

// WorkerHandlerFunc types
type WorkerHandlerFunc func(ctx context.Context, message []byte) error

// WorkerErrorHandler types
type WorkerErrorHandler func(ctx context.Context, workerType Worker, workerName string, message []byte, err error)

// WorkerHandler worker handler structure
type WorkerHandler struct {
	Pattern      string
	HandlerFunc  WorkerHandlerFunc
	ErrorHandler []WorkerErrorHandler
}

// WorkerHandlerGroup group of worker handlers by pattern string
type WorkerHandlerGroup struct {
	Handlers []WorkerHandler
}

// Add method from WorkerHandlerGroup, pattern can fill with topic name or other key
func (m *WorkerHandlerGroup) Add(pattern string, handlerFunc WorkerHandlerFunc, errHandlers ...WorkerErrorHandler) {
	m.Handlers = append(m.Handlers, WorkerHandler{
		Pattern: pattern, HandlerFunc: handlerFunc, ErrorHandler: errHandlers,
	})
}
