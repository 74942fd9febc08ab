package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChannelKind live transport kind
type ChannelKind string

const (
	// KindSSE server-sent events stream
	KindSSE ChannelKind = "sse"
	// KindWebSocket websocket connection
	KindWebSocket ChannelKind = "websocket"
)

var (
	// ErrHandleClosed send to closed handle
	ErrHandleClosed = errors.New("live channel closed")
	// ErrSendBufferFull handle could not keep up with pending messages
	ErrSendBufferFull = errors.New("live channel send buffer full")
)

// Handle sender handle for one open live channel
type Handle interface {
	ID() string
	Slot() string
	Kind() ChannelKind
	// Send queue serialized message, must not block
	Send(message []byte) error
	Close() error
}

// Channel queued Handle implementation, transport pump drain Messages until Done is closed
type Channel struct {
	id, slot  string
	kind      ChannelKind
	createdAt time.Time

	queue     chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannel create live channel handle, empty slot generate unique slot per connection
func NewChannel(kind ChannelKind, slot string, bufferSize int) *Channel {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	id := uuid.NewString()
	if slot == "" {
		slot = id
	}
	return &Channel{
		id: id, slot: slot, kind: kind, createdAt: time.Now(),
		queue: make(chan []byte, bufferSize),
		done:  make(chan struct{}),
	}
}

// ID of handle
func (c *Channel) ID() string { return c.id }

// Slot of handle, registering into occupied slot replace previous handle
func (c *Channel) Slot() string { return c.slot }

// Kind of transport
func (c *Channel) Kind() ChannelKind { return c.kind }

// CreatedAt time handle opened
func (c *Channel) CreatedAt() time.Time { return c.createdAt }

// Send queue message without blocking
func (c *Channel) Send(message []byte) error {
	select {
	case <-c.done:
		return ErrHandleClosed
	default:
	}

	select {
	case c.queue <- message:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close handle, safe to call many times
func (c *Channel) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// Messages pending message queue
func (c *Channel) Messages() <-chan []byte {
	return c.queue
}

// Done closed when handle closed
func (c *Channel) Done() <-chan struct{} {
	return c.done
}
