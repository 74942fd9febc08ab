package interfaces

import (
	"context"
	"time"
)

// Cache abstraction
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, expire time.Duration) error
	Delete(ctx context.Context, key string) error
}
