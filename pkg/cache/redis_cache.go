package cache

import (
	"context"
	"time"

	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/gomodule/redigo/redis"
)

// RedisCache redis implement interfaces.Cache
type RedisCache struct {
	read, write *redis.Pool
}

// NewRedisCache constructor
func NewRedisCache(read, write *redis.Pool) *RedisCache {
	return &RedisCache{read: read, write: write}
}

// Get method, return redis.ErrNil when key not exist
func (r *RedisCache) Get(ctx context.Context, key string) (data []byte, err error) {
	trace, _ := tracer.StartTraceWithContext(ctx, "redis:get")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("db.statement", "GET")
	trace.SetTag("db.key", key)

	cl := r.read.Get()
	defer cl.Close()

	return redis.Bytes(cl.Do("GET", key))
}

// Set method, expire zero or less mean persist
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expire time.Duration) (err error) {
	trace, _ := tracer.StartTraceWithContext(ctx, "redis:set")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("db.statement", "SET")
	trace.SetTag("db.key", key)
	trace.SetTag("db.expired", expire.String())

	cl := r.write.Get()
	defer cl.Close()

	if expire > 0 {
		_, err = cl.Do("SET", key, value, "PX", expire.Milliseconds())
		return
	}
	_, err = cl.Do("SET", key, value)
	return
}

// Delete method
func (r *RedisCache) Delete(ctx context.Context, key string) (err error) {
	trace, _ := tracer.StartTraceWithContext(ctx, "redis:delete")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("db.statement", "DEL")
	trace.SetTag("db.key", key)

	cl := r.write.Get()
	defer cl.Close()

	_, err = cl.Do("DEL", key)
	return
}
