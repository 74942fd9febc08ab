package database

import (
	"context"
	"time"

	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/gomodule/redigo/redis"
)

type redisInstance struct {
	read, write *redis.Pool
}

func (r *redisInstance) ReadPool() *redis.Pool {
	return r.read
}
func (r *redisInstance) WritePool() *redis.Pool {
	return r.write
}
func (r *redisInstance) Disconnect(ctx context.Context) (err error) {
	deferFunc := logger.LogWithDefer("redis: disconnect...")
	defer deferFunc()

	if err := r.read.Close(); err != nil {
		return err
	}
	return r.write.Close()
}

// InitRedis connection from redis url dsn, example: redis://:password@localhost:6379/0
func InitRedis(readDSN, writeDSN string) interfaces.RedisPool {
	deferFunc := logger.LogWithDefer("Load Redis connection...")
	defer deferFunc()

	inst := &redisInstance{
		read:  newPool(readDSN),
		write: newPool(writeDSN),
	}

	for _, pool := range []*redis.Pool{inst.read, inst.write} {
		ping := pool.Get()
		_, err := ping.Do("PING")
		ping.Close()
		if err != nil {
			panic(err)
		}
	}
	return inst
}

func newPool(dsn string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(dsn)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}
