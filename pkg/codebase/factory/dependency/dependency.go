package dependency

import (
	"context"

	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/coachlab/notification-service/pkg/realtime/redisfanout"
)

// Dependency base
type Dependency interface {
	GetMiddleware() interfaces.Middleware
	GetValidator() interfaces.Validator

	GetBroker(types.Worker) interfaces.Broker
	GetSQLDatabase() interfaces.SQLDatabase
	GetMongoDatabase() interfaces.MongoDatabase
	GetRedisPool() interfaces.RedisPool
	GetCache() interfaces.Cache

	// live channel registry owned by process, shared by every handler
	GetRegistry() *realtime.Registry
	// cross instance live delivery, nil when disabled
	GetFanout() *redisfanout.Fanout

	interfaces.Closer
}

// Option func type
type Option func(*deps)

type deps struct {
	mw        interfaces.Middleware
	validator interfaces.Validator
	brokers   map[types.Worker]interfaces.Broker
	sqlDB     interfaces.SQLDatabase
	mongoDB   interfaces.MongoDatabase
	redisPool interfaces.RedisPool
	cache     interfaces.Cache
	registry  *realtime.Registry
	fanout    *redisfanout.Fanout
}

// SetMiddleware option func
func SetMiddleware(mw interfaces.Middleware) Option {
	return func(d *deps) {
		d.mw = mw
	}
}

// SetValidator option func
func SetValidator(validator interfaces.Validator) Option {
	return func(d *deps) {
		d.validator = validator
	}
}

// SetBroker option func
func SetBroker(workerType types.Worker, broker interfaces.Broker) Option {
	return func(d *deps) {
		if d.brokers == nil {
			d.brokers = make(map[types.Worker]interfaces.Broker)
		}
		d.brokers[workerType] = broker
	}
}

// SetSQLDatabase option func
func SetSQLDatabase(db interfaces.SQLDatabase) Option {
	return func(d *deps) {
		d.sqlDB = db
	}
}

// SetMongoDatabase option func
func SetMongoDatabase(db interfaces.MongoDatabase) Option {
	return func(d *deps) {
		d.mongoDB = db
	}
}

// SetRedisPool option func
func SetRedisPool(pool interfaces.RedisPool) Option {
	return func(d *deps) {
		d.redisPool = pool
	}
}

// SetCache option func
func SetCache(cache interfaces.Cache) Option {
	return func(d *deps) {
		d.cache = cache
	}
}

// SetRegistry option func
func SetRegistry(registry *realtime.Registry) Option {
	return func(d *deps) {
		d.registry = registry
	}
}

// SetFanout option func
func SetFanout(fanout *redisfanout.Fanout) Option {
	return func(d *deps) {
		d.fanout = fanout
	}
}

// InitDependency constructor, registry is always created when not provided
func InitDependency(opts ...Option) Dependency {
	opt := new(deps)
	for _, o := range opts {
		o(opt)
	}
	if opt.registry == nil {
		opt.registry = realtime.NewRegistry()
	}
	return opt
}

func (d *deps) GetMiddleware() interfaces.Middleware {
	return d.mw
}
func (d *deps) GetValidator() interfaces.Validator {
	return d.validator
}
func (d *deps) GetBroker(workerType types.Worker) interfaces.Broker {
	return d.brokers[workerType]
}
func (d *deps) GetSQLDatabase() interfaces.SQLDatabase {
	return d.sqlDB
}
func (d *deps) GetMongoDatabase() interfaces.MongoDatabase {
	return d.mongoDB
}
func (d *deps) GetRedisPool() interfaces.RedisPool {
	return d.redisPool
}
func (d *deps) GetCache() interfaces.Cache {
	return d.cache
}
func (d *deps) GetRegistry() *realtime.Registry {
	return d.registry
}
func (d *deps) GetFanout() *redisfanout.Fanout {
	return d.fanout
}

// Disconnect close every live channel then every connection
func (d *deps) Disconnect(ctx context.Context) error {
	d.registry.CloseAll()

	mErr := helper.NewMultiError()
	for workerType, broker := range d.brokers {
		if err := safeClose(ctx, broker); err != nil {
			mErr.Append(string(workerType), err)
		}
	}
	if err := safeClose(ctx, d.sqlDB); err != nil {
		mErr.Append("sql", err)
	}
	if err := safeClose(ctx, d.mongoDB); err != nil {
		mErr.Append("mongo", err)
	}
	if err := safeClose(ctx, d.redisPool); err != nil {
		mErr.Append("redis", err)
	}
	if mErr.HasError() {
		return mErr
	}
	return nil
}

func safeClose(ctx context.Context, d interfaces.Closer) error {
	if d != nil {
		return d.Disconnect(ctx)
	}
	return nil
}
