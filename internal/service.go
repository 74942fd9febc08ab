package service

import (
	"github.com/coachlab/notification-service/config"
	"github.com/coachlab/notification-service/config/env"
	"github.com/coachlab/notification-service/internal/modules/notification"
	"github.com/coachlab/notification-service/pkg/cache"
	"github.com/coachlab/notification-service/pkg/codebase/factory"
	"github.com/coachlab/notification-service/pkg/codebase/factory/dependency"
	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/middleware"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/coachlab/notification-service/pkg/realtime/redisfanout"
	"github.com/coachlab/notification-service/pkg/validator"
)

// Service model
type Service struct {
	deps    dependency.Dependency
	modules []factory.ModuleFactory
	name    string
}

// NewService in this service
func NewService(serviceName string, cfg *config.Config) factory.ServiceFactory {
	e := env.BaseEnv()
	registry := realtime.NewRegistry()

	// See all option in dependency package
	depsOptions := []dependency.Option{
		dependency.SetMiddleware(middleware.NewMiddleware(e.BasicAuthUsername, e.BasicAuthPassword,
			middleware.SetTokenValidator(middleware.NewJWTValidator(e.JWTSecret)),
		)),
		dependency.SetValidator(validator.NewStructValidator()),
		dependency.SetRegistry(registry),
	}

	if cfg.SQL != nil {
		depsOptions = append(depsOptions, dependency.SetSQLDatabase(cfg.SQL))
	}
	if cfg.Mongo != nil {
		depsOptions = append(depsOptions, dependency.SetMongoDatabase(cfg.Mongo))
	}
	if cfg.Broker != nil {
		depsOptions = append(depsOptions, dependency.SetBroker(types.Kafka, cfg.Broker))
	}
	if cfg.Redis != nil {
		depsOptions = append(depsOptions,
			dependency.SetRedisPool(cfg.Redis),
			dependency.SetCache(cache.NewRedisCache(cfg.Redis.ReadPool(), cfg.Redis.WritePool())),
		)
		if e.UseRedisFanout {
			depsOptions = append(depsOptions, dependency.SetFanout(redisfanout.New(cfg.Redis.WritePool(), registry)))
		}
	}

	// inject all service dependencies
	deps := dependency.InitDependency(depsOptions...)

	modules := []factory.ModuleFactory{
		notification.NewModule(deps),
	}

	return &Service{
		deps:    deps,
		modules: modules,
		name:    serviceName,
	}
}

// GetDependency method
func (s *Service) GetDependency() dependency.Dependency {
	return s.deps
}

// GetModules method
func (s *Service) GetModules() []factory.ModuleFactory {
	return s.modules
}

// Name method
func (s *Service) Name() string {
	return s.name
}
