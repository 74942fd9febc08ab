package factory

import "github.com/coachlab/notification-service/pkg/codebase/factory/dependency"

// ServiceFactory factory
type ServiceFactory interface {
	GetDependency() dependency.Dependency
	GetModules() []ModuleFactory
	Name() string
}
