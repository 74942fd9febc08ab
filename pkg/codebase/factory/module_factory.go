package factory

import (
	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
)

// ModuleFactory factory
type ModuleFactory interface {
	RESTHandler() interfaces.RESTHandler
	WorkerHandler(workerType types.Worker) interfaces.WorkerHandler
	Name() string
}
