package interfaces

import (
	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/labstack/echo"
)

// RESTHandler delivery factory for REST handler
type RESTHandler interface {
	Mount(group *echo.Group)
}

// WorkerHandler delivery factory for all worker handler
type WorkerHandler interface {
	MountHandlers(group *types.WorkerHandlerGroup)
}
