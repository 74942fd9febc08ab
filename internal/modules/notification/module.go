package notification

import (
	"github.com/coachlab/notification-service/config/env"
	"github.com/coachlab/notification-service/internal/modules/notification/delivery/resthandler"
	"github.com/coachlab/notification-service/internal/modules/notification/delivery/workerhandler"
	"github.com/coachlab/notification-service/internal/modules/notification/repository"
	"github.com/coachlab/notification-service/internal/modules/notification/usecase"
	"github.com/coachlab/notification-service/pkg/codebase/factory/dependency"
	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
)

// Name module name
const Name = "Notification"

// Module model
type Module struct {
	restHandler    *resthandler.RestHandler
	workerHandlers map[types.Worker]interfaces.WorkerHandler
	usecase        usecase.NotificationUsecase
}

// NewModule module constructor
func NewModule(deps dependency.Dependency) *Module {
	e := env.BaseEnv()

	repo := NewRepository(deps, e)
	ucOpts := []usecase.OptionFunc{usecase.SetMaxGoroutines(e.MaxGoroutines)}
	if fanout := deps.GetFanout(); fanout != nil {
		ucOpts = append(ucOpts, usecase.SetLivePublisher(fanout))
	}
	uc := usecase.NewNotificationUsecase(repo, deps.GetRegistry(), ucOpts...)

	var mod Module
	mod.usecase = uc
	mod.restHandler = resthandler.NewRestHandler(uc, deps,
		resthandler.SetHeartbeat(e.LiveHeartbeatInterval),
		resthandler.SetSendBuffer(e.LiveSendBuffer),
		resthandler.SetSingleStreamPerUser(e.LiveSingleStreamPerUser),
	)
	mod.workerHandlers = map[types.Worker]interfaces.WorkerHandler{
		types.Kafka: workerhandler.NewKafkaHandler(uc, deps, e.Kafka.DispatchTopic, e.Kafka.UserTopic),
	}

	return &mod
}

// NewRepository select storage from opened database, user directory is cached when cache is available
// and push provider is set only when VAPID key pair is configured
func NewRepository(deps dependency.Dependency, e env.Env) *repository.Repository {
	var repo *repository.Repository
	if sqlDB := deps.GetSQLDatabase(); sqlDB != nil {
		repo = repository.NewSQLRepository(sqlDB.ReadDB(), sqlDB.WriteDB())
	} else {
		mongoDB := deps.GetMongoDatabase()
		repo = repository.NewMongoRepository(mongoDB.ReadDB(), mongoDB.WriteDB())
	}

	if cache := deps.GetCache(); cache != nil {
		repo.User = repository.NewUserRepoCache(repo.User, cache, e.UserCacheTTL)
	}

	// without key pair web push stays disabled, dispatch falls back to polling
	if e.VAPIDPublicKey != "" && e.VAPIDPrivateKey != "" {
		repo.Push = repository.NewWebPushProvider(repository.WebPushConfig{
			PublicKey:  e.VAPIDPublicKey,
			PrivateKey: e.VAPIDPrivateKey,
			Subscriber: e.VAPIDSubscriber,
			TTL:        e.PushTTL,
			Retries:    e.PushRetries,
		})
	}
	return repo
}

// RESTHandler method
func (m *Module) RESTHandler() interfaces.RESTHandler {
	return m.restHandler
}

// WorkerHandler method
func (m *Module) WorkerHandler(workerType types.Worker) interfaces.WorkerHandler {
	return m.workerHandlers[workerType]
}

// Usecase of module, used by entry point commands
func (m *Module) Usecase() usecase.NotificationUsecase {
	return m.usecase
}

// Name get module name
func (m *Module) Name() string {
	return Name
}
