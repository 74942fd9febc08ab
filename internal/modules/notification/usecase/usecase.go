package usecase

import (
	"context"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/internal/modules/notification/repository"
	"github.com/coachlab/notification-service/internal/modules/notification/router"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/coachlab/notification-service/pkg/shared"
)

// NotificationUsecase abstraction
type NotificationUsecase interface {
	Dispatch(ctx context.Context, req domain.DispatchRequest) (result domain.DispatchResult, err error)

	MarkRead(ctx context.Context, userID, id string) (err error)
	MarkAllRead(ctx context.Context, userID string) (affected int64, err error)
	ListNotifications(ctx context.Context, viewer domain.Viewer, filter domain.ListFilter) (data []domain.NotificationView, meta shared.Meta, err error)
	CountUnread(ctx context.Context, userID string) (count int, err error)
	GetRoute(ctx context.Context, viewer domain.Viewer, id string) (dest domain.Destination, err error)

	SubscribePush(ctx context.Context, userID, userAgent string, req domain.SubscribeRequest) (sub domain.PushSubscription, err error)
	UnsubscribePush(ctx context.Context, userID string, req domain.UnsubscribeRequest) (err error)
	VAPIDPublicKey() (string, error)

	OpenLiveChannel(ctx context.Context, userID string, handle realtime.Handle) (release func(), err error)
	LiveStats(ctx context.Context) domain.LiveStats

	SaveUser(ctx context.Context, user *domain.User) (err error)
}

// LiveRegistry live channel registry used by usecase
type LiveRegistry interface {
	Register(userID string, handle realtime.Handle)
	Unregister(userID string, handle realtime.Handle)
	Deliver(userID string, message interface{}) int
	Count() int
	ActiveUserIDs() []string
}

// LivePublisher cross instance live delivery, return number of remote instance holding channel of user
type LivePublisher interface {
	Publish(ctx context.Context, userID string, message []byte) (receivers int, err error)
}

// OptionFunc usecase option
type OptionFunc func(*notificationUsecaseImpl)

// SetLivePublisher option, used when local registry has no channel of recipient
func SetLivePublisher(publisher LivePublisher) OptionFunc {
	return func(uc *notificationUsecaseImpl) {
		uc.publisher = publisher
	}
}

// SetMaxGoroutines option, bound of concurrent web push send
func SetMaxGoroutines(n int) OptionFunc {
	return func(uc *notificationUsecaseImpl) {
		if n > 0 {
			uc.maxGoroutines = n
		}
	}
}

type notificationUsecaseImpl struct {
	repo          *repository.Repository
	registry      LiveRegistry
	publisher     LivePublisher
	maxGoroutines int
}

// NewNotificationUsecase usecase impl constructor
func NewNotificationUsecase(repo *repository.Repository, registry LiveRegistry, opts ...OptionFunc) NotificationUsecase {
	uc := &notificationUsecaseImpl{
		repo:          repo,
		registry:      registry,
		maxGoroutines: 10,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *notificationUsecaseImpl) toView(n domain.Notification, role string) domain.NotificationView {
	dest := router.ComputeNotification(n, role)
	return domain.NotificationView{Notification: n, Route: dest.Path, QuickAction: dest.QuickAction}
}

// resolveRole fill missing viewer role from user directory, unknown viewer see coach routes
func (uc *notificationUsecaseImpl) resolveRole(ctx context.Context, viewer domain.Viewer) string {
	if viewer.Role != "" {
		return viewer.Role
	}
	user, err := uc.repo.User.FindUser(ctx, viewer.UserID)
	if err != nil {
		return shared.RoleCoach
	}
	return user.Role
}
