package repository

import (
	"context"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
)

// NotificationRepository abstract interface
type NotificationRepository interface {
	Insert(ctx context.Context, data *domain.Notification) error
	FindByID(ctx context.Context, id string) (domain.Notification, error)
	// MarkRead only recipient can mark, already read notification is not an error
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (affected int64, err error)
	ListByUser(ctx context.Context, filter domain.ListFilter) ([]domain.Notification, error)
	Count(ctx context.Context, filter domain.ListFilter) (int, error)
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

// PushSubscriptionRepository abstract interface
type PushSubscriptionRepository interface {
	// Upsert unique on user and endpoint, refresh keys when exist
	Upsert(ctx context.Context, data *domain.PushSubscription) error
	ListByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error)
	Delete(ctx context.Context, id string) error
	DeleteByEndpoint(ctx context.Context, userID, endpoint string) error
}

// UserRepository user directory abstract interface
type UserRepository interface {
	FindUser(ctx context.Context, id string) (*domain.User, error)
	SaveUser(ctx context.Context, data *domain.User) error
}

// PushProvider web push transport
type PushProvider interface {
	Send(ctx context.Context, sub domain.PushSubscription, payload []byte) (domain.PushStatus, error)
	PublicKey() string
}

// Repository set of repositories for notification module
type Repository struct {
	Notification     NotificationRepository
	PushSubscription PushSubscriptionRepository
	User             UserRepository
	Push             PushProvider
}
