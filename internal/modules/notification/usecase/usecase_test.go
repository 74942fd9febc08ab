package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/internal/modules/notification/repository"
	mockrepo "github.com/coachlab/notification-service/pkg/mocks/modules/notification/repository"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	notificationRepo *mockrepo.NotificationRepository
	subscriptionRepo *mockrepo.PushSubscriptionRepository
	userRepo         *mockrepo.UserRepository
	push             *mockrepo.PushProvider
	registry         *realtime.Registry
}

func newFixture() *fixture {
	return &fixture{
		notificationRepo: &mockrepo.NotificationRepository{},
		subscriptionRepo: &mockrepo.PushSubscriptionRepository{},
		userRepo:         &mockrepo.UserRepository{},
		push:             &mockrepo.PushProvider{},
		registry:         realtime.NewRegistry(),
	}
}

func (f *fixture) usecase(opts ...OptionFunc) *notificationUsecaseImpl {
	repo := &repository.Repository{
		Notification:     f.notificationRepo,
		PushSubscription: f.subscriptionRepo,
		User:             f.userRepo,
		Push:             f.push,
	}
	return NewNotificationUsecase(repo, f.registry, opts...).(*notificationUsecaseImpl)
}

func (f *fixture) expectInsert(id string) {
	f.notificationRepo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) {
			n := args.Get(1).(*domain.Notification)
			n.ID = id
			n.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		}).
		Return(nil)
}

func readEnvelope(t *testing.T, ch *realtime.Channel) map[string]interface{} {
	t.Helper()

	select {
	case msg := <-ch.Messages():
		var envelope map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &envelope))
		return envelope
	case <-time.After(time.Second):
		t.Fatal("no live message received")
	}
	return nil
}

func assertNoEnvelope(t *testing.T, ch *realtime.Channel) {
	t.Helper()

	select {
	case msg := <-ch.Messages():
		t.Fatalf("unexpected live message: %s", msg)
	default:
	}
}
