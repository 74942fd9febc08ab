package usecase

import (
	"context"
	"testing"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/internal/modules/notification/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubscribePush(t *testing.T) {
	f := newFixture()
	f.subscriptionRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.PushSubscription")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.PushSubscription).ID = "s1" }).
		Return(nil)
	uc := f.usecase()

	var req domain.SubscribeRequest
	req.Endpoint = "https://push.example.com/1"
	req.Keys.P256dh, req.Keys.Auth = "key", "auth"

	sub, err := uc.SubscribePush(context.Background(), "k1", "firefox", req)
	require.NoError(t, err)
	assert.Equal(t, domain.PushSubscription{
		ID: "s1", UserID: "k1", Endpoint: "https://push.example.com/1", P256dh: "key", Auth: "auth", UserAgent: "firefox",
	}, sub)
}

func TestSubscribePush_NotConfigured(t *testing.T) {
	f := newFixture()
	uc := NewNotificationUsecase(&repository.Repository{PushSubscription: f.subscriptionRepo}, f.registry)

	var req domain.SubscribeRequest
	req.Endpoint = "https://push.example.com/1"
	req.Keys.P256dh, req.Keys.Auth = "key", "auth"

	_, err := uc.SubscribePush(context.Background(), "k1", "firefox", req)
	assert.ErrorIs(t, err, domain.ErrPushNotConfigured)
	f.subscriptionRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUnsubscribePush(t *testing.T) {
	f := newFixture()
	f.subscriptionRepo.On("DeleteByEndpoint", mock.Anything, "k1", "https://push.example.com/1").Return(domain.ErrSubscriptionNotFound)
	uc := f.usecase()

	err := uc.UnsubscribePush(context.Background(), "k1", domain.UnsubscribeRequest{Endpoint: "https://push.example.com/1"})
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
}

func TestVAPIDPublicKey(t *testing.T) {
	t.Run("Testcase #1: configured", func(t *testing.T) {
		f := newFixture()
		f.push.On("PublicKey").Return("BPub")
		key, err := f.usecase().VAPIDPublicKey()
		assert.NoError(t, err)
		assert.Equal(t, "BPub", key)
	})

	t.Run("Testcase #2: no provider", func(t *testing.T) {
		uc := NewNotificationUsecase(&repository.Repository{}, nil)
		_, err := uc.VAPIDPublicKey()
		assert.ErrorIs(t, err, domain.ErrPushNotConfigured)
	})
}
