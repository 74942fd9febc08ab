package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenLiveChannel(t *testing.T) {
	t.Run("Testcase #1: bootstrap then release", func(t *testing.T) {
		f := newFixture()
		f.notificationRepo.On("CountUnread", mock.Anything, "k1").Return(5, nil)
		uc := f.usecase()

		ch := realtime.NewChannel(realtime.KindSSE, "", 8)
		release, err := uc.OpenLiveChannel(context.Background(), "k1", ch)
		require.NoError(t, err)
		assert.Equal(t, 1, f.registry.CountUser("k1"))

		established := readEnvelope(t, ch)
		assert.Equal(t, realtime.EnvelopeConnectionEstablished, established["type"])
		assert.Equal(t, ch.ID(), established["data"].(map[string]interface{})["channelId"])

		unread := readEnvelope(t, ch)
		assert.Equal(t, realtime.EnvelopeUnreadCount, unread["type"])
		assert.Equal(t, float64(5), unread["data"].(map[string]interface{})["count"])

		assert.Equal(t, domain.LiveStats{Connections: 1, ActiveUsers: []string{"k1"}}, uc.LiveStats(context.Background()))

		release()
		assert.Equal(t, 0, f.registry.CountUser("k1"))
	})

	t.Run("Testcase #2: unread count failure keep channel open", func(t *testing.T) {
		f := newFixture()
		f.notificationRepo.On("CountUnread", mock.Anything, "k1").Return(0, errors.New("timeout"))
		uc := f.usecase()

		ch := realtime.NewChannel(realtime.KindWebSocket, "", 8)
		release, err := uc.OpenLiveChannel(context.Background(), "k1", ch)
		require.NoError(t, err)
		defer release()

		assert.Equal(t, realtime.EnvelopeConnectionEstablished, readEnvelope(t, ch)["type"])
		assertNoEnvelope(t, ch)
		assert.Equal(t, 1, f.registry.Count())
	})

	t.Run("Testcase #3: closed channel is not registered", func(t *testing.T) {
		f := newFixture()
		uc := f.usecase()

		ch := realtime.NewChannel(realtime.KindSSE, "", 8)
		ch.Close()
		_, err := uc.OpenLiveChannel(context.Background(), "k1", ch)
		assert.ErrorIs(t, err, realtime.ErrHandleClosed)
		assert.Equal(t, 0, f.registry.Count())
	})
}

func TestSaveUser(t *testing.T) {
	f := newFixture()
	user := &domain.User{ID: "k1", Role: "coach"}
	f.userRepo.On("SaveUser", mock.Anything, user).Return(nil)

	assert.NoError(t, f.usecase().SaveUser(context.Background(), user))
}
