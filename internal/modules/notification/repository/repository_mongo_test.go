package repository

import (
	"context"
	"testing"
	"time"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockMongo(t *testing.T) *mtest.T {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	t.Cleanup(mt.Close)
	return mt
}

func TestNotificationDoc_toDomain(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		doc  notificationDoc
		want domain.Payload
	}{
		{
			name: "Testcase #1: message payload",
			doc: notificationDoc{Type: string(domain.TypeMessage),
				Payload: map[string]string{"conversationId": "c1", "senderId": "u2"}},
			want: domain.MessagePayload{ConversationID: "c1", SenderID: "u2"},
		},
		{
			name: "Testcase #2: system payload",
			doc:  notificationDoc{Type: string(domain.TypeSystem), Payload: map[string]string{"link": "/status"}},
			want: domain.SystemPayload{Link: "/status"},
		},
		{
			name: "Testcase #3: empty payload keep type variant",
			doc:  notificationDoc{Type: string(domain.TypeLessonScheduled)},
			want: domain.LessonPayload{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doc.ID, tt.doc.RecipientID, tt.doc.CreatedAt = "n1", "u1", createdAt
			got := tt.doc.toDomain()
			assert.Equal(t, "n1", got.ID)
			assert.Equal(t, "u1", got.RecipientID)
			assert.Equal(t, createdAt, got.CreatedAt)
			assert.Equal(t, tt.want, got.Payload)
		})
	}
}

func TestNotificationRepoMongo(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ns := mtest.TestDb + "." + collectionNotifications

	mt.Run("Testcase #1: insert store payload as flat document", func(mt *mtest.T) {
		repo := NewNotificationRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		data := &domain.Notification{
			RecipientID: "u1", Type: domain.TypeMessage, Title: "New message", IsRead: true,
			Payload: domain.MessagePayload{ConversationID: "c1", SenderID: "u2"},
		}
		require.NoError(mt, repo.Insert(ctx, data))
		assert.NotEmpty(mt, data.ID)
		assert.False(mt, data.IsRead)
		assert.False(mt, data.CreatedAt.IsZero())

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "c1", cmd.Lookup("documents", "0", "payload", "conversationId").StringValue())
		assert.Equal(mt, "u2", cmd.Lookup("documents", "0", "payload", "senderId").StringValue())
		assert.False(mt, cmd.Lookup("documents", "0", "isRead").Boolean())
	})

	mt.Run("Testcase #2: find by id decode payload variant", func(mt *mtest.T) {
		repo := NewNotificationRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "n1"},
			{Key: "recipientId", Value: "u1"},
			{Key: "type", Value: "CLIENT_JOIN_REQUEST"},
			{Key: "title", Value: "Join request"},
			{Key: "payload", Value: bson.D{{Key: "clientId", Value: "k1"}, {Key: "requestId", Value: "r1"}}},
			{Key: "isRead", Value: true},
			{Key: "createdAt", Value: createdAt},
		}))

		got, err := repo.FindByID(ctx, "n1")
		require.NoError(mt, err)
		assert.Equal(mt, domain.TypeClientJoinRequest, got.Type)
		assert.Equal(mt, domain.ClientJoinPayload{ClientID: "k1", RequestID: "r1"}, got.Payload)
		assert.True(mt, got.IsRead)
		assert.True(mt, createdAt.Equal(got.CreatedAt))
	})

	mt.Run("Testcase #3: find by id not found", func(mt *mtest.T) {
		repo := NewNotificationRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(mt, err, domain.ErrNotificationNotFound)
	})

	mt.Run("Testcase #4: mark read twice is idempotent", func(mt *mtest.T) {
		repo := NewNotificationRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}),
		)

		assert.NoError(mt, repo.MarkRead(ctx, "u1", "n1"))
		assert.NoError(mt, repo.MarkRead(ctx, "u1", "n1"))

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "n1", cmd.Lookup("updates", "0", "q", "_id").StringValue())
		assert.Equal(mt, "u1", cmd.Lookup("updates", "0", "q", "recipientId").StringValue())
	})

	mt.Run("Testcase #5: mark read of other recipient", func(mt *mtest.T) {
		repo := NewNotificationRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		assert.ErrorIs(mt, repo.MarkRead(ctx, "u2", "n1"), domain.ErrNotificationNotFound)
	})

	mt.Run("Testcase #6: mark all read return modified count", func(mt *mtest.T) {
		repo := NewNotificationRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}, bson.E{Key: "nModified", Value: 3}))

		affected, err := repo.MarkAllRead(ctx, "u1")
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), affected)
	})

	mt.Run("Testcase #7: list unread newest first with paging", func(mt *mtest.T) {
		repo := NewNotificationRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "n2"}, {Key: "recipientId", Value: "u1"}, {Key: "type", Value: "SYSTEM"},
				{Key: "payload", Value: bson.D{{Key: "link", Value: "/status"}}}, {Key: "createdAt", Value: createdAt}},
		))

		list, err := repo.ListByUser(ctx, domain.ListFilter{RecipientID: "u1", UnreadOnly: true, Page: 3, Limit: 5})
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, domain.SystemPayload{Link: "/status"}, list[0].Payload)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "u1", cmd.Lookup("filter", "recipientId").StringValue())
		assert.False(mt, cmd.Lookup("filter", "isRead").Boolean())
		assert.Equal(mt, int64(10), cmd.Lookup("skip").AsInt64())
		assert.Equal(mt, int64(5), cmd.Lookup("limit").AsInt64())
		assert.Equal(mt, int64(-1), cmd.Lookup("sort", "createdAt").AsInt64())
	})

	mt.Run("Testcase #8: count unread", func(mt *mtest.T) {
		repo := NewNotificationRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: 4}}))

		count, err := repo.CountUnread(ctx, "u1")
		require.NoError(mt, err)
		assert.Equal(mt, 4, count)
	})
}

func TestPushSubscriptionRepoMongo(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	ns := mtest.TestDb + "." + collectionPushSubscriptions

	mt.Run("Testcase #1: list by user", func(mt *mtest.T) {
		repo := NewPushSubscriptionRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "s1"}, {Key: "userId", Value: "u1"}, {Key: "endpoint", Value: "https://push.example.com/a"},
				{Key: "p256dh", Value: "key"}, {Key: "auth", Value: "secret"}},
		))

		list, err := repo.ListByUser(ctx, "u1")
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, "s1", list[0].ID)
		assert.Equal(mt, "https://push.example.com/a", list[0].Endpoint)
	})

	mt.Run("Testcase #2: delete unknown endpoint", func(mt *mtest.T) {
		repo := NewPushSubscriptionRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteByEndpoint(ctx, "u1", "https://push.example.com/unknown")
		assert.ErrorIs(mt, err, domain.ErrSubscriptionNotFound)
	})

	mt.Run("Testcase #3: delete endpoint", func(mt *mtest.T) {
		repo := NewPushSubscriptionRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.DeleteByEndpoint(ctx, "u1", "https://push.example.com/a"))
	})
}

func TestUserRepoMongo_FindUser(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()
	ns := mtest.TestDb + "." + collectionUsers

	mt.Run("Testcase #1: missing settings use default", func(mt *mtest.T) {
		repo := NewUserRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "k1"}, {Key: "role", Value: "coach"},
				{Key: "settings", Value: bson.D{{Key: "pushNotifications", Value: false}}}},
		))

		user, err := repo.FindUser(ctx, "k1")
		require.NoError(mt, err)
		assert.Equal(mt, "coach", user.Role)
		assert.False(mt, user.Settings.PushNotifications)
		assert.Equal(mt, domain.DefaultUserSettings().MessageNotifications, user.Settings.MessageNotifications)
	})

	mt.Run("Testcase #2: not found", func(mt *mtest.T) {
		repo := NewUserRepoMongo(mt.DB, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindUser(ctx, "missing")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}
