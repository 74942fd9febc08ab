package repository

import (
	"context"
	"testing"
	"time"

	"github.com/coachlab/notification-service/config/database"
	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(database.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = Migrate(context.Background(), db)
	require.NoError(t, err)
	return db
}

func TestMigrate(t *testing.T) {
	db, err := database.Open(database.SQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	applied, err := Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)

	applied, err = Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (id TEXT);\n\n CREATE INDEX i ON a(id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id TEXT)", "CREATE INDEX i ON a(id)"}, stmts)
}

func TestNotificationRepoSQL(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewNotificationRepoSQL(db, db)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first := &domain.Notification{
		RecipientID: "u1", Type: domain.TypeMessage, Title: "New message", Message: "hi",
		Payload: domain.MessagePayload{ConversationID: "c1", SenderID: "u2"}, CreatedAt: base,
	}
	second := &domain.Notification{
		RecipientID: "u1", Type: domain.TypeLessonScheduled, Title: "Lesson",
		Payload: domain.LessonPayload{EventID: "e1"}, CreatedAt: base.Add(time.Minute),
	}
	other := &domain.Notification{
		RecipientID: "u2", Type: domain.TypeSystem, Title: "Maintenance",
		Payload: domain.SystemPayload{Link: "/status"}, CreatedAt: base.Add(2 * time.Minute),
	}
	for _, n := range []*domain.Notification{first, second, other} {
		require.NoError(t, repo.Insert(ctx, n))
		assert.NotEmpty(t, n.ID)
	}

	t.Run("Testcase #1: find by id decode payload by type", func(t *testing.T) {
		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MessagePayload{ConversationID: "c1", SenderID: "u2"}, got.Payload)
		assert.Equal(t, "u1", got.RecipientID)
		assert.False(t, got.IsRead)
		assert.True(t, base.Equal(got.CreatedAt))

		_, err = repo.FindByID(ctx, "unknown")
		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	})

	t.Run("Testcase #2: list newest first scoped to recipient", func(t *testing.T) {
		list, err := repo.ListByUser(ctx, domain.ListFilter{RecipientID: "u1", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)

		page2, err := repo.ListByUser(ctx, domain.ListFilter{RecipientID: "u1", Page: 2, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page2, 1)
		assert.Equal(t, first.ID, page2[0].ID)

		total, err := repo.Count(ctx, domain.ListFilter{RecipientID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("Testcase #3: mark read is idempotent and owner only", func(t *testing.T) {
		assert.ErrorIs(t, repo.MarkRead(ctx, "u2", first.ID), domain.ErrNotificationNotFound)
		assert.ErrorIs(t, repo.MarkRead(ctx, "u1", "unknown"), domain.ErrNotificationNotFound)

		require.NoError(t, repo.MarkRead(ctx, "u1", first.ID))
		require.NoError(t, repo.MarkRead(ctx, "u1", first.ID))

		count, err := repo.CountUnread(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		unread, err := repo.ListUnread(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, second.ID, unread[0].ID)
	})

	t.Run("Testcase #4: mark all read", func(t *testing.T) {
		affected, err := repo.MarkAllRead(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		count, err := repo.CountUnread(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		count, err = repo.CountUnread(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestPushSubscriptionRepoSQL(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPushSubscriptionRepoSQL(db, db)

	sub := &domain.PushSubscription{UserID: "u1", Endpoint: "https://push.example.com/a", P256dh: "key1", Auth: "auth1"}
	require.NoError(t, repo.Upsert(ctx, sub))
	firstID := sub.ID

	t.Run("Testcase #1: upsert same endpoint refresh keys", func(t *testing.T) {
		again := &domain.PushSubscription{UserID: "u1", Endpoint: "https://push.example.com/a", P256dh: "key2", Auth: "auth2", UserAgent: "firefox"}
		require.NoError(t, repo.Upsert(ctx, again))
		assert.Equal(t, firstID, again.ID)

		subs, err := repo.ListByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "key2", subs[0].P256dh)
		assert.Equal(t, "firefox", subs[0].UserAgent)
	})

	t.Run("Testcase #2: same endpoint for other user is separate", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &domain.PushSubscription{UserID: "u2", Endpoint: "https://push.example.com/a", P256dh: "k", Auth: "a"}))
		subs, err := repo.ListByUser(ctx, "u2")
		require.NoError(t, err)
		assert.Len(t, subs, 1)
	})

	t.Run("Testcase #3: delete by endpoint", func(t *testing.T) {
		require.NoError(t, repo.DeleteByEndpoint(ctx, "u2", "https://push.example.com/a"))
		assert.ErrorIs(t, repo.DeleteByEndpoint(ctx, "u2", "https://push.example.com/a"), domain.ErrSubscriptionNotFound)
	})

	t.Run("Testcase #4: delete by id", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, firstID))
		subs, err := repo.ListByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, subs)
	})
}

func TestUserRepoSQL(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepoSQL(db, db)

	t.Run("Testcase #1: unknown user", func(t *testing.T) {
		_, err := repo.FindUser(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Testcase #2: absent settings default to enabled", func(t *testing.T) {
		_, err := db.Exec(db.Rebind("INSERT INTO users (id, role, updated_at) VALUES (?, ?, ?)"), "c1", "client", time.Now().UTC())
		require.NoError(t, err)

		user, err := repo.FindUser(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "client", user.Role)
		assert.Equal(t, domain.DefaultUserSettings(), user.Settings)
	})

	t.Run("Testcase #3: save then update", func(t *testing.T) {
		user := &domain.User{ID: "k1", Role: "coach", Settings: domain.UserSettings{PushNotifications: true}}
		require.NoError(t, repo.SaveUser(ctx, user))

		got, err := repo.FindUser(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, *user, *got)

		user.Settings.PushNotifications = false
		require.NoError(t, repo.SaveUser(ctx, user))
		got, err = repo.FindUser(ctx, "k1")
		require.NoError(t, err)
		assert.False(t, got.Settings.PushNotifications)
	})
}

func TestNewSQLRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLRepository(db, db)
	assert.NotNil(t, repo.Notification)
	assert.NotNil(t, repo.PushSubscription)
	assert.NotNil(t, repo.User)
	assert.Nil(t, repo.Push)
}
