package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const notificationColumns = "id, recipient_id, type, title, message, payload, is_read, created_at"

type notificationRow struct {
	ID          string    `db:"id"`
	RecipientID string    `db:"recipient_id"`
	Type        string    `db:"type"`
	Title       string    `db:"title"`
	Message     string    `db:"message"`
	Payload     string    `db:"payload"`
	IsRead      bool      `db:"is_read"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *notificationRow) toDomain() domain.Notification {
	t := domain.Type(r.Type)
	return domain.Notification{
		ID:          r.ID,
		RecipientID: r.RecipientID,
		Type:        t,
		Title:       r.Title,
		Message:     r.Message,
		Payload:     domain.DecodePayload(t, []byte(r.Payload)),
		IsRead:      r.IsRead,
		CreatedAt:   r.CreatedAt,
	}
}

func toNotifications(rows []notificationRow) []domain.Notification {
	data := make([]domain.Notification, 0, len(rows))
	for i := range rows {
		data = append(data, rows[i].toDomain())
	}
	return data
}

type notificationRepoSQL struct {
	readDB, writeDB *sqlx.DB
}

// NewNotificationRepoSQL sql repo constructor
func NewNotificationRepoSQL(readDB, writeDB *sqlx.DB) NotificationRepository {
	return &notificationRepoSQL{readDB: readDB, writeDB: writeDB}
}

func (r *notificationRepoSQL) Insert(ctx context.Context, data *domain.Notification) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoSQL:Insert")
	defer func() { trace.SetError(err); trace.Finish() }()

	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC()
	}
	data.IsRead = false
	trace.SetTag("notification_id", data.ID)

	query := r.writeDB.Rebind("INSERT INTO notifications (" + notificationColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	_, err = r.writeDB.ExecContext(ctx, query,
		data.ID, data.RecipientID, string(data.Type), data.Title, data.Message,
		string(domain.EncodePayload(data.Payload)), data.IsRead, data.CreatedAt)
	return
}

func (r *notificationRepoSQL) FindByID(ctx context.Context, id string) (data domain.Notification, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoSQL:FindByID")
	defer func() { trace.SetError(err); trace.Finish() }()

	var row notificationRow
	err = r.readDB.GetContext(ctx, &row, r.readDB.Rebind("SELECT "+notificationColumns+" FROM notifications WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return data, domain.ErrNotificationNotFound
	}
	if err != nil {
		return data, err
	}
	return row.toDomain(), nil
}

func (r *notificationRepoSQL) MarkRead(ctx context.Context, userID, id string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoSQL:MarkRead")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := r.writeDB.ExecContext(ctx,
		r.writeDB.Rebind("UPDATE notifications SET is_read = ? WHERE id = ? AND recipient_id = ?"), true, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepoSQL) MarkAllRead(ctx context.Context, userID string) (affected int64, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoSQL:MarkAllRead")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := r.writeDB.ExecContext(ctx,
		r.writeDB.Rebind("UPDATE notifications SET is_read = ? WHERE recipient_id = ? AND is_read = ?"), true, userID, false)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepoSQL) ListByUser(ctx context.Context, filter domain.ListFilter) (data []domain.Notification, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoSQL:ListByUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	where, args := r.where(filter)
	query := "SELECT " + notificationColumns + " FROM notifications" + where + " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset())
	}
	trace.Log("query", query)

	var rows []notificationRow
	if err = r.readDB.SelectContext(ctx, &rows, r.readDB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return toNotifications(rows), nil
}

func (r *notificationRepoSQL) Count(ctx context.Context, filter domain.ListFilter) (count int, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoSQL:Count")
	defer func() { trace.SetError(err); trace.Finish() }()

	where, args := r.where(filter)
	err = r.readDB.GetContext(ctx, &count, r.readDB.Rebind("SELECT COUNT(*) FROM notifications"+where), args...)
	return
}

func (r *notificationRepoSQL) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	return r.ListByUser(ctx, domain.ListFilter{RecipientID: userID, UnreadOnly: true})
}

func (r *notificationRepoSQL) CountUnread(ctx context.Context, userID string) (int, error) {
	return r.Count(ctx, domain.ListFilter{RecipientID: userID, UnreadOnly: true})
}

func (r *notificationRepoSQL) where(filter domain.ListFilter) (string, []interface{}) {
	where, args := " WHERE recipient_id = ?", []interface{}{filter.RecipientID}
	if filter.UnreadOnly {
		where += " AND is_read = ?"
		args = append(args, false)
	}
	return where, args
}

type pushSubscriptionRepoSQL struct {
	readDB, writeDB *sqlx.DB
}

// NewPushSubscriptionRepoSQL sql repo constructor
func NewPushSubscriptionRepoSQL(readDB, writeDB *sqlx.DB) PushSubscriptionRepository {
	return &pushSubscriptionRepoSQL{readDB: readDB, writeDB: writeDB}
}

func (r *pushSubscriptionRepoSQL) Upsert(ctx context.Context, data *domain.PushSubscription) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PushSubscriptionRepoSQL:Upsert")
	defer func() { trace.SetError(err); trace.Finish() }()

	now := time.Now().UTC()
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	data.CreatedAt, data.UpdatedAt = now, now

	query := `INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, user_agent, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (user_id, endpoint) DO UPDATE SET
		p256dh = excluded.p256dh, auth = excluded.auth,
		user_agent = excluded.user_agent, updated_at = excluded.updated_at`
	if _, err = r.writeDB.ExecContext(ctx, r.writeDB.Rebind(query),
		data.ID, data.UserID, data.Endpoint, data.P256dh, data.Auth, data.UserAgent, data.CreatedAt, data.UpdatedAt); err != nil {
		return err
	}

	// existing row keep its id and creation time
	return r.writeDB.QueryRowxContext(ctx,
		r.writeDB.Rebind("SELECT id, created_at FROM push_subscriptions WHERE user_id = ? AND endpoint = ?"),
		data.UserID, data.Endpoint).Scan(&data.ID, &data.CreatedAt)
}

func (r *pushSubscriptionRepoSQL) ListByUser(ctx context.Context, userID string) (data []domain.PushSubscription, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PushSubscriptionRepoSQL:ListByUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	err = r.readDB.SelectContext(ctx, &data, r.readDB.Rebind(
		`SELECT id, user_id, endpoint, p256dh, auth, user_agent, created_at, updated_at
		FROM push_subscriptions WHERE user_id = ? ORDER BY created_at`), userID)
	return
}

func (r *pushSubscriptionRepoSQL) Delete(ctx context.Context, id string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PushSubscriptionRepoSQL:Delete")
	defer func() { trace.SetError(err); trace.Finish() }()

	_, err = r.writeDB.ExecContext(ctx, r.writeDB.Rebind("DELETE FROM push_subscriptions WHERE id = ?"), id)
	return
}

func (r *pushSubscriptionRepoSQL) DeleteByEndpoint(ctx context.Context, userID, endpoint string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PushSubscriptionRepoSQL:DeleteByEndpoint")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := r.writeDB.ExecContext(ctx,
		r.writeDB.Rebind("DELETE FROM push_subscriptions WHERE user_id = ? AND endpoint = ?"), userID, endpoint)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

type userRow struct {
	ID                   string       `db:"id"`
	Role                 string       `db:"role"`
	PushNotifications    sql.NullBool `db:"push_notifications"`
	MessageNotifications sql.NullBool `db:"message_notifications"`
}

type userRepoSQL struct {
	readDB, writeDB *sqlx.DB
}

// NewUserRepoSQL sql repo constructor
func NewUserRepoSQL(readDB, writeDB *sqlx.DB) UserRepository {
	return &userRepoSQL{readDB: readDB, writeDB: writeDB}
}

func (r *userRepoSQL) FindUser(ctx context.Context, id string) (data *domain.User, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "UserRepoSQL:FindUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	var row userRow
	err = r.readDB.GetContext(ctx, &row, r.readDB.Rebind(
		"SELECT id, role, push_notifications, message_notifications FROM users WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	// absent settings mean every channel enabled
	settings := domain.DefaultUserSettings()
	if row.PushNotifications.Valid {
		settings.PushNotifications = row.PushNotifications.Bool
	}
	if row.MessageNotifications.Valid {
		settings.MessageNotifications = row.MessageNotifications.Bool
	}
	return &domain.User{ID: row.ID, Role: row.Role, Settings: settings}, nil
}

func (r *userRepoSQL) SaveUser(ctx context.Context, data *domain.User) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "UserRepoSQL:SaveUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	query := `INSERT INTO users (id, role, push_notifications, message_notifications, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		role = excluded.role, push_notifications = excluded.push_notifications,
		message_notifications = excluded.message_notifications, updated_at = excluded.updated_at`
	_, err = r.writeDB.ExecContext(ctx, r.writeDB.Rebind(query),
		data.ID, data.Role, data.Settings.PushNotifications, data.Settings.MessageNotifications, time.Now().UTC())
	return
}

// NewSQLRepository sql implementation of every store, push provider is filled by caller
func NewSQLRepository(readDB, writeDB *sqlx.DB) *Repository {
	return &Repository{
		Notification:     NewNotificationRepoSQL(readDB, writeDB),
		PushSubscription: NewPushSubscriptionRepoSQL(readDB, writeDB),
		User:             NewUserRepoSQL(readDB, writeDB),
	}
}
