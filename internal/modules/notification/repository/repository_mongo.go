package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coachlab/notification-service/internal/modules/notification/domain"
	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionNotifications     = "notifications"
	collectionPushSubscriptions = "push_subscriptions"
	collectionUsers             = "users"
)

type notificationDoc struct {
	ID          string            `bson:"_id"`
	RecipientID string            `bson:"recipientId"`
	Type        string            `bson:"type"`
	Title       string            `bson:"title"`
	Message     string            `bson:"message"`
	Payload     map[string]string `bson:"payload"`
	IsRead      bool              `bson:"isRead"`
	CreatedAt   time.Time         `bson:"createdAt"`
}

func (d *notificationDoc) toDomain() domain.Notification {
	t := domain.Type(d.Type)
	raw, _ := json.Marshal(d.Payload)
	return domain.Notification{
		ID:          d.ID,
		RecipientID: d.RecipientID,
		Type:        t,
		Title:       d.Title,
		Message:     d.Message,
		Payload:     domain.DecodePayload(t, raw),
		IsRead:      d.IsRead,
		CreatedAt:   d.CreatedAt,
	}
}

// EnsureMongoIndexes create indexes used by mongo repositories
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(collectionNotifications).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "isRead", Value: 1}}},
	}); err != nil {
		return err
	}
	_, err := db.Collection(collectionPushSubscriptions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "endpoint", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type notificationRepoMongo struct {
	readDB, writeDB *mongo.Database
	collection      string
}

// NewNotificationRepoMongo mongo repo constructor
func NewNotificationRepoMongo(readDB, writeDB *mongo.Database) NotificationRepository {
	return &notificationRepoMongo{readDB, writeDB, collectionNotifications}
}

func (r *notificationRepoMongo) Insert(ctx context.Context, data *domain.Notification) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoMongo:Insert")
	defer func() { trace.SetError(err); trace.Finish() }()

	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC()
	}
	data.IsRead = false

	payload := map[string]string{}
	json.Unmarshal(domain.EncodePayload(data.Payload), &payload)

	_, err = r.writeDB.Collection(r.collection).InsertOne(ctx, notificationDoc{
		ID: data.ID, RecipientID: data.RecipientID, Type: string(data.Type),
		Title: data.Title, Message: data.Message, Payload: payload,
		IsRead: data.IsRead, CreatedAt: data.CreatedAt,
	})
	return
}

func (r *notificationRepoMongo) FindByID(ctx context.Context, id string) (data domain.Notification, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoMongo:FindByID")
	defer func() { trace.SetError(err); trace.Finish() }()

	var doc notificationDoc
	err = r.readDB.Collection(r.collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return data, domain.ErrNotificationNotFound
	}
	if err != nil {
		return data, err
	}
	return doc.toDomain(), nil
}

func (r *notificationRepoMongo) MarkRead(ctx context.Context, userID, id string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoMongo:MarkRead")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := r.writeDB.Collection(r.collection).UpdateOne(ctx,
		bson.M{"_id": id, "recipientId": userID},
		bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepoMongo) MarkAllRead(ctx context.Context, userID string) (affected int64, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoMongo:MarkAllRead")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := r.writeDB.Collection(r.collection).UpdateMany(ctx,
		bson.M{"recipientId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *notificationRepoMongo) ListByUser(ctx context.Context, filter domain.ListFilter) (data []domain.Notification, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoMongo:ListByUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	where := r.where(filter)
	trace.SetTag("query", where)

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(int64(filter.Limit))
		findOptions.SetSkip(int64(filter.Offset()))
	}
	cur, err := r.readDB.Collection(r.collection).Find(ctx, where, findOptions)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []notificationDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	data = make([]domain.Notification, 0, len(docs))
	for i := range docs {
		data = append(data, docs[i].toDomain())
	}
	return data, nil
}

func (r *notificationRepoMongo) Count(ctx context.Context, filter domain.ListFilter) (count int, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "NotificationRepoMongo:Count")
	defer func() { trace.SetError(err); trace.Finish() }()

	total, err := r.readDB.Collection(r.collection).CountDocuments(ctx, r.where(filter))
	return int(total), err
}

func (r *notificationRepoMongo) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	return r.ListByUser(ctx, domain.ListFilter{RecipientID: userID, UnreadOnly: true})
}

func (r *notificationRepoMongo) CountUnread(ctx context.Context, userID string) (int, error) {
	return r.Count(ctx, domain.ListFilter{RecipientID: userID, UnreadOnly: true})
}

func (r *notificationRepoMongo) where(filter domain.ListFilter) bson.M {
	where := bson.M{"recipientId": filter.RecipientID}
	if filter.UnreadOnly {
		where["isRead"] = false
	}
	return where
}

type pushSubscriptionRepoMongo struct {
	readDB, writeDB *mongo.Database
	collection      string
}

// NewPushSubscriptionRepoMongo mongo repo constructor
func NewPushSubscriptionRepoMongo(readDB, writeDB *mongo.Database) PushSubscriptionRepository {
	return &pushSubscriptionRepoMongo{readDB, writeDB, collectionPushSubscriptions}
}

func (r *pushSubscriptionRepoMongo) Upsert(ctx context.Context, data *domain.PushSubscription) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PushSubscriptionRepoMongo:Upsert")
	defer func() { trace.SetError(err); trace.Finish() }()

	now := time.Now().UTC()
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	data.CreatedAt, data.UpdatedAt = now, now

	where := bson.M{"userId": data.UserID, "endpoint": data.Endpoint}
	opt := options.UpdateOptions{
		Upsert: helper.ToBoolPtr(true),
	}
	if _, err = r.writeDB.Collection(r.collection).UpdateOne(ctx, where,
		bson.M{
			"$set": bson.M{
				"p256dh": data.P256dh, "auth": data.Auth,
				"userAgent": data.UserAgent, "updatedAt": data.UpdatedAt,
			},
			"$setOnInsert": bson.M{"_id": data.ID, "createdAt": data.CreatedAt},
		}, &opt); err != nil {
		return err
	}

	return r.writeDB.Collection(r.collection).FindOne(ctx, where).Decode(data)
}

func (r *pushSubscriptionRepoMongo) ListByUser(ctx context.Context, userID string) (data []domain.PushSubscription, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PushSubscriptionRepoMongo:ListByUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	cur, err := r.readDB.Collection(r.collection).Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	err = cur.All(ctx, &data)
	return
}

func (r *pushSubscriptionRepoMongo) Delete(ctx context.Context, id string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PushSubscriptionRepoMongo:Delete")
	defer func() { trace.SetError(err); trace.Finish() }()

	_, err = r.writeDB.Collection(r.collection).DeleteOne(ctx, bson.M{"_id": id})
	return
}

func (r *pushSubscriptionRepoMongo) DeleteByEndpoint(ctx context.Context, userID, endpoint string) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "PushSubscriptionRepoMongo:DeleteByEndpoint")
	defer func() { trace.SetError(err); trace.Finish() }()

	res, err := r.writeDB.Collection(r.collection).DeleteOne(ctx, bson.M{"userId": userID, "endpoint": endpoint})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

type userDoc struct {
	ID       string `bson:"_id"`
	Role     string `bson:"role"`
	Settings struct {
		PushNotifications    *bool `bson:"pushNotifications,omitempty"`
		MessageNotifications *bool `bson:"messageNotifications,omitempty"`
	} `bson:"settings"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type userRepoMongo struct {
	readDB, writeDB *mongo.Database
	collection      string
}

// NewUserRepoMongo mongo repo constructor
func NewUserRepoMongo(readDB, writeDB *mongo.Database) UserRepository {
	return &userRepoMongo{readDB, writeDB, collectionUsers}
}

func (r *userRepoMongo) FindUser(ctx context.Context, id string) (data *domain.User, err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "UserRepoMongo:FindUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	var doc userDoc
	err = r.readDB.Collection(r.collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	settings := domain.DefaultUserSettings()
	if doc.Settings.PushNotifications != nil {
		settings.PushNotifications = *doc.Settings.PushNotifications
	}
	if doc.Settings.MessageNotifications != nil {
		settings.MessageNotifications = *doc.Settings.MessageNotifications
	}
	return &domain.User{ID: doc.ID, Role: doc.Role, Settings: settings}, nil
}

func (r *userRepoMongo) SaveUser(ctx context.Context, data *domain.User) (err error) {
	trace, ctx := tracer.StartTraceWithContext(ctx, "UserRepoMongo:SaveUser")
	defer func() { trace.SetError(err); trace.Finish() }()

	opt := options.UpdateOptions{
		Upsert: helper.ToBoolPtr(true),
	}
	_, err = r.writeDB.Collection(r.collection).UpdateOne(ctx,
		bson.M{"_id": data.ID},
		bson.M{"$set": bson.M{
			"role":                          data.Role,
			"settings.pushNotifications":    data.Settings.PushNotifications,
			"settings.messageNotifications": data.Settings.MessageNotifications,
			"updatedAt":                     time.Now().UTC(),
		}}, &opt)
	return
}

// NewMongoRepository mongo implementation of every store, push provider is filled by caller
func NewMongoRepository(readDB, writeDB *mongo.Database) *Repository {
	return &Repository{
		Notification:     NewNotificationRepoMongo(readDB, writeDB),
		PushSubscription: NewPushSubscriptionRepoMongo(readDB, writeDB),
		User:             NewUserRepoMongo(readDB, writeDB),
	}
}
