package domain

import "time"

// PushStatus result of one web push attempt
type PushStatus string

const (
	// PushSent accepted by push service
	PushSent PushStatus = "sent"
	// PushGone subscription expired or unsubscribed, must be deleted
	PushGone PushStatus = "gone"
	// PushFailed transient failure
	PushFailed PushStatus = "failed"
)

// PushSubscription browser web push subscription
type PushSubscription struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	UserID    string    `json:"userId" db:"user_id" bson:"userId"`
	Endpoint  string    `json:"endpoint" db:"endpoint" bson:"endpoint"`
	P256dh    string    `json:"p256dh" db:"p256dh" bson:"p256dh"`
	Auth      string    `json:"auth" db:"auth" bson:"auth"`
	UserAgent string    `json:"userAgent,omitempty" db:"user_agent" bson:"userAgent"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" bson:"updatedAt"`
}

// SubscribeRequest browser PushSubscription.toJSON() shape
type SubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

// UnsubscribeRequest remove subscription by endpoint
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
}

// PushMessage payload delivered to service worker
type PushMessage struct {
	NotificationID string `json:"notificationId"`
	Type           Type   `json:"type"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	URL            string `json:"url"`
	Tag            string `json:"tag,omitempty"`
}
