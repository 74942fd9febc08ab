package domain

import "errors"

var (
	// ErrRecipientNotFound dispatch to unknown user
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrUserNotFound user directory lookup miss
	ErrUserNotFound = errors.New("user not found")
	// ErrNotificationNotFound unknown notification or not owned by user
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrInvalidNotificationType type outside closed set
	ErrInvalidNotificationType = errors.New("invalid notification type")
	// ErrSubscriptionNotFound unknown push subscription
	ErrSubscriptionNotFound = errors.New("push subscription not found")
	// ErrPushNotConfigured web push keys absent
	ErrPushNotConfigured = errors.New("web push is not configured")
)
