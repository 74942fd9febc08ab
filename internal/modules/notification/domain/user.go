package domain

import "github.com/coachlab/notification-service/pkg/shared"

// UserSettings notification preference of user
type UserSettings struct {
	PushNotifications    bool `json:"pushNotifications" bson:"pushNotifications"`
	MessageNotifications bool `json:"messageNotifications" bson:"messageNotifications"`
}

// DefaultUserSettings every channel enabled
func DefaultUserSettings() UserSettings {
	return UserSettings{PushNotifications: true, MessageNotifications: true}
}

// User directory record
type User struct {
	ID       string       `json:"id" bson:"_id" validate:"required"`
	Role     string       `json:"role" bson:"role" validate:"required,oneof=coach client"`
	Settings UserSettings `json:"settings" bson:"settings"`
}

// AllowsPush check web push preference for notification type
func (u *User) AllowsPush(t Type) bool {
	if !u.Settings.PushNotifications {
		return false
	}
	if t == TypeMessage {
		return u.Settings.MessageNotifications
	}
	return true
}

// IsClient viewer role
func (u *User) IsClient() bool {
	return u.Role == shared.RoleClient
}

// Viewer authenticated user reading notifications, role select route variant
type Viewer struct {
	UserID string
	Role   string
}

// LiveStats snapshot of live channel registry
type LiveStats struct {
	Connections int      `json:"connections"`
	ActiveUsers []string `json:"activeUsers"`
}
