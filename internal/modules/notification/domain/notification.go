package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Type notification type, closed set
type Type string

const (
	TypeMessage           Type = "MESSAGE"
	TypeClientJoinRequest Type = "CLIENT_JOIN_REQUEST"
	TypeLessonScheduled   Type = "LESSON_SCHEDULED"
	TypeLessonCancelled   Type = "LESSON_CANCELLED"
	TypeLessonReminder    Type = "LESSON_REMINDER"
	TypeTimeSwapRequest   Type = "TIME_SWAP_REQUEST"
	TypeWorkoutAssigned   Type = "WORKOUT_ASSIGNED"
	TypeProgramAssigned   Type = "PROGRAM_ASSIGNED"
	TypeVideoSubmission   Type = "VIDEO_SUBMISSION"
	TypeVideoFeedback     Type = "VIDEO_FEEDBACK"
	TypeSystem            Type = "SYSTEM"
)

// Types every known notification type
var Types = []Type{
	TypeMessage, TypeClientJoinRequest,
	TypeLessonScheduled, TypeLessonCancelled, TypeLessonReminder,
	TypeTimeSwapRequest, TypeWorkoutAssigned, TypeProgramAssigned,
	TypeVideoSubmission, TypeVideoFeedback, TypeSystem,
}

// IsValid check type is member of closed set
func (t Type) IsValid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Notification persisted notification, immutable except read flag
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipientId"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Payload     Payload   `json:"payload"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnmarshalJSON decode payload variant by type
func (n *Notification) UnmarshalJSON(data []byte) error {
	type alias Notification
	var raw struct {
		alias
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Notification(raw.alias)
	n.Payload = DecodePayload(n.Type, raw.Payload)
	return nil
}

// NotificationView notification with destination for viewer
type NotificationView struct {
	Notification
	Route       string       `json:"route"`
	QuickAction *QuickAction `json:"quickAction,omitempty"`
}

// QuickAction optional one-tap action of notification
type QuickAction struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Destination computed route of notification for viewer role
type Destination struct {
	Path        string       `json:"path"`
	QuickAction *QuickAction `json:"quickAction,omitempty"`
}

// ListFilter filter for list notification of recipient
type ListFilter struct {
	RecipientID string
	UnreadOnly  bool
	Page        int
	Limit       int
}

// Offset from page and limit
func (f ListFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt32/f.Limit {
		return math.MaxInt32
	}
	return (f.Page - 1) * f.Limit
}
